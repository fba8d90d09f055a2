package generator_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xcforge/xcforge/internal/generator"
)

func TestExecute_DryRun(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	ops := []generator.Operation{
		&generator.WriteFileOp{
			Path:    filepath.Join(tmpDir, "test.txt"),
			Content: []byte("hello"),
			Mode:    0644,
		},
	}

	var buf bytes.Buffer
	err := generator.Execute(ctx, ops, generator.ExecuteOptions{
		DryRun: true,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "test.txt")); !os.IsNotExist(err) {
		t.Error("dry run created file")
	}
	if !strings.Contains(buf.String(), "[DRY RUN]") {
		t.Errorf("output missing [DRY RUN] marker, got: %s", buf.String())
	}
}

func TestExecute_WritesFiles(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	ops := []generator.Operation{
		&generator.WriteFileOp{
			Path:    filepath.Join(tmpDir, "a.txt"),
			Content: []byte("content-a"),
			Mode:    0644,
		},
		&generator.WriteFileOp{
			Path:    filepath.Join(tmpDir, "sub", "b.txt"),
			Content: []byte("content-b"),
			Mode:    0644,
		},
	}

	var buf bytes.Buffer
	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &buf}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	for _, name := range []string{"a.txt", filepath.Join("sub", "b.txt")} {
		if _, err := os.Stat(filepath.Join(tmpDir, name)); err != nil {
			t.Errorf("file not created: %s", name)
		}
	}
	if strings.Count(buf.String(), "✓") != 2 {
		t.Errorf("expected 2 checkmarks in output, got: %s", buf.String())
	}
}

func TestExecute_ValidatesEverythingBeforeWritingAnything(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	ops := []generator.Operation{
		&generator.WriteFileOp{
			Path:    filepath.Join(tmpDir, "valid.txt"),
			Content: []byte("valid"),
			Mode:    0644,
		},
		&generator.WriteFileOp{
			Path:    filepath.Join(tmpDir, "invalid.txt"),
			Content: nil, // fails validation
			Mode:    0644,
		},
	}

	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{}); err == nil {
		t.Fatal("expected validation error for nil content")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "valid.txt")); !os.IsNotExist(err) {
		t.Error("valid.txt was created despite validation failure in another operation")
	}
}

func TestExecute_ForceOverwrite(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test.txt")

	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	ops := []generator.Operation{
		&generator.WriteFileOp{Path: path, Content: []byte("new"), Mode: 0644},
	}

	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{Force: false, Writer: &bytes.Buffer{}}); err == nil {
		t.Error("expected error when file exists without force")
	}
	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{Force: true, Writer: &bytes.Buffer{}}); err != nil {
		t.Fatalf("execute with force failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "new" {
		t.Errorf("file not overwritten: got %q", content)
	}
}

func TestWriteFileOp_LeavesNoTempFileBehind(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	op := &generator.WriteFileOp{
		Path:    filepath.Join(tmpDir, "out.txt"),
		Content: []byte("payload"),
		Mode:    0644,
	}
	if err := op.Execute(ctx); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.txt" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("expected only out.txt, got %v", names)
	}
}

func TestWriteFileOp_EmptyContent(t *testing.T) {
	ctx := context.Background()
	op := &generator.WriteFileOp{
		Path:    filepath.Join(t.TempDir(), "empty.txt"),
		Content: []byte{},
		Mode:    0644,
	}

	if err := op.Validate(ctx, false); err != nil {
		t.Errorf("empty content should be valid: %v", err)
	}
	if err := op.Execute(ctx); err != nil {
		t.Fatalf("failed to create empty file: %v", err)
	}

	content, err := os.ReadFile(op.Path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if len(content) != 0 {
		t.Errorf("expected empty file, got %d bytes", len(content))
	}
}
