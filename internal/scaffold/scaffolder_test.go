package scaffold

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcforge/xcforge/internal/config"
	"github.com/xcforge/xcforge/internal/generator"
)

func testConfig(style string) *config.Project {
	return &config.Project{
		ProductName:      "Demo",
		BundleID:         "com.example.demo",
		DeploymentTarget: "16.0",
		Style:            style,
		Capabilities: map[string]string{
			"NSCameraUsageDescription": "Demo needs camera access",
		},
	}
}

func seeded(seed int64) *Scaffolder {
	return NewWithRandom(rand.New(rand.NewSource(seed)))
}

func opPaths(ops []generator.Operation) []string {
	paths := make([]string, len(ops))
	for i, op := range ops {
		paths[i] = op.(*generator.WriteFileOp).Path
	}
	return paths
}

func findOp(t *testing.T, ops []generator.Operation, suffix string) *generator.WriteFileOp {
	t.Helper()
	for _, op := range ops {
		w := op.(*generator.WriteFileOp)
		if strings.HasSuffix(w.Path, suffix) {
			return w
		}
	}
	t.Fatalf("no operation writes %s (have %v)", suffix, opPaths(ops))
	return nil
}

func TestScaffoldEmptyDirectorySynthesizesEntryPoint(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Demo")

	ops, err := seeded(1).Scaffold(root, testConfig(config.StyleSwiftUI))
	require.NoError(t, err)
	require.Len(t, ops, 4)

	entry := findOp(t, ops, filepath.Join("Demo", "App.swift"))
	assert.Contains(t, string(entry.Content), "@main")
	assert.Contains(t, string(entry.Content), "struct DemoApp: App")
	assert.Contains(t, string(entry.Content), `Text("Demo")`)

	plist := findOp(t, ops, filepath.Join("Demo", "Info.plist"))
	assert.Contains(t, string(plist.Content), "<string>com.example.demo</string>")
	assert.Contains(t, string(plist.Content), "<key>NSCameraUsageDescription</key>")
	assert.Contains(t, string(plist.Content), "<string>Demo needs camera access</string>")

	manifest := findOp(t, ops, filepath.Join("AppIcon.appiconset", "Contents.json"))
	assert.Contains(t, string(manifest.Content), `"author":"xcode"`)

	descriptor := findOp(t, ops, filepath.Join("Demo.xcodeproj", "project.pbxproj"))
	assert.Contains(t, string(descriptor.Content), "App.swift in Sources")
}

func TestScaffoldAppDelegateStyle(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Demo")

	ops, err := seeded(2).Scaffold(root, testConfig(config.StyleAppDelegate))
	require.NoError(t, err)

	entry := findOp(t, ops, filepath.Join("Demo", "main.swift"))
	assert.Contains(t, string(entry.Content), "@UIApplicationMain")
	assert.Contains(t, string(entry.Content), `Text("Demo")`)

	descriptor := findOp(t, ops, "project.pbxproj")
	assert.Contains(t, string(descriptor.Content), "main.swift in Sources")
}

func TestScaffoldUsesExistingSources(t *testing.T) {
	root := t.TempDir()
	productDir := filepath.Join(root, "Demo")
	require.NoError(t, os.MkdirAll(productDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(productDir, "Custom.swift"), []byte("// swift"), 0644))

	ops, err := seeded(3).Scaffold(root, testConfig(config.StyleSwiftUI))
	require.NoError(t, err)
	require.Len(t, ops, 3, "no entry point is synthesized when sources exist")

	descriptor := findOp(t, ops, "project.pbxproj")
	assert.Contains(t, string(descriptor.Content), "Custom.swift in Sources")
	assert.NotContains(t, string(descriptor.Content), "App.swift")
}

func TestRegenerateOnlyWritesDescriptor(t *testing.T) {
	root := t.TempDir()
	productDir := filepath.Join(root, "Demo")
	require.NoError(t, os.MkdirAll(productDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(productDir, "A.swift"), []byte("// swift"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(productDir, "B.swift"), []byte("// swift"), 0644))

	ops, err := seeded(4).Regenerate(root, testConfig(config.StyleSwiftUI))
	require.NoError(t, err)
	require.Len(t, ops, 1)

	descriptor := ops[0].(*generator.WriteFileOp)
	assert.Equal(t, filepath.Join(root, "Demo.xcodeproj", "project.pbxproj"), descriptor.Path)
	assert.Contains(t, string(descriptor.Content), "A.swift in Sources")
	assert.Contains(t, string(descriptor.Content), "B.swift in Sources")
}

func TestScaffoldDeterministicWithSeededRandomness(t *testing.T) {
	cfg := testConfig(config.StyleSwiftUI)
	rootA := filepath.Join(t.TempDir(), "Demo")
	rootB := filepath.Join(t.TempDir(), "Demo")

	opsA, err := seeded(5).Scaffold(rootA, cfg)
	require.NoError(t, err)
	opsB, err := seeded(5).Scaffold(rootB, cfg)
	require.NoError(t, err)

	a := findOp(t, opsA, "project.pbxproj")
	b := findOp(t, opsB, "project.pbxproj")
	assert.Equal(t, a.Content, b.Content)
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "Demo", typeName("Demo"))
	assert.Equal(t, "MyApp2", typeName("My-App2"))
	assert.Equal(t, "App42", typeName("42"))
}
