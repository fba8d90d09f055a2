// Package scaffold turns a project manifest into the file operations that
// make up an iOS app project: the entry-point source when none exists, the
// static Info.plist and asset manifest, and the project descriptor.
package scaffold

import (
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"unicode"

	"github.com/xcforge/xcforge/internal/config"
	"github.com/xcforge/xcforge/internal/generator"
	"github.com/xcforge/xcforge/internal/pbxproj"
)

//go:embed templates
var templatesFS embed.FS

// Scaffolder assembles the operations for one generation run.
type Scaffolder struct {
	renderer *generator.Renderer
	rand     io.Reader
}

// New creates a scaffolder using the production randomness source for
// descriptor identifiers.
func New() *Scaffolder {
	return NewWithRandom(nil)
}

// NewWithRandom creates a scaffolder whose descriptor identifiers are drawn
// from src. Tests inject a deterministic source here.
func NewWithRandom(src io.Reader) *Scaffolder {
	return &Scaffolder{renderer: generator.NewRenderer(), rand: src}
}

// Scaffold produces the operations for a complete new project rooted at
// root: entry-point source (if the product directory holds none),
// Info.plist, the asset-catalog manifest, and the project descriptor.
func (s *Scaffolder) Scaffold(root string, cfg *config.Project) ([]generator.Operation, error) {
	sources, ops, err := s.sourceOps(root, cfg)
	if err != nil {
		return nil, err
	}
	productDir := filepath.Join(root, cfg.ProductName)

	plist, err := s.renderer.RenderFS(templatesFS, "templates/info.plist.tmpl", cfg)
	if err != nil {
		return nil, err
	}
	ops = append(ops, &generator.WriteFileOp{
		Path:    filepath.Join(productDir, "Info.plist"),
		Content: plist,
		Mode:    0644,
	})

	manifest, err := templatesFS.ReadFile("templates/contents.json")
	if err != nil {
		return nil, err
	}
	ops = append(ops, &generator.WriteFileOp{
		Path:    filepath.Join(productDir, "Assets.xcassets", "AppIcon.appiconset", "Contents.json"),
		Content: manifest,
		Mode:    0644,
	})

	descriptor, err := s.descriptorOp(root, cfg, sources)
	if err != nil {
		return nil, err
	}
	return append(ops, descriptor), nil
}

// Regenerate produces the operations that refresh an existing project's
// descriptor: re-discovered sources plus a new project.pbxproj. Static
// files are left alone.
func (s *Scaffolder) Regenerate(root string, cfg *config.Project) ([]generator.Operation, error) {
	sources, ops, err := s.sourceOps(root, cfg)
	if err != nil {
		return nil, err
	}
	descriptor, err := s.descriptorOp(root, cfg, sources)
	if err != nil {
		return nil, err
	}
	return append(ops, descriptor), nil
}

// sourceOps discovers the Swift sources for the product and, when none
// exist, synthesizes the entry point for the configured style.
func (s *Scaffolder) sourceOps(root string, cfg *config.Project) ([]string, []generator.Operation, error) {
	productDir := filepath.Join(root, cfg.ProductName)
	sources, err := DiscoverSources(productDir)
	if err != nil {
		return nil, nil, err
	}
	if len(sources) > 0 {
		return sources, nil, nil
	}

	name, content, err := s.renderEntryPoint(cfg)
	if err != nil {
		return nil, nil, err
	}
	op := &generator.WriteFileOp{
		Path:    filepath.Join(productDir, name),
		Content: content,
		Mode:    0644,
	}
	return []string{name}, []generator.Operation{op}, nil
}

func (s *Scaffolder) renderEntryPoint(cfg *config.Project) (string, []byte, error) {
	var name, tmpl string
	switch cfg.Style {
	case config.StyleAppDelegate:
		name, tmpl = "main.swift", "templates/main.swift.tmpl"
	case config.StyleSwiftUI:
		name, tmpl = "App.swift", "templates/app.swift.tmpl"
	default:
		return "", nil, fmt.Errorf("%w: style %q", pbxproj.ErrBadInput, cfg.Style)
	}

	content, err := s.renderer.RenderFS(templatesFS, tmpl, map[string]string{
		"ProductName": cfg.ProductName,
		"TypeName":    typeName(cfg.ProductName),
	})
	if err != nil {
		return "", nil, err
	}
	return name, content, nil
}

// descriptorOp builds the descriptor graph from the discovered sources and
// serializes it into a single write operation.
func (s *Scaffolder) descriptorOp(root string, cfg *config.Project, sources []string) (generator.Operation, error) {
	builder := pbxproj.NewBuilder(pbxproj.NewIDGenerator(s.rand))
	rootID, graph, err := builder.Build(sources, cfg.Params())
	if err != nil {
		return nil, err
	}
	text, err := pbxproj.Serialize(rootID, graph)
	if err != nil {
		return nil, err
	}
	return &generator.WriteFileOp{
		Path:    filepath.Join(root, cfg.ProductName+".xcodeproj", "project.pbxproj"),
		Content: text,
		Mode:    0644,
	}, nil
}

// typeName derives a Swift type name from the product name: alphanumerics
// only, leading letter guaranteed.
func typeName(product string) string {
	var out []rune
	for _, r := range product {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	if len(out) == 0 || unicode.IsDigit(out[0]) {
		out = append([]rune("App"), out...)
	}
	return string(out)
}
