// Package config loads and saves the xcforge.yml project manifest.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/xcforge/xcforge/internal/pbxproj"
)

// FileName is the manifest written at the project root.
const FileName = "xcforge.yml"

// Entry-point styles. The style only selects which template is synthesized
// when no sources exist; the descriptor graph is identical for both.
const (
	StyleSwiftUI     = "swiftui"
	StyleAppDelegate = "appdelegate"
)

// Project holds the parameters a project is generated from.
type Project struct {
	ProductName      string            `yaml:"product_name" mapstructure:"product_name"`
	BundleID         string            `yaml:"bundle_id" mapstructure:"bundle_id"`
	DeploymentTarget string            `yaml:"deployment_target" mapstructure:"deployment_target"`
	Style            string            `yaml:"style" mapstructure:"style"`
	Capabilities     map[string]string `yaml:"capabilities,omitempty" mapstructure:"capabilities"`
}

// Exists reports whether dir contains a project manifest.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil
}

// Load reads the manifest from dir.
func Load(dir string) (*Project, error) {
	v := viper.New()
	v.SetConfigName("xcforge")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetDefault("deployment_target", "16.0")
	v.SetDefault("style", StyleSwiftUI)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var p Project
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	// viper folds keys to lower case. Capability keys are case-significant
	// plist keys, so they are re-read verbatim from the raw manifest.
	caps, err := loadCapabilities(v.ConfigFileUsed())
	if err != nil {
		return nil, err
	}
	p.Capabilities = caps
	return &p, nil
}

func loadCapabilities(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	var m struct {
		Capabilities map[string]string `yaml:"capabilities"`
	}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return m.Capabilities, nil
}

// Validate reports the first input problem. Required parameters have no
// implied defaults; an empty product name or bundle identifier is an error.
func (p *Project) Validate() error {
	if err := p.Params().Validate(); err != nil {
		return err
	}
	if !strings.Contains(p.BundleID, ".") {
		return fmt.Errorf("%w: bundle identifier %q is not reverse-domain", pbxproj.ErrBadInput, p.BundleID)
	}
	switch p.Style {
	case StyleSwiftUI, StyleAppDelegate:
	default:
		return fmt.Errorf("%w: style %q (supported: %s, %s)",
			pbxproj.ErrBadInput, p.Style, StyleSwiftUI, StyleAppDelegate)
	}
	return nil
}

// Params converts the manifest into the graph builder's parameter set.
func (p *Project) Params() pbxproj.Params {
	return pbxproj.Params{
		ProductName:      p.ProductName,
		BundleID:         p.BundleID,
		DeploymentTarget: p.DeploymentTarget,
		Capabilities:     p.Capabilities,
	}
}

// Marshal renders the manifest for writing.
func (p *Project) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", FileName, err)
	}
	return data, nil
}
