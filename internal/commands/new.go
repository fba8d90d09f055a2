package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xcforge/xcforge/internal/config"
	"github.com/xcforge/xcforge/internal/generator"
	"github.com/xcforge/xcforge/internal/input"
	"github.com/xcforge/xcforge/internal/output"
	"github.com/xcforge/xcforge/internal/scaffold"
)

// NewCmd creates and returns the 'new' command for scaffolding projects.
func NewCmd() *cobra.Command {
	var (
		bundleID         string
		deploymentTarget string
		style            string
		dir              string
		capabilities     []string
		dryRun           bool
	)

	cmd := &cobra.Command{
		Use:   "new [product-name]",
		Short: "Create a new iOS app project",
		Long: `Creates a new iOS app project with:
• Xcode project descriptor (project.pbxproj)
• Entry-point Swift source (SwiftUI or AppDelegate style)
• Info.plist and asset catalog
• Project manifest (xcforge.yml) for later regeneration

Example:
  xcforge new Aria --bundle-id com.example.aria --capability NSMicrophoneUsageDescription="Aria needs microphone access"`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			product := args[0]

			if bundleID == "" {
				bundleID = input.Prompt("Bundle identifier", "com.example."+strings.ToLower(product))
			}

			caps, err := parseCapabilities(capabilities)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			cfg := &config.Project{
				ProductName:      product,
				BundleID:         bundleID,
				DeploymentTarget: deploymentTarget,
				Style:            style,
				Capabilities:     caps,
			}
			if err := cfg.Validate(); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			root := filepath.Join(dir, product)
			output.Verbose(fmt.Sprintf("Creating iOS project in %s", root))

			ops, err := scaffold.New().Scaffold(root, cfg)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			manifest, err := cfg.Marshal()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			ops = append(ops, &generator.WriteFileOp{
				Path:    filepath.Join(root, config.FileName),
				Content: manifest,
				Mode:    0644,
			})

			if err := generator.Execute(ctx, ops, generator.ExecuteOptions{DryRun: dryRun}); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			if dryRun {
				return
			}

			output.Success(fmt.Sprintf("Created project: %s", product))
			output.Info("Next steps:")
			output.Step(fmt.Sprintf("cd %s", root))
			output.Step(fmt.Sprintf("open %s.xcodeproj", product))
		},
	}

	cmd.Flags().StringVar(&bundleID, "bundle-id", "", "Reverse-domain bundle identifier (prompted if omitted)")
	cmd.Flags().StringVar(&deploymentTarget, "deployment-target", "16.0", "Minimum iOS version")
	cmd.Flags().StringVar(&style, "style", config.StyleSwiftUI, "Entry-point style: swiftui or appdelegate")
	cmd.Flags().StringVar(&dir, "dir", ".", "Parent directory for the new project")
	cmd.Flags().StringArrayVar(&capabilities, "capability", nil, "Usage description as KEY=text (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be created without writing")

	return cmd
}

// parseCapabilities turns repeated KEY=text flags into the manifest map.
func parseCapabilities(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	caps := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, text, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --capability %q: expected KEY=text", pair)
		}
		caps[key] = text
	}
	return caps, nil
}
