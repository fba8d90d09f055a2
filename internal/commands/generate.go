package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xcforge/xcforge/internal/config"
	"github.com/xcforge/xcforge/internal/generator"
	"github.com/xcforge/xcforge/internal/input"
	"github.com/xcforge/xcforge/internal/output"
	"github.com/xcforge/xcforge/internal/scaffold"
)

// GenerateCmd creates and returns the 'generate' command, which rebuilds
// the project descriptor from the sources currently on disk.
func GenerateCmd() *cobra.Command {
	var force, dryRun bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate the Xcode project descriptor",
		Long: `Re-discovers the Swift sources of the current project and regenerates
<Product>.xcodeproj/project.pbxproj from the manifest in xcforge.yml.

Run this after adding or removing Swift files. Static files (Info.plist,
asset catalog) are left untouched.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			if !config.Exists(".") {
				output.Error(fmt.Sprintf("no %s found; run from a project root or create one with 'xcforge new'", config.FileName))
				os.Exit(1)
			}

			cfg, err := config.Load(".")
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			if err := cfg.Validate(); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Verbose(fmt.Sprintf("Regenerating descriptor for %s", cfg.ProductName))

			ops, err := scaffold.New().Regenerate(".", cfg)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			if !force && !dryRun {
				prompt := fmt.Sprintf("Overwrite %s.xcodeproj/project.pbxproj?", cfg.ProductName)
				if !input.Confirm(prompt, true) {
					output.Info("Aborted")
					return
				}
			}

			if err := generator.Execute(ctx, ops, generator.ExecuteOptions{DryRun: dryRun, Force: true}); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			if dryRun {
				return
			}

			output.Success(fmt.Sprintf("Regenerated %s.xcodeproj", cfg.ProductName))
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite without confirmation")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing")

	return cmd
}
