package commands

import (
	"github.com/spf13/cobra"

	"github.com/xcforge/xcforge"
	"github.com/xcforge/xcforge/internal/output"
)

// RootCmd creates and returns the root command for the xcforge CLI.
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "xcforge",
		Short: "Xcode project generator for iOS apps",
		Long: `xcforge scaffolds iOS app projects and keeps their Xcode project
descriptors in sync with the sources on disk.

• Scaffold a complete, buildable app project from a handful of parameters
• Regenerate project.pbxproj whenever Swift sources are added or removed
• SwiftUI or AppDelegate entry-point styles`,
		Version: xcforge.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
