// Package cli provides the cobra command tree for the geotag binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/annolab/geotag/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "geotag",
	Short: "Attach GeoNames entities to annotated documents",
	Long: `geotag projects existing document annotations into a GeoNames FST
gazetteer service and writes the matched entities back onto the same spans.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
