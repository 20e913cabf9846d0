package commands

import (
	"github.com/spf13/cobra"

	"github.com/insightdelivered/ocr-statement-engine/internal/api"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ocr-statement-engine",
		Short:   "Convert OCR'd bank statements into structured transaction data",
		Version: api.Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}
