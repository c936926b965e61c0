package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio-sh/folio/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview <directory>",
	Short: "Preview markdown/MDX files with live reload",
	Long: `Serve compiled previews of the markdown and MDX files in a directory.
Files are recompiled on save and open browser tabs reload automatically.
Validation findings are shown at the top of each page.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

var previewPort int

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntVar(&previewPort, "port", 4040, "Port to listen on")
}

func runPreview(cmd *cobra.Command, args []string) error {
	srv := preview.NewServer(args[0])
	return srv.Run(fmt.Sprintf("localhost:%d", previewPort))
}
