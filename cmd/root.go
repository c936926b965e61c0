package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/folio-sh/folio/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "CLI for the folio Admin API",
	Long: `folio is a command-line interface for managing a portfolio/blog site
via the folio Admin API. Markdown and MDX files are validated, sanitized
and compiled before upload.

Configure with environment variables:
  FOLIO_URL        Your site URL
  FOLIO_ADMIN_KEY  Admin API key (from Settings → Integrations)

Or use a config file at ~/.config/folio/config.yaml or ~/.folio.yaml:
  url: https://mysite.com
  key: "64xxxxx:xxxxxxxxxxxxxx"`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&config.FlagURL, "url", "", "Site URL")
	rootCmd.PersistentFlags().StringVar(&config.FlagKey, "key", "", "Admin API key")
	rootCmd.PersistentFlags().StringVarP(&config.FlagOutput, "output", "o", "text", "Output format: text or json")
	rootCmd.PersistentFlags().StringVarP(&config.FlagProfile, "profile", "p", "", "Config profile to use")
}
