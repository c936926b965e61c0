package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/folio-sh/folio/api"
	"github.com/folio-sh/folio/internal/config"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Site information",
}

var siteInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show site settings and content counts",
	RunE:  runSiteInfo,
}

func init() {
	rootCmd.AddCommand(siteCmd)
	siteCmd.AddCommand(siteInfoCmd)
}

// Site mirrors the /site/ endpoint: the portfolio's public settings plus
// content counts, useful as a quick connectivity and sanity check.
type Site struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author,omitempty"`
	URL         string `json:"url"`
	Version     string `json:"version"`
	AccentColor string `json:"accent_color,omitempty"`
	Posts       int    `json:"posts"`
	Projects    int    `json:"projects"`
}

type siteResponse struct {
	Site Site `json:"site"`
}

func runSiteInfo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	data, err := client.Get("/site/", nil)
	if err != nil {
		return err
	}

	var resp siteResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if config.OutputFormat() == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp.Site)
	}

	s := resp.Site
	fmt.Printf("Title:       %s\n", s.Title)
	fmt.Printf("Description: %s\n", s.Description)
	if s.Author != "" {
		fmt.Printf("Author:      %s\n", s.Author)
	}
	fmt.Printf("URL:         %s\n", s.URL)
	fmt.Printf("Version:     %s\n", s.Version)
	if s.AccentColor != "" {
		fmt.Printf("Accent:      %s\n", s.AccentColor)
	}
	fmt.Printf("Content:     %d posts, %d projects\n", s.Posts, s.Projects)
	return nil
}
