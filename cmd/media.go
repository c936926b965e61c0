package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/folio-sh/folio/api"
	"github.com/folio-sh/folio/internal/config"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage media files",
}

var mediaUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a media file",
	Args:  cobra.ExactArgs(1),
	RunE:  runMediaUpload,
}

var mediaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded media",
	RunE:  runMediaList,
}

var mediaRef string

func init() {
	rootCmd.AddCommand(mediaCmd)
	mediaCmd.AddCommand(mediaUploadCmd)
	mediaCmd.AddCommand(mediaListCmd)

	mediaUploadCmd.Flags().StringVar(&mediaRef, "ref", "", "Reference name for the file")
}

func runMediaUpload(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	url, err := client.UploadMedia(args[0], mediaRef)
	if err != nil {
		return err
	}

	if config.OutputFormat() == "json" {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{
			"url": url,
			"ref": mediaRef,
		})
	}

	fmt.Println(url)
	return nil
}

func runMediaList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	data, err := client.Get("/media/", nil)
	if err != nil {
		return err
	}

	var resp struct {
		Media []struct {
			URL       string `json:"url"`
			Ref       string `json:"ref,omitempty"`
			Size      int64  `json:"size,omitempty"`
			CreatedAt string `json:"created_at,omitempty"`
		} `json:"media"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if config.OutputFormat() == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp.Media)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "URL\tREF\tSIZE")
	for _, m := range resp.Media {
		ref := m.Ref
		if ref == "" {
			ref = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", m.URL, ref, m.Size)
	}
	return w.Flush()
}
