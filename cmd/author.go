package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/folio-sh/folio/api"
	"github.com/folio-sh/folio/internal/config"
)

var authorCmd = &cobra.Command{
	Use:   "author",
	Short: "Manage the site author profile",
}

var authorShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the author profile",
	RunE:  runAuthorShow,
}

var authorUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the author profile",
	RunE:  runAuthorUpdate,
}

var (
	authorName     string
	authorBio      string
	authorWebsite  string
	authorLocation string
	authorAvatar   string
	authorGitHub   string
	authorLinkedIn string
)

func init() {
	rootCmd.AddCommand(authorCmd)
	authorCmd.AddCommand(authorShowCmd)
	authorCmd.AddCommand(authorUpdateCmd)

	authorUpdateCmd.Flags().StringVar(&authorName, "name", "", "Display name")
	authorUpdateCmd.Flags().StringVar(&authorBio, "bio", "", "Short bio shown on the about section")
	authorUpdateCmd.Flags().StringVar(&authorWebsite, "website", "", "Personal website URL")
	authorUpdateCmd.Flags().StringVar(&authorLocation, "location", "", "Location")
	authorUpdateCmd.Flags().StringVar(&authorAvatar, "avatar", "", "Avatar image URL")
	authorUpdateCmd.Flags().StringVar(&authorGitHub, "github", "", "GitHub username")
	authorUpdateCmd.Flags().StringVar(&authorLinkedIn, "linkedin", "", "LinkedIn profile URL")
}

// Author is the single owner profile of a portfolio site. There is
// exactly one; the admin API exposes it as a singleton resource.
type Author struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Bio      string `json:"bio,omitempty"`
	Website  string `json:"website,omitempty"`
	Location string `json:"location,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	URL      string `json:"url,omitempty"`
}

type authorResponse struct {
	Author Author `json:"author"`
}

func runAuthorShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	data, err := client.Get("/author/", nil)
	if err != nil {
		return err
	}

	var resp authorResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if config.OutputFormat() == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp.Author)
	}

	printAuthor(resp.Author)
	return nil
}

func runAuthorUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	fields := map[string]interface{}{}
	if authorName != "" {
		fields["name"] = authorName
	}
	if authorBio != "" {
		fields["bio"] = authorBio
	}
	if authorWebsite != "" {
		fields["website"] = authorWebsite
	}
	if authorLocation != "" {
		fields["location"] = authorLocation
	}
	if authorAvatar != "" {
		fields["avatar"] = authorAvatar
	}
	if authorGitHub != "" {
		fields["github"] = authorGitHub
	}
	if authorLinkedIn != "" {
		fields["linkedin"] = authorLinkedIn
	}
	if len(fields) == 0 {
		return fmt.Errorf("no updates specified")
	}

	body := map[string]interface{}{
		"author": fields,
	}

	data, err := client.Put("/author/", body)
	if err != nil {
		return err
	}

	var resp authorResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if config.OutputFormat() == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp.Author)
	}

	fmt.Printf("Updated author profile: %s\n", resp.Author.Name)
	return nil
}

func printAuthor(a Author) {
	fmt.Printf("Name:     %s\n", a.Name)
	fmt.Printf("Email:    %s\n", a.Email)
	if a.Bio != "" {
		fmt.Printf("Bio:      %s\n", a.Bio)
	}
	if a.Website != "" {
		fmt.Printf("Website:  %s\n", a.Website)
	}
	if a.Location != "" {
		fmt.Printf("Location: %s\n", a.Location)
	}
	if a.GitHub != "" {
		fmt.Printf("GitHub:   %s\n", a.GitHub)
	}
	if a.LinkedIn != "" {
		fmt.Printf("LinkedIn: %s\n", a.LinkedIn)
	}
	if a.URL != "" {
		fmt.Printf("URL:      %s\n", a.URL)
	}
}
