package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/folio-sh/folio/api"
	"github.com/folio-sh/folio/internal/config"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE:  runCategoriesList,
}

var categoriesGetCmd = &cobra.Command{
	Use:   "get <id-or-slug>",
	Short: "Get a category by ID or slug",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesGet,
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesCreate,
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id-or-slug>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesDelete,
}

var (
	categoriesLimit int
	categorySlug    string
	categoryDesc    string
)

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesGetCmd)
	categoriesCmd.AddCommand(categoriesCreateCmd)
	categoriesCmd.AddCommand(categoriesDeleteCmd)

	categoriesListCmd.Flags().IntVar(&categoriesLimit, "limit", 50, "Number of categories to return")

	categoriesCreateCmd.Flags().StringVar(&categorySlug, "slug", "", "Category slug")
	categoriesCreateCmd.Flags().StringVar(&categoryDesc, "description", "", "Category description")
}

// Category represents a top-level content grouping
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	PostCount   int    `json:"count,omitempty"`
}

type categoriesResponse struct {
	Categories []Category `json:"categories"`
}

func runCategoriesList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", categoriesLimit))

	data, err := client.Get("/categories/", params)
	if err != nil {
		return err
	}

	var resp categoriesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if config.OutputFormat() == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp.Categories)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSLUG\tPOSTS")
	for _, c := range resp.Categories {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", c.ID, c.Name, c.Slug, c.PostCount)
	}
	return w.Flush()
}

func runCategoriesGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	category, err := getCategory(client, args[0])
	if err != nil {
		return err
	}

	if config.OutputFormat() == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(category)
	}

	fmt.Printf("ID:          %s\n", category.ID)
	fmt.Printf("Name:        %s\n", category.Name)
	fmt.Printf("Slug:        %s\n", category.Slug)
	if category.Description != "" {
		fmt.Printf("Description: %s\n", category.Description)
	}
	return nil
}

func runCategoriesCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	category := map[string]interface{}{
		"name": args[0],
	}
	if categorySlug != "" {
		category["slug"] = categorySlug
	}
	if categoryDesc != "" {
		category["description"] = categoryDesc
	}

	body := map[string]interface{}{
		"categories": []interface{}{category},
	}

	data, err := client.Post("/categories/", body)
	if err != nil {
		return err
	}

	var resp categoriesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if len(resp.Categories) == 0 {
		return fmt.Errorf("no category in response")
	}

	created := resp.Categories[0]

	if config.OutputFormat() == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(created)
	}

	fmt.Printf("Created category: %s\n", created.Name)
	fmt.Printf("  ID:   %s\n", created.ID)
	fmt.Printf("  Slug: %s\n", created.Slug)
	return nil
}

func runCategoriesDelete(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	existing, err := getCategory(client, args[0])
	if err != nil {
		return err
	}

	_, err = client.Delete(fmt.Sprintf("/categories/%s/", existing.ID))
	if err != nil {
		return err
	}

	if config.OutputFormat() == "json" {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{
			"deleted": existing.ID,
			"name":    existing.Name,
		})
	}

	fmt.Printf("Deleted category: %s (%s)\n", existing.Name, existing.ID)
	return nil
}

func getCategory(client *api.Client, idOrSlug string) (*Category, error) {
	data, err := client.Get(fmt.Sprintf("/categories/%s/", idOrSlug), nil)
	if err == nil {
		var resp categoriesResponse
		if err := json.Unmarshal(data, &resp); err == nil && len(resp.Categories) > 0 {
			return &resp.Categories[0], nil
		}
	}

	params := url.Values{}
	params.Set("filter", fmt.Sprintf("slug:%s", idOrSlug))
	data, err = client.Get("/categories/", params)
	if err != nil {
		return nil, err
	}

	var resp categoriesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if len(resp.Categories) == 0 {
		return nil, fmt.Errorf("category not found: %s", idOrSlug)
	}

	return &resp.Categories[0], nil
}
