package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/folio-sh/folio/api"
	"github.com/folio-sh/folio/internal/config"
	"github.com/folio-sh/folio/internal/content"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage portfolio projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE:  runProjectsList,
}

var projectsGetCmd = &cobra.Command{
	Use:   "get <id-or-slug>",
	Short: "Get a project by ID or slug",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsGet,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <file.md>",
	Short: "Create a project from a markdown/MDX file",
	Long:  "Create a project from a markdown or MDX file with YAML frontmatter. Use repo, demo and tech frontmatter keys for project links and stack.",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsCreate,
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update <id-or-slug> [file.md]",
	Short: "Update a project",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runProjectsUpdate,
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id-or-slug>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsDelete,
}

var (
	projectsLimit  int
	projectsPage   int
	projectsAll    bool
	projectsStatus string
)

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsGetCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsUpdateCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)

	projectsListCmd.Flags().IntVar(&projectsLimit, "limit", 15, "Number of projects to return")
	projectsListCmd.Flags().IntVar(&projectsPage, "page", 1, "Page number")
	projectsListCmd.Flags().BoolVar(&projectsAll, "all", false, "Fetch all projects")

	projectsCreateCmd.Flags().StringVar(&projectsStatus, "status", "", "Project status: draft or published")
	projectsUpdateCmd.Flags().StringVar(&projectsStatus, "status", "", "Update project status")
}

// Project represents a portfolio project
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	HTML        string   `json:"html,omitempty"`
	Markdown    string   `json:"markdown,omitempty"`
	Status      string   `json:"status"`
	Featured    bool     `json:"featured"`
	RepoURL     string   `json:"repo_url,omitempty"`
	DemoURL     string   `json:"demo_url,omitempty"`
	Tech        []string `json:"tech,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	PublishedAt string   `json:"published_at,omitempty"`
	URL         string   `json:"url,omitempty"`
	FeatureImg  string   `json:"feature_image,omitempty"`
	Tags        []Tag    `json:"tags,omitempty"`
}

type projectsResponse struct {
	Projects []Project `json:"projects"`
	Meta     struct {
		Pagination struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
			Pages int `json:"pages"`
			Total int `json:"total"`
			Next  int `json:"next"`
			Prev  int `json:"prev"`
		} `json:"pagination"`
	} `json:"meta"`
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	var allProjects []Project

	if projectsAll {
		page := 1
		for {
			params := url.Values{}
			params.Set("limit", "100")
			params.Set("page", fmt.Sprintf("%d", page))

			data, err := client.Get("/projects/", params)
			if err != nil {
				return err
			}

			var resp projectsResponse
			if err := json.Unmarshal(data, &resp); err != nil {
				return fmt.Errorf("parsing response: %w", err)
			}

			allProjects = append(allProjects, resp.Projects...)

			if resp.Meta.Pagination.Next == 0 {
				break
			}
			page = resp.Meta.Pagination.Next
		}
	} else {
		params := url.Values{}
		params.Set("limit", fmt.Sprintf("%d", projectsLimit))
		params.Set("page", fmt.Sprintf("%d", projectsPage))

		data, err := client.Get("/projects/", params)
		if err != nil {
			return err
		}

		var resp projectsResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
		allProjects = resp.Projects
	}

	if config.OutputFormat() == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(allProjects)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tTECH")
	for _, p := range allProjects {
		title := p.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		tech := strings.Join(p.Tech, ",")
		if tech == "" {
			tech = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, title, p.Status, tech)
	}
	return w.Flush()
}

func runProjectsGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	project, err := getProject(client, args[0])
	if err != nil {
		return err
	}

	if config.OutputFormat() == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(project)
	}

	fmt.Printf("ID:        %s\n", project.ID)
	fmt.Printf("Title:     %s\n", project.Title)
	fmt.Printf("Slug:      %s\n", project.Slug)
	fmt.Printf("Status:    %s\n", project.Status)
	fmt.Printf("URL:       %s\n", project.URL)
	if project.RepoURL != "" {
		fmt.Printf("Repo:      %s\n", project.RepoURL)
	}
	if project.DemoURL != "" {
		fmt.Printf("Demo:      %s\n", project.DemoURL)
	}
	if len(project.Tech) > 0 {
		fmt.Printf("Tech:      %s\n", strings.Join(project.Tech, ", "))
	}
	if project.PublishedAt != "" {
		fmt.Printf("Published: %s\n", project.PublishedAt)
	}
	return nil
}

func projectPayload(parsed *content.ParsedContent) map[string]interface{} {
	project := map[string]interface{}{
		"title":    parsed.Frontmatter.Title,
		"html":     parsed.HTML,
		"markdown": parsed.Markdown,
	}

	if parsed.Frontmatter.Slug != "" {
		project["slug"] = parsed.Frontmatter.Slug
	}
	if parsed.Frontmatter.RepoURL != "" {
		project["repo_url"] = parsed.Frontmatter.RepoURL
	}
	if parsed.Frontmatter.DemoURL != "" {
		project["demo_url"] = parsed.Frontmatter.DemoURL
	}
	if len(parsed.Frontmatter.Tech) > 0 {
		project["tech"] = parsed.Frontmatter.Tech
	}
	if parsed.Frontmatter.FeatureImg != "" {
		project["feature_image"] = parsed.Frontmatter.FeatureImg
	}
	if parsed.Frontmatter.Featured {
		project["featured"] = true
	}

	if len(parsed.Frontmatter.Tags) > 0 {
		var tags []map[string]string
		for _, t := range parsed.Frontmatter.Tags {
			tags = append(tags, map[string]string{"name": t})
		}
		project["tags"] = tags
	}

	return project
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	parsed, err := content.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("parsing file: %w", err)
	}
	printContentWarnings(parsed)

	project := projectPayload(parsed)

	status := "draft"
	if parsed.Frontmatter.Status != "" {
		status = parsed.Frontmatter.Status
	}
	if projectsStatus != "" {
		status = projectsStatus
	}
	project["status"] = status

	body := map[string]interface{}{
		"projects": []interface{}{project},
	}

	data, err := client.Post("/projects/", body)
	if err != nil {
		return err
	}

	var resp projectsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if len(resp.Projects) == 0 {
		return fmt.Errorf("no project in response")
	}

	created := resp.Projects[0]

	if config.OutputFormat() == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(created)
	}

	fmt.Printf("Created project: %s\n", created.Title)
	fmt.Printf("  ID:     %s\n", created.ID)
	fmt.Printf("  Slug:   %s\n", created.Slug)
	fmt.Printf("  Status: %s\n", created.Status)
	return nil
}

func runProjectsUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	existing, err := getProject(client, args[0])
	if err != nil {
		return err
	}

	project := map[string]interface{}{
		"updated_at": existing.UpdatedAt,
	}

	if len(args) > 1 {
		parsed, err := content.ParseFile(args[1])
		if err != nil {
			return fmt.Errorf("parsing file: %w", err)
		}
		printContentWarnings(parsed)

		for k, v := range projectPayload(parsed) {
			project[k] = v
		}
		if parsed.Frontmatter.Title == "" {
			delete(project, "title")
		}
		project["featured"] = parsed.Frontmatter.Featured

		if parsed.Frontmatter.Status != "" && projectsStatus == "" {
			project["status"] = parsed.Frontmatter.Status
		}
	}

	if projectsStatus != "" {
		project["status"] = projectsStatus
	}

	body := map[string]interface{}{
		"projects": []interface{}{project},
	}

	data, err := client.Put(fmt.Sprintf("/projects/%s/", existing.ID), body)
	if err != nil {
		return err
	}

	var resp projectsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if len(resp.Projects) == 0 {
		return fmt.Errorf("no project in response")
	}

	updated := resp.Projects[0]

	if config.OutputFormat() == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(updated)
	}

	fmt.Printf("Updated project: %s\n", updated.Title)
	fmt.Printf("  ID:     %s\n", updated.ID)
	fmt.Printf("  Status: %s\n", updated.Status)
	return nil
}

func runProjectsDelete(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	existing, err := getProject(client, args[0])
	if err != nil {
		return err
	}

	_, err = client.Delete(fmt.Sprintf("/projects/%s/", existing.ID))
	if err != nil {
		return err
	}

	if config.OutputFormat() == "json" {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{
			"deleted": existing.ID,
			"title":   existing.Title,
		})
	}

	fmt.Printf("Deleted project: %s (%s)\n", existing.Title, existing.ID)
	return nil
}

func getProject(client *api.Client, idOrSlug string) (*Project, error) {
	data, err := client.Get(fmt.Sprintf("/projects/%s/", idOrSlug), nil)
	if err == nil {
		var resp projectsResponse
		if err := json.Unmarshal(data, &resp); err == nil && len(resp.Projects) > 0 {
			return &resp.Projects[0], nil
		}
	}

	params := url.Values{}
	params.Set("filter", fmt.Sprintf("slug:%s", idOrSlug))
	data, err = client.Get("/projects/", params)
	if err != nil {
		return nil, err
	}

	var resp projectsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if len(resp.Projects) == 0 {
		return nil, fmt.Errorf("project not found: %s", idOrSlug)
	}

	return &resp.Projects[0], nil
}
