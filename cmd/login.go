package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/folio-sh/folio/api"
	"github.com/folio-sh/folio/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login [profile-name]",
	Short: "Configure folio with your site credentials",
	Long: `Interactive setup to configure folio with your site.

This will:
1. Ask for your site URL
2. Open your browser to create an API integration
3. Save your credentials to ~/.config/folio/config.yaml

Examples:
  folio login              # Set up default profile
  folio login mysite       # Set up profile named "mysite"
  folio login work --default  # Set up "work" as the default profile

Then use with:
  folio posts list                # Uses default profile
  folio -p mysite posts list      # Uses "mysite" profile`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

var (
	loginNoBrowser bool
	loginDefault   bool
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "Don't open browser automatically")
	loginCmd.Flags().BoolVar(&loginDefault, "default", false, "Set this profile as default")
}

func runLogin(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Determine profile name
	profileName := "default"
	if len(args) > 0 {
		profileName = args[0]
	}

	fmt.Printf("Setting up profile: %s\n", profileName)
	fmt.Println()

	// Get site URL
	fmt.Print("Enter your site URL (e.g., https://mysite.com): ")
	siteURL, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	siteURL = strings.TrimSpace(siteURL)

	// Normalize URL
	if !strings.HasPrefix(siteURL, "http://") && !strings.HasPrefix(siteURL, "https://") {
		siteURL = "https://" + siteURL
	}
	siteURL = strings.TrimSuffix(siteURL, "/")

	// Open browser to integrations page
	integrationsURL := siteURL + "/admin/#/settings/integrations/new"
	fmt.Println()
	fmt.Println("To get an Admin API key, you need to create an integration on your site.")
	fmt.Println()

	if !loginNoBrowser {
		fmt.Printf("Opening: %s\n", integrationsURL)
		fmt.Println()
		if err := openBrowser(integrationsURL); err != nil {
			fmt.Printf("Could not open browser. Please visit manually:\n  %s\n", integrationsURL)
		}
	} else {
		fmt.Printf("Please visit:\n  %s\n", integrationsURL)
	}

	fmt.Println()
	fmt.Println("In the admin panel:")
	fmt.Println("  1. Click 'Add integration'")
	fmt.Println("  2. Name it 'folio' (or anything you like)")
	fmt.Println("  3. Copy the 'Admin API Key'")
	fmt.Println()

	fmt.Print("Paste your Admin API Key here: ")
	adminKey, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	adminKey = strings.TrimSpace(adminKey)

	if adminKey == "" {
		return fmt.Errorf("admin key cannot be empty")
	}

	// Validate the key format
	if !strings.Contains(adminKey, ":") {
		return fmt.Errorf("invalid key format: expected 'id:secret' format")
	}

	// Test the connection
	fmt.Println()
	fmt.Println("Testing connection...")

	client := api.NewClient(&config.Config{URL: siteURL, Key: adminKey})

	data, err := client.Get("/site/", nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	var siteResp struct {
		Site struct {
			Title string `json:"title"`
		} `json:"site"`
	}
	if err := json.Unmarshal(data, &siteResp); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	fmt.Printf("Connected to: %s\n", siteResp.Site.Title)
	fmt.Println()

	// Save config
	cfg := config.Config{
		URL: siteURL,
		Key: adminKey,
	}

	if err := config.SaveSite(profileName, cfg, loginDefault); err != nil {
		return err
	}

	fmt.Printf("Saved profile '%s' to: %s\n", profileName, config.ConfigPath())
	fmt.Println()
	fmt.Println("You're all set! Try running:")
	if profileName == "default" {
		fmt.Println("  folio posts list")
		fmt.Println("  folio site info")
	} else {
		fmt.Printf("  folio -p %s posts list\n", profileName)
		fmt.Printf("  folio -p %s site info\n", profileName)
	}

	return nil
}

func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform")
	}

	return cmd.Start()
}
