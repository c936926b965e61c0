package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/folio-sh/folio/internal/config"
	"github.com/folio-sh/folio/internal/mdx"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.md> [file.md...]",
	Short: "Validate markdown/MDX files without uploading",
	Long: `Run the full validation pipeline over one or more files and report
every finding: security issues, unknown components, and syntax problems.
Use '-' to read from stdin. Exits non-zero if any file has errors.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

var checkStrict bool

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Treat warnings as errors")
}

type checkReport struct {
	File     string                `json:"file"`
	Valid    bool                  `json:"valid"`
	Errors   []mdx.ValidationError `json:"errors"`
	Warnings []mdx.ValidationError `json:"warnings"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	p := mdx.NewProcessor(nil, mdx.DefaultOptions())

	var reports []checkReport
	failed := 0

	for _, path := range args {
		raw, err := readCheckInput(path)
		if err != nil {
			return err
		}

		result := p.Validate(raw)
		if !result.Valid || (checkStrict && len(result.Warnings) > 0) {
			failed++
		}

		reports = append(reports, checkReport{
			File:     path,
			Valid:    result.Valid,
			Errors:   result.Errors,
			Warnings: result.Warnings,
		})
	}

	if config.OutputFormat() == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FILE\tSEVERITY\tKIND\tLINE\tMESSAGE")
		for _, r := range reports {
			if len(r.Errors) == 0 && len(r.Warnings) == 0 {
				fmt.Fprintf(w, "%s\t-\t-\t-\tok\n", r.File)
				continue
			}
			for _, e := range r.Errors {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.File, e.Severity, e.Kind, lineColumn(e), e.Message)
			}
			for _, e := range r.Warnings {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.File, e.Severity, e.Kind, lineColumn(e), e.Message)
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
	}
	return nil
}

func lineColumn(e mdx.ValidationError) string {
	if e.Line == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", e.Line)
}

func readCheckInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
