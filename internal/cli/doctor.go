package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/collcheck/internal/adapters/postgres"
	"github.com/example/collcheck/internal/config"
	"github.com/example/collcheck/internal/locale"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool
	var localePath string

	cmd := &cobra.Command{
		Use:   "doctor [CONNINFO]",
		Short: "Validate the collcheck environment",
		Long: `Health check for collcheck.

Validates:
- Locale directory discovery (or the --locale-path override)
- Config file syntax (~/.collcheck.yaml)
- Database connectivity and baseline table presence (when CONNINFO is given)

Examples:
  collcheck doctor                    # filesystem checks only
  collcheck doctor "dbname=app"       # also check the database
  collcheck doctor --quiet            # exit code only (0=healthy, 1=issues)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkLocaleDir(localePath),
				checkConfigFile(),
			}
			if len(args) == 1 {
				results = append(results, checkDatabase(args[0])...)
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				printResults(results, hasErrors)
			}
			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")
	cmd.Flags().StringVar(&localePath, "locale-path", "", "locale search root to validate")

	return cmd
}

func checkLocaleDir(override string) CheckResult {
	if override != "" {
		info, err := os.Stat(override)
		if err != nil || !info.IsDir() {
			return CheckResult{Name: "locale directory", Status: "✗",
				Details: fmt.Sprintf("%s is not a directory", override)}
		}
		return CheckResult{Name: "locale directory", Status: "✓", Details: override}
	}

	root, err := locale.DiscoverSearchRoot()
	if err != nil {
		return CheckResult{Name: "locale directory", Status: "✗",
			Details: "none of " + strings.Join(locale.SearchRootCandidates(), ", ") + " exist"}
	}
	return CheckResult{Name: "locale directory", Status: "✓", Details: root}
}

func checkConfigFile() CheckResult {
	path, err := config.Path()
	if err != nil {
		return CheckResult{Name: "config file", Status: "⚠", Details: err.Error()}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{Name: "config file", Status: "✓", Details: "not present (defaults apply)"}
	}
	if _, err := config.LoadFrom(path); err != nil {
		return CheckResult{Name: "config file", Status: "✗", Details: err.Error()}
	}
	return CheckResult{Name: "config file", Status: "✓", Details: path}
}

func checkDatabase(conninfo string) []CheckResult {
	ctx := context.Background()

	db, err := postgres.Open(ctx, conninfo)
	if err != nil {
		return []CheckResult{{Name: "database", Status: "✗", Details: err.Error()}}
	}
	defer db.Close()

	results := []CheckResult{{Name: "database", Status: "✓"}}

	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{}
	}
	schema, table := config.DefaultSchema, config.DefaultTable
	if cfg.Schema != "" {
		schema = cfg.Schema
	}
	if cfg.Table != "" {
		table = cfg.Table
	}

	exists, err := postgres.NewBaselineRepository(db, schema, table).TableExists(ctx)
	switch {
	case err != nil:
		results = append(results, CheckResult{Name: "baseline table", Status: "✗", Details: err.Error()})
	case exists:
		results = append(results, CheckResult{Name: "baseline table", Status: "✓",
			Details: fmt.Sprintf("%s.%s", schema, table)})
	default:
		results = append(results, CheckResult{Name: "baseline table", Status: "⚠",
			Details: fmt.Sprintf("%s.%s missing; the first run creates it", schema, table)})
	}

	refs, err := postgres.NewCatalogRepository(db).ReferencedCollations(ctx)
	if err != nil {
		results = append(results, CheckResult{Name: "collation refs", Status: "✗", Details: err.Error()})
	} else {
		results = append(results, CheckResult{Name: "collation refs", Status: "✓",
			Details: fmt.Sprintf("%d collations referenced by indexes", len(refs))})
	}

	return results
}

func printResults(results []CheckResult, hasErrors bool) {
	fmt.Println()
	fmt.Println("Check              Status")
	fmt.Println("─────────────────────────")
	for _, r := range results {
		icon := r.Status
		switch r.Status {
		case "✓":
			icon = color.New(color.FgGreen).Sprint(r.Status)
		case "⚠":
			icon = color.New(color.FgYellow).Sprint(r.Status)
		case "✗":
			icon = color.New(color.FgRed).Sprint(r.Status)
		}
		if r.Details != "" {
			icon += "  " + r.Details
		}
		fmt.Printf("%-18s %s\n", r.Name, icon)
	}
	fmt.Println()
	if hasErrors {
		fmt.Println("⚠ Issues found.")
	} else {
		fmt.Println("All checks passed.")
	}
}
