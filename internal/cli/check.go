// Package cli implements the collcheck command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/collcheck/internal/adapters/filesystem"
	"github.com/example/collcheck/internal/adapters/postgres"
	"github.com/example/collcheck/internal/app"
	"github.com/example/collcheck/internal/config"
	"github.com/example/collcheck/internal/locale"
	"github.com/example/collcheck/internal/ports/primary"
)

// checkOptions holds the flag values for the root check command.
type checkOptions struct {
	now        bool
	assumeGood bool
	localePath string
	table      string
	schema     string
}

// NewRootCmd returns the collcheck root command. Running it performs the
// drift check against the database named by the positional connection string.
func NewRootCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "collcheck CONNINFO",
		Short: "Detect OS collation data changes behind database indexes",
		Long: `collcheck compares the OS locale files backing a database's index
collations against a recorded baseline and emits the REINDEX and
baseline-update statements needed after a collation change.

By default the plan is only printed (pipeable into psql); pass --now to
execute it inside a single transaction.

Examples:
  collcheck "dbname=app"                     # print the plan
  collcheck --now "dbname=app"               # execute it
  collcheck --assume-good "dbname=app"       # first run on a known-good host`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.now, "now", false, "execute the plan instead of only printing it")
	cmd.Flags().BoolVar(&opts.assumeGood, "assume-good", false, "baseline first-seen locales without reindexing them")
	cmd.Flags().StringVar(&opts.localePath, "locale-path", "", "locale search root (default: first conventional directory that exists)")
	cmd.Flags().StringVar(&opts.table, "table", config.DefaultTable, "baseline table name")
	cmd.Flags().StringVar(&opts.schema, "schema", config.DefaultSchema, "baseline table schema")

	return cmd
}

func runCheck(cmd *cobra.Command, conninfo string, opts checkOptions) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyConfig(cmd, cfg, &opts)

	root := opts.localePath
	if root == "" {
		root, err = locale.DiscoverSearchRoot()
		if err != nil {
			return err
		}
	}

	db, err := postgres.Open(ctx, conninfo)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := app.NewCheckService(
		postgres.NewCatalogRepository(db),
		postgres.NewBaselineRepository(db, opts.schema, opts.table),
		filesystem.NewProber(root),
		opts.schema,
		opts.table,
	)

	p, err := svc.BuildPlan(ctx, primary.CheckRequest{AssumeGood: opts.assumeGood})
	if err != nil {
		return err
	}

	if p.Empty() {
		fmt.Println("-- no collation changes detected")
		return nil
	}

	if err := p.Render(os.Stdout); err != nil {
		return err
	}

	if opts.now {
		if err := postgres.NewExecutor(db).Execute(ctx, p); err != nil {
			return fmt.Errorf("failed to execute plan: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%s executed %d statements\n",
			color.New(color.FgGreen).Sprint("✓"), len(p.SQLStatements()))
	}

	return nil
}

// applyConfig fills in defaults from the config file for flags the user did
// not set explicitly.
func applyConfig(cmd *cobra.Command, cfg *config.Config, opts *checkOptions) {
	if !cmd.Flags().Changed("locale-path") && cfg.LocalePath != "" {
		opts.localePath = cfg.LocalePath
	}
	if !cmd.Flags().Changed("table") && cfg.Table != "" {
		opts.table = cfg.Table
	}
	if !cmd.Flags().Changed("schema") && cfg.Schema != "" {
		opts.schema = cfg.Schema
	}
}
