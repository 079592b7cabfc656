package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/search"
	"github.com/spf13/cobra"
)

const esMigrationTimeout = 30 * time.Second

func migrateCommand(cfg *Config) *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run storage migration",
		Long: heredoc.Doc(`
			Create the search history, search index and job queue tables. The
			external index is created as well when it is the configured engine.
		`),
		Example: heredoc.Doc(`
			$ ticketsearch migrate
			$ ticketsearch migrate --down
		`),
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			"group": "core",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *cfg, down)
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back the last postgres migration")
	return cmd
}

func runMigrations(ctx context.Context, cfg Config, down bool) error {
	fmt.Println("Preparing migration...")

	logger := initLogger(cfg.LogLevel)
	logger.Info("ticketsearch is migrating", "version", Version)

	logger.Info("Migrating Postgres...")
	if err := migratePostgres(logger, cfg, down); err != nil {
		return err
	}
	logger.Info("Migration Postgres done.")

	if cfg.Search.Engine != search.BackendExternalIndex || down {
		return nil
	}

	logger.Info("Migrating ES...")
	if err := migrateElasticsearch(ctx, logger, cfg); err != nil {
		return err
	}
	logger.Info("Migration ES done.")
	return nil
}

func migratePostgres(logger log.Logger, cfg Config, down bool) error {
	pgClient, err := initPostgres(logger, cfg.DB)
	if err != nil {
		logger.Error("failed to prepare migration", "error", err)
		return err
	}
	defer pgClient.Close()

	migrate := pgClient.Migrate
	if down {
		migrate = pgClient.MigrateDown
	}

	ver, err := migrate()
	if err != nil {
		return fmt.Errorf("problem with migration: %w", err)
	}
	logger.Info("postgres schema version", "version", ver)
	return nil
}

func migrateElasticsearch(ctx context.Context, logger log.Logger, cfg Config) error {
	esClient, err := initElasticsearch(logger, cfg.Elasticsearch)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, esMigrationTimeout)
	defer cancel()

	if err := esClient.CreateIdx(ctx); err != nil {
		return fmt.Errorf("create index %q: %w", cfg.Elasticsearch.IndexName, err)
	}
	return nil
}
