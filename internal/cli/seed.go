package cli

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"daily-vocab-service/internal/config"
	pgstore "daily-vocab-service/internal/infra/postgres"
)

// NewSeedCmd loads the bundled sample content into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the word and question tables with sample content",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
				return err
			}

			sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
			db := bun.NewDB(sqldb, pgdialect.New())
			defer db.Close()

			if err := pgstore.SeedContent(cmd.Context(), db, sampleWords(), sampleQuestions()); err != nil {
				return err
			}
			log.Printf("seeded %d words and %d questions", len(sampleWords()), len(sampleQuestions()))
			return nil
		},
	}
}
