package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"newswire/internal/config"
	"newswire/internal/persistence"
)

// NewMigrateCmd creates the migrate command that applies pending schema
// migrations.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := persistence.NewPostgresDB(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			return persistence.NewMigrationManager(db).Migrate(cmd.Context())
		},
	}
}
