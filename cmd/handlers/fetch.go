package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"newswire/internal/config"
	"newswire/internal/ingest"
	"newswire/internal/persistence"
	"newswire/internal/sources"
)

// NewFetchCmd creates the fetch command that runs one ingestion cycle. An
// external scheduler invokes this periodically; the command itself holds no
// timing logic.
func NewFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [guardian|newsapi|nyt|all]",
		Short: "Run one ingestion cycle for a provider (default: all)",
		Long: `Fetch the latest articles from one provider, or from all providers
concurrently, and store what is new. Re-running against the same upstream page
inserts nothing.

Examples:
  # One cycle across all providers (typical cron entry)
  newswire fetch

  # One provider only
  newswire fetch guardian`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := "all"
			if len(args) == 1 {
				provider = args[0]
			}
			return runFetch(cmd, provider)
		},
	}
}

func runFetch(cmd *cobra.Command, provider string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := persistence.NewPostgresDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	byName := map[string]sources.Source{
		"guardian": sources.NewGuardian(cfg.Providers.Guardian),
		"newsapi":  sources.NewNewsAPI(cfg.Providers.NewsAPI),
		"nyt":      sources.NewNYT(cfg.Providers.NYT),
	}

	coordinator := ingest.NewCoordinator(db)
	ctx := cmd.Context()

	if provider == "all" {
		// Provider failures are logged inside RunAll and isolated from
		// each other; a partially failed cycle is not a command failure.
		coordinator.RunAll(ctx, []sources.Source{
			byName["guardian"],
			byName["newsapi"],
			byName["nyt"],
		})
		return nil
	}

	src, ok := byName[provider]
	if !ok {
		return fmt.Errorf("unknown provider %q (expected guardian, newsapi, nyt or all)", provider)
	}
	if _, err := coordinator.Run(ctx, src); err != nil {
		return err
	}
	return nil
}
