package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"newswire/internal/config"
	"newswire/internal/core"
	"newswire/internal/ingest"
	"newswire/internal/persistence"
	"newswire/internal/sources"
)

// seedUserID is the user the sample preference row belongs to. Pass it as
// X-User-ID when exercising the preference endpoints locally.
const seedUserID = "demo-user"

// seedSource feeds fixture articles through the regular ingestion path so
// seeding stays idempotent like any other run.
type seedSource struct{}

func (seedSource) Name() string               { return "seed" }
func (seedSource) DedupKey() sources.DedupKey { return sources.DedupBySourceID }

func (seedSource) Fetch(context.Context) ([]core.Article, error) {
	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	twoDaysAgo := time.Now().UTC().Add(-48 * time.Hour)
	return []core.Article{
		{
			SourceID:    "education/2024/oct/30/how-to-pay-less-for-better-special-educational-needs-provision",
			SourceName:  "Guardian api",
			Author:      "Jane Smith",
			Title:       "How to pay less for better special educational needs provision",
			Description: "A detailed article about improving education quality.",
			URL:         "https://www.theguardian.com/education/2024/oct/30/how-to-pay-less-for-better-special-educational-needs-provision",
			PublishedAt: &yesterday,
			Content:     "Content of the article goes here.",
			Category:    "Education",
		},
		{
			SourceID:    "society/2024/oct/30/counsel-against-statutory-regulation-psychotherapists",
			SourceName:  "Guardian api",
			Author:      "John Doe",
			Title:       "Why I would counsel against statutory regulation of psychotherapists",
			Description: "Discussion on psychotherapist regulation.",
			URL:         "https://www.theguardian.com/society/2024/oct/30/counsel-against-statutory-regulation-psychotherapists",
			PublishedAt: &twoDaysAgo,
			Content:     "Content of the article goes here.",
			Category:    "Society",
		},
		{
			SourceID:    "bbc-budget-2024",
			SourceName:  "BBC News",
			Author:      "BBC News",
			Title:       "Budget 2024: what it means for you",
			Description: "The budget measures explained.",
			URL:         "https://www.bbc.co.uk/news/budget-2024",
			PublishedAt: &yesterday,
			Content:     "Full text here.",
		},
	}, nil
}

// NewSeedCmd creates the seed command that loads sample data for local
// development.
func NewSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample articles and a sample user preference",
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

			if _, err := ingest.NewCoordinator(db).Run(cmd.Context(), seedSource{}); err != nil {
				return fmt.Errorf("failed to seed articles: %w", err)
			}

			pref := &core.UserPreference{
				UserID:           seedUserID,
				PreferSource:     "BBC News,The Guardian",
				PreferCategories: "Society,Education",
				PreferAuthor:     "John Doe,Jane Smith",
			}
			if err := db.Preferences().Upsert(cmd.Context(), pref); err != nil {
				return fmt.Errorf("failed to seed user preference: %w", err)
			}

			fmt.Printf("seeded sample articles and a preference for user %q\n", seedUserID)
			return nil
		},
	}
}
