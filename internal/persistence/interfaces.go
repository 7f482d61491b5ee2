// Package persistence provides the database abstraction for articles and
// user preferences, backed by PostgreSQL.
package persistence

import (
	"context"
	"errors"
	"time"

	"newswire/internal/core"
)

// ErrNotFound is returned when a detail lookup misses.
var ErrNotFound = errors.New("article not found")

// ErrNoPreference is returned when a user has no stored preference row. It is
// deliberately distinct from an empty result set.
var ErrNoPreference = errors.New("user preference not set")

// QueryOptions describes one paginated article query. Zero values mean
// "no restriction" for the respective dimension.
type QueryOptions struct {
	// Search restricts to rows where the term appears (case-insensitive)
	// in title, source_name, author or category.
	Search string

	// Category and Source are exact-match restrictions.
	Category string
	Source   string

	// PublishedDate restricts to rows published on that calendar date.
	PublishedDate *time.Time

	// Preference, when set, restricts to rows matching any non-empty
	// preferred dimension.
	Preference *core.PreferenceSet

	// Page is 1-based; values below 1 are treated as 1.
	Page int
}

// ArticleRepository handles article persistence operations. Articles are
// created by ingestion only; the retrieval path is read-only.
type ArticleRepository interface {
	// Create inserts a new article, assigning system timestamps.
	Create(ctx context.Context, article *core.Article) error

	// Get retrieves the full article record by ID. Returns ErrNotFound
	// when no row matches.
	Get(ctx context.Context, id string) (*core.Article, error)

	// ExistsBySourceID reports whether the provider already stored a row
	// with this upstream identifier. Dedup keys are namespaced per
	// provider; identical source_ids from different providers do not
	// collide.
	ExistsBySourceID(ctx context.Context, provider, sourceID string) (bool, error)

	// ExistsByTitle reports whether the provider already stored a row
	// with this title.
	ExistsByTitle(ctx context.Context, provider, title string) (bool, error)

	// Query runs one composed, paginated list query.
	Query(ctx context.Context, opts QueryOptions) (*core.ArticlePage, error)
}

// PreferenceRepository handles the per-user preference row.
type PreferenceRepository interface {
	// Get retrieves a user's preference row. Returns ErrNoPreference when
	// the user never stored one.
	Get(ctx context.Context, userID string) (*core.UserPreference, error)

	// Upsert creates the user's preference row or overwrites an existing
	// one.
	Upsert(ctx context.Context, pref *core.UserPreference) error
}

// Database is the storage entry point handed to the coordinator and server.
type Database interface {
	Articles() ArticleRepository
	Preferences() PreferenceRepository
	Ping(ctx context.Context) error
	Close() error
}
