package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"newswire/internal/core"
)

const articleColumns = `id, provider, source_id, source_name, author, title,
	description, url, image_url, published_at, content, category,
	created_at, updated_at`

// postgresArticleRepo implements ArticleRepository for PostgreSQL.
type postgresArticleRepo struct {
	db *sql.DB
}

func (r *postgresArticleRepo) Create(ctx context.Context, article *core.Article) error {
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query,
		article.ID,
		article.Provider,
		nullString(article.SourceID),
		nullString(article.SourceName),
		nullString(article.Author),
		article.Title,
		nullString(article.Description),
		nullString(article.URL),
		nullString(article.ImageURL),
		nullTime(article.PublishedAt),
		nullString(article.Content),
		nullString(article.Category),
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}
	return nil
}

func (r *postgresArticleRepo) Get(ctx context.Context, id string) (*core.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var (
		a                                 core.Article
		sourceID, sourceName, author      sql.NullString
		description, articleURL, imageURL sql.NullString
		content, category                 sql.NullString
		publishedAt                       sql.NullTime
	)
	err := row.Scan(
		&a.ID, &a.Provider, &sourceID, &sourceName, &author, &a.Title,
		&description, &articleURL, &imageURL, &publishedAt, &content, &category,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load article: %w", err)
	}

	a.SourceID = sourceID.String
	a.SourceName = sourceName.String
	a.Author = author.String
	a.Description = description.String
	a.URL = articleURL.String
	a.ImageURL = imageURL.String
	a.Content = content.String
	a.Category = category.String
	if publishedAt.Valid {
		t := publishedAt.Time.UTC()
		a.PublishedAt = &t
	}
	return &a, nil
}

func (r *postgresArticleRepo) ExistsBySourceID(ctx context.Context, provider, sourceID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM articles WHERE provider = $1 AND source_id = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, provider, sourceID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check source_id existence: %w", err)
	}
	return exists, nil
}

func (r *postgresArticleRepo) ExistsByTitle(ctx context.Context, provider, title string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM articles WHERE provider = $1 AND title = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, provider, title).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check title existence: %w", err)
	}
	return exists, nil
}

func (r *postgresArticleRepo) Query(ctx context.Context, opts QueryOptions) (*core.ArticlePage, error) {
	where, args := buildArticleFilter(opts)

	var total int
	countQuery := `SELECT COUNT(*) FROM articles` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	current := page(opts)
	listQuery := `SELECT id, source_name, author, title, published_at, category FROM articles` +
		where +
		fmt.Sprintf(" ORDER BY published_at DESC NULLS LAST, created_at DESC LIMIT $%d OFFSET $%d",
			len(args)+1, len(args)+2)
	args = append(args, core.PageSize, (current-1)*core.PageSize)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	items := []core.ArticleSummary{}
	for rows.Next() {
		var (
			item                      core.ArticleSummary
			sourceName, author, categ sql.NullString
			publishedAt               sql.NullTime
		)
		if err := rows.Scan(&item.ID, &sourceName, &author, &item.Title, &publishedAt, &categ); err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		item.SourceName = sourceName.String
		item.Author = author.String
		item.Category = categ.String
		if publishedAt.Valid {
			t := publishedAt.Time.UTC()
			item.PublishedAt = &t
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate article rows: %w", err)
	}

	result := core.NewArticlePage(items, current, total)
	return &result, nil
}

// postgresPreferenceRepo implements PreferenceRepository for PostgreSQL.
type postgresPreferenceRepo struct {
	db *sql.DB
}

func (r *postgresPreferenceRepo) Get(ctx context.Context, userID string) (*core.UserPreference, error) {
	query := `
		SELECT user_id, prefer_source, prefer_categories, prefer_author, created_at, updated_at
		FROM user_preferences WHERE user_id = $1
	`
	var pref core.UserPreference
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&pref.UserID, &pref.PreferSource, &pref.PreferCategories, &pref.PreferAuthor,
		&pref.CreatedAt, &pref.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNoPreference
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user preference: %w", err)
	}
	return &pref, nil
}

func (r *postgresPreferenceRepo) Upsert(ctx context.Context, pref *core.UserPreference) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO user_preferences (user_id, prefer_source, prefer_categories, prefer_author, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			prefer_source = EXCLUDED.prefer_source,
			prefer_categories = EXCLUDED.prefer_categories,
			prefer_author = EXCLUDED.prefer_author,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		pref.UserID, pref.PreferSource, pref.PreferCategories, pref.PreferAuthor, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user preference: %w", err)
	}
	pref.UpdatedAt = now
	if pref.CreatedAt.IsZero() {
		pref.CreatedAt = now
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
