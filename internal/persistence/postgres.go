package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Postgres driver

	"newswire/internal/config"
)

// PostgresDB implements Database for PostgreSQL.
type PostgresDB struct {
	db          *sql.DB
	articles    ArticleRepository
	preferences PreferenceRepository
}

// NewPostgresDB opens a connection pool and verifies it with a ping.
func NewPostgresDB(cfg config.Database) (*PostgresDB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresDB{
		db:          db,
		articles:    &postgresArticleRepo{db: db},
		preferences: &postgresPreferenceRepo{db: db},
	}, nil
}

func (p *PostgresDB) Articles() ArticleRepository       { return p.articles }
func (p *PostgresDB) Preferences() PreferenceRepository { return p.preferences }

func (p *PostgresDB) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *PostgresDB) Close() error {
	return p.db.Close()
}
