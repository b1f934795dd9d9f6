package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"video-catalog-service/internal/config"
	"video-catalog-service/internal/domain/repositories"
)

// Repositories bundles every repository backed by the shared connection.
type Repositories struct {
	db              *sqlx.DB
	VideoRepository repositories.VideoRepository
}

// NewDBConnection opens a PostgreSQL connection pool.
func NewDBConnection(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	return sqlx.Connect("postgres", psqlInfo)
}

// NewRepositories creates the repository bundle.
func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		db:              db,
		VideoRepository: NewPostgresVideoRepository(db),
	}
}

// Close closes the underlying database connection.
func (r *Repositories) Close() error {
	return r.db.Close()
}

const videosSchema = `
CREATE TABLE IF NOT EXISTS videos (
	id SERIAL PRIMARY KEY,
	title VARCHAR(200) NOT NULL,
	duration TEXT,
	author TEXT,
	publish_date TIMESTAMPTZ NOT NULL,
	description TEXT,
	channel_name TEXT,
	deleted BOOLEAN NOT NULL DEFAULT FALSE
)`

// EnsureSchema creates the videos table if it does not exist yet. It is
// idempotent and safe to run on every startup.
func EnsureSchema(db *sqlx.DB) error {
	_, err := db.Exec(videosSchema)
	return err
}
