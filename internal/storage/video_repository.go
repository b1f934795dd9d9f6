package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"video-catalog-service/internal/domain/entities"
	"video-catalog-service/internal/domain/repositories"
)

// PostgresVideoRepository is the PostgreSQL implementation of VideoRepository.
type PostgresVideoRepository struct {
	DB *sqlx.DB
}

var _ repositories.VideoRepository = (*PostgresVideoRepository)(nil)

// NewPostgresVideoRepository creates a PostgreSQL video repository.
func NewPostgresVideoRepository(db *sqlx.DB) *PostgresVideoRepository {
	return &PostgresVideoRepository{
		DB: db,
	}
}

const insertVideoQuery = `
	INSERT INTO videos (
		title, duration, author, publish_date, description, channel_name, deleted
	) VALUES (
		:title, :duration, :author, :publish_date, :description, :channel_name, :deleted
	) RETURNING *
`

// Create inserts a new video. The database assigns the id.
func (r *PostgresVideoRepository) Create(video entities.Video) (entities.Video, error) {
	rows, err := r.DB.NamedQuery(insertVideoQuery, video)
	if err != nil {
		return entities.Video{}, err
	}
	defer rows.Close()

	if rows.Next() {
		var result entities.Video
		if err := rows.StructScan(&result); err != nil {
			return entities.Video{}, err
		}
		return result, nil
	}

	if err := rows.Err(); err != nil {
		return entities.Video{}, err
	}

	return entities.Video{}, errors.New("insert returned no row")
}

// CreateBatch inserts all videos inside one transaction. Either every record
// is persisted or none is.
func (r *PostgresVideoRepository) CreateBatch(videos []entities.Video) (int, error) {
	if len(videos) == 0 {
		return 0, nil
	}

	tx, err := r.DB.Beginx()
	if err != nil {
		return 0, err
	}

	for _, video := range videos {
		if _, err := tx.NamedExec(insertVideoQuery, video); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(videos), nil
}

// FindByID returns the video when it exists and is not soft-deleted.
func (r *PostgresVideoRepository) FindByID(id int) (entities.Video, error) {
	var video entities.Video

	query := "SELECT * FROM videos WHERE id = $1 AND deleted = FALSE"
	if err := r.DB.Get(&video, query, id); err != nil {
		if err == sql.ErrNoRows {
			return entities.Video{}, repositories.ErrNotFound
		}
		return entities.Video{}, err
	}

	return video, nil
}

// FindAll returns every non-deleted video matching the supplied filters.
func (r *PostgresVideoRepository) FindAll(params entities.VideoQueryParams) ([]entities.Video, error) {
	videos := []entities.Video{}

	query, args := buildListQuery(params)
	if err := r.DB.Select(&videos, query, args...); err != nil {
		return nil, err
	}

	return videos, nil
}

// likeEscaper neutralizes LIKE metacharacters so caller-supplied filters
// always match as literal substrings.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildListQuery composes the base not-deleted predicate with each optional
// filter. Substring matches are case-sensitive literal containment; the
// general search term is ORed across title, description and channel name.
func buildListQuery(params entities.VideoQueryParams) (string, []interface{}) {
	query := "SELECT * FROM videos WHERE deleted = FALSE"
	args := []interface{}{}

	if params.Title != "" {
		args = append(args, escapeLike(params.Title))
		query += fmt.Sprintf(" AND title LIKE '%%' || $%d || '%%' ESCAPE '\\'", len(args))
	}

	if params.Duration != "" {
		args = append(args, escapeLike(params.Duration))
		query += fmt.Sprintf(" AND duration LIKE '%%' || $%d || '%%' ESCAPE '\\'", len(args))
	}

	if params.Author != "" {
		args = append(args, escapeLike(params.Author))
		query += fmt.Sprintf(" AND author LIKE '%%' || $%d || '%%' ESCAPE '\\'", len(args))
	}

	if params.PublishedAfter != nil {
		args = append(args, *params.PublishedAfter)
		query += fmt.Sprintf(" AND publish_date > $%d", len(args))
	}

	if params.Search != "" {
		args = append(args, escapeLike(params.Search))
		n := len(args)
		query += fmt.Sprintf(
			" AND (title LIKE '%%' || $%d || '%%' ESCAPE '\\' OR description LIKE '%%' || $%d || '%%' ESCAPE '\\' OR channel_name LIKE '%%' || $%d || '%%' ESCAPE '\\')",
			n, n, n)
	}

	query += " ORDER BY id"
	return query, args
}

// Update overwrites the mutable fields of a non-deleted video. Zero rows
// affected means the record is gone or soft-deleted.
func (r *PostgresVideoRepository) Update(video entities.Video) error {
	query := `
		UPDATE videos SET
			title = :title,
			duration = :duration,
			author = :author,
			publish_date = :publish_date,
			description = :description,
			channel_name = :channel_name
		WHERE id = :id AND deleted = FALSE
	`

	result, err := r.DB.NamedExec(query, video)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// SoftDelete flips the deleted flag and nothing else.
func (r *PostgresVideoRepository) SoftDelete(id int) error {
	query := "UPDATE videos SET deleted = TRUE WHERE id = $1 AND deleted = FALSE"

	result, err := r.DB.Exec(query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	return nil
}
