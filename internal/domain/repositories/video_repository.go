package repositories

import (
	"errors"

	"video-catalog-service/internal/domain/entities"
)

// ErrNotFound is returned when a video does not exist or is soft-deleted.
var ErrNotFound = errors.New("video not found")

// VideoRepository defines operations for Video persistence.
type VideoRepository interface {
	// Create inserts a new video and returns it with its assigned id.
	Create(video entities.Video) (entities.Video, error)

	// CreateBatch inserts all given videos in a single transaction and
	// returns the number inserted.
	CreateBatch(videos []entities.Video) (int, error)

	// FindByID retrieves a non-deleted video by its id.
	FindByID(id int) (entities.Video, error)

	// FindAll retrieves the non-deleted videos matching all supplied filters.
	FindAll(params entities.VideoQueryParams) ([]entities.Video, error)

	// Update overwrites the mutable fields of a non-deleted video. The
	// deleted flag is never touched.
	Update(video entities.Video) error

	// SoftDelete marks a non-deleted video as deleted, leaving every other
	// field untouched.
	SoftDelete(id int) error
}
