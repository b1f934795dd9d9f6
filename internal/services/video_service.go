package services

import (
	"context"
	"errors"
	"fmt"

	"video-catalog-service/internal/domain/entities"
	"video-catalog-service/internal/domain/repositories"
	"video-catalog-service/internal/messaging"
	"video-catalog-service/pkg/logger"
)

// Title length limit enforced on every write path.
const maxTitleLength = 200

// VideoFetcher pulls video records from the external platform.
type VideoFetcher interface {
	Fetch(ctx context.Context) ([]entities.Video, error)
}

// VideoService implements the catalog operations over the repository and the
// external video source.
type VideoService struct {
	repo     repositories.VideoRepository
	fetcher  VideoFetcher
	producer *messaging.KafkaProducer
	logger   logger.Logger
}

// NewVideoService creates the video service. The producer may be nil when
// event publishing is disabled.
func NewVideoService(repo repositories.VideoRepository, fetcher VideoFetcher, producer *messaging.KafkaProducer, log logger.Logger) *VideoService {
	return &VideoService{
		repo:     repo,
		fetcher:  fetcher,
		producer: producer,
		logger:   log,
	}
}

// FindAll returns the non-deleted videos matching the supplied filters. An
// empty result is a valid answer, never an error.
func (s *VideoService) FindAll(params entities.VideoQueryParams) ([]entities.Video, error) {
	videos, err := s.repo.FindAll(params)
	if err != nil {
		return nil, &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "failed to query videos",
			Err:     err,
		}
	}
	return videos, nil
}

// FindOne returns a single non-deleted video.
func (s *VideoService) FindOne(id int) (entities.Video, error) {
	video, err := s.repo.FindByID(id)
	if err != nil {
		return entities.Video{}, s.wrapRepoError(err, fmt.Sprintf("video %d not found", id))
	}
	return video, nil
}

// Create persists a new video. The repository assigns the id and the deleted
// flag always starts false, regardless of the payload.
func (s *VideoService) Create(video entities.Video) (entities.Video, error) {
	if err := validateTitle(video.Title); err != nil {
		return entities.Video{}, err
	}

	video.ID = 0
	video.Deleted = false

	created, err := s.repo.Create(video)
	if err != nil {
		return entities.Video{}, &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "failed to create video",
			Err:     err,
		}
	}

	s.publish(func() error { return s.producer.SendVideoCreated(created) })
	return created, nil
}

// Update overwrites all mutable fields of an existing non-deleted video. The
// deleted flag is never touched by an update.
func (s *VideoService) Update(video entities.Video) error {
	if err := validateTitle(video.Title); err != nil {
		return err
	}

	if err := s.repo.Update(video); err != nil {
		return s.wrapRepoError(err, fmt.Sprintf("video %d not found", video.ID))
	}

	s.publish(func() error { return s.producer.SendVideoUpdated(video) })
	return nil
}

// Remove soft-deletes a video. The record stays in storage with only its
// deleted flag flipped.
func (s *VideoService) Remove(id int) error {
	if err := s.repo.SoftDelete(id); err != nil {
		return s.wrapRepoError(err, fmt.Sprintf("video %d not found", id))
	}

	s.publish(func() error { return s.producer.SendVideoDeleted(id) })
	return nil
}

// Import fetches videos from the external platform and bulk-inserts them. A
// failed or empty fetch leaves storage untouched. Results are not
// deduplicated against existing records.
func (s *VideoService) Import(ctx context.Context) (int, error) {
	videos, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return 0, &ServiceError{
			Type:    ErrTypeExternal,
			Code:    ErrCodeUpstreamFailed,
			Message: "failed to fetch videos from the external platform",
			Err:     err,
		}
	}

	if len(videos) == 0 {
		return 0, &ServiceError{
			Type:    ErrTypeNotFound,
			Code:    ErrCodeNothingToImport,
			Message: "no videos available to import",
		}
	}

	for i := range videos {
		videos[i].ID = 0
		videos[i].Deleted = false
		videos[i].Title = truncateTitle(videos[i].Title)
	}

	count, err := s.repo.CreateBatch(videos)
	if err != nil {
		return 0, &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "failed to persist imported videos",
			Err:     err,
		}
	}

	s.logger.Info("imported %d videos from the external platform", count)
	s.publish(func() error { return s.producer.SendVideosImported(count) })
	return count, nil
}

func (s *VideoService) wrapRepoError(err error, notFoundMsg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return &ServiceError{
			Type:    ErrTypeNotFound,
			Code:    ErrCodeResourceNotFound,
			Message: notFoundMsg,
			Err:     err,
		}
	}
	return &ServiceError{
		Type:    ErrTypeDatabase,
		Code:    ErrCodeDBQuery,
		Message: "database operation failed",
		Err:     err,
	}
}

// publish sends an event when a producer is configured. Publish failures are
// logged and never surfaced to the caller.
func (s *VideoService) publish(send func() error) {
	if s.producer == nil {
		return
	}
	if err := send(); err != nil {
		s.logger.Warn("failed to publish video event: %v", err)
	}
}

func validateTitle(title string) error {
	if title == "" {
		return &ServiceError{
			Type:    ErrTypeValidation,
			Code:    ErrCodeInvalidInput,
			Message: "title must not be empty",
		}
	}
	if len([]rune(title)) > maxTitleLength {
		return &ServiceError{
			Type:    ErrTypeValidation,
			Code:    ErrCodeInvalidInput,
			Message: fmt.Sprintf("title must not exceed %d characters", maxTitleLength),
		}
	}
	return nil
}

// truncateTitle caps imported titles at the storage limit. Manual writes are
// rejected instead, imported records are clipped.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLength {
		return title
	}
	return string(runes[:maxTitleLength])
}
