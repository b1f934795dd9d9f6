package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"video-catalog-service/internal/domain/entities"
	"video-catalog-service/internal/services"
)

// VideosHandler serves the video catalog API.
type VideosHandler struct {
	videoService *services.VideoService
}

// NewVideosHandler creates a videos handler.
func NewVideosHandler(videoService *services.VideoService) *VideosHandler {
	return &VideosHandler{
		videoService: videoService,
	}
}

// statusCodeForError maps a service error type to an HTTP status code.
func statusCodeForError(err *services.ServiceError) int {
	switch err.Type {
	case services.ErrTypeValidation:
		return http.StatusBadRequest
	case services.ErrTypeNotFound:
		return http.StatusNotFound
	case services.ErrTypeUnauthorized:
		return http.StatusUnauthorized
	case services.ErrTypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a structured error response.
func respondError(c *gin.Context, err error) {
	if serviceError, ok := err.(*services.ServiceError); ok {
		c.JSON(statusCodeForError(serviceError), gin.H{
			"error": serviceError.Message,
			"code":  serviceError.Code,
			"type":  serviceError.Type,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": err.Error(),
		"code":  "unknown_error",
	})
}

// FindAll lists the non-deleted videos matching the optional filters:
// title, duration and author substrings, publishedAfter timestamp, and a
// general search term q matched against title, description and channel name.
func (h *VideosHandler) FindAll(c *gin.Context) {
	params := entities.VideoQueryParams{
		Title:    c.Query("title"),
		Duration: c.Query("duration"),
		Author:   c.Query("author"),
		Search:   c.Query("q"),
	}

	if raw := c.Query("publishedAfter"); raw != "" {
		publishedAfter, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "publishedAfter must be an RFC 3339 timestamp",
				"code":  "invalid_input",
			})
			return
		}
		params.PublishedAfter = &publishedAfter
	}

	videos, err := h.videoService.FindAll(params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

// FindOne returns a single non-deleted video by id.
func (h *VideosHandler) FindOne(c *gin.Context) {
	id, ok := h.videoID(c)
	if !ok {
		return
	}

	video, err := h.videoService.FindOne(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// Create inserts a new video. The server assigns the id; the response carries
// a Location header pointing at the created resource.
func (h *VideosHandler) Create(c *gin.Context) {
	var video entities.Video
	if err := c.ShouldBindJSON(&video); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"code":  "invalid_input",
		})
		return
	}

	created, err := h.videoService.Create(video)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/videos/%d", created.ID))
	c.JSON(http.StatusCreated, created)
}

// Update overwrites all mutable fields of an existing video. The path id must
// match the payload id.
func (h *VideosHandler) Update(c *gin.Context) {
	id, ok := h.videoID(c)
	if !ok {
		return
	}

	var video entities.Video
	if err := c.ShouldBindJSON(&video); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"code":  "invalid_input",
		})
		return
	}

	if id != video.ID {
		respondError(c, &services.ServiceError{
			Type:    services.ErrTypeValidation,
			Code:    services.ErrCodeInvalidInput,
			Message: "video id does not match the request path",
		})
		return
	}

	if err := h.videoService.Update(video); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Remove soft-deletes a video.
func (h *VideosHandler) Remove(c *gin.Context) {
	id, ok := h.videoID(c)
	if !ok {
		return
	}

	if err := h.videoService.Remove(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Fetch imports videos from the external platform and reports how many were
// inserted. Nothing found upstream is a 404 with no persistence side effect.
func (h *VideosHandler) Fetch(c *gin.Context) {
	count, err := h.videoService.Import(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   count,
		"message": fmt.Sprintf("%d videos imported", count),
	})
}

// videoID parses the id path parameter, answering 400 on garbage.
func (h *VideosHandler) videoID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "video id must be an integer",
			"code":  "invalid_input",
		})
		return 0, false
	}
	return id, true
}
