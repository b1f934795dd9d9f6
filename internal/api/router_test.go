package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-catalog-service/internal/api"
	"video-catalog-service/internal/auth"
	"video-catalog-service/internal/config"
	"video-catalog-service/internal/domain/entities"
	"video-catalog-service/internal/domain/repositories"
	"video-catalog-service/internal/services"
	"video-catalog-service/pkg/logger"
)

type memoryVideoRepository struct {
	nextID int
	videos map[int]entities.Video
}

func newMemoryVideoRepository() *memoryVideoRepository {
	return &memoryVideoRepository{nextID: 1, videos: map[int]entities.Video{}}
}

func (r *memoryVideoRepository) Create(video entities.Video) (entities.Video, error) {
	video.ID = r.nextID
	r.nextID++
	r.videos[video.ID] = video
	return video, nil
}

func (r *memoryVideoRepository) CreateBatch(videos []entities.Video) (int, error) {
	for _, video := range videos {
		if _, err := r.Create(video); err != nil {
			return 0, err
		}
	}
	return len(videos), nil
}

func (r *memoryVideoRepository) FindByID(id int) (entities.Video, error) {
	video, ok := r.videos[id]
	if !ok || video.Deleted {
		return entities.Video{}, repositories.ErrNotFound
	}
	return video, nil
}

func (r *memoryVideoRepository) FindAll(params entities.VideoQueryParams) ([]entities.Video, error) {
	result := []entities.Video{}
	for _, video := range r.videos {
		if video.Deleted {
			continue
		}
		if params.Title != "" && !strings.Contains(video.Title, params.Title) {
			continue
		}
		if params.Duration != "" && !strings.Contains(video.Duration, params.Duration) {
			continue
		}
		if params.Author != "" && !strings.Contains(video.Author, params.Author) {
			continue
		}
		if params.PublishedAfter != nil && !video.PublishDate.After(*params.PublishedAfter) {
			continue
		}
		if params.Search != "" &&
			!strings.Contains(video.Title, params.Search) &&
			!strings.Contains(video.Description, params.Search) &&
			!strings.Contains(video.ChannelName, params.Search) {
			continue
		}
		result = append(result, video)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memoryVideoRepository) Update(video entities.Video) error {
	existing, ok := r.videos[video.ID]
	if !ok || existing.Deleted {
		return repositories.ErrNotFound
	}
	video.Deleted = existing.Deleted
	r.videos[video.ID] = video
	return nil
}

func (r *memoryVideoRepository) SoftDelete(id int) error {
	existing, ok := r.videos[id]
	if !ok || existing.Deleted {
		return repositories.ErrNotFound
	}
	existing.Deleted = true
	r.videos[id] = existing
	return nil
}

type stubFetcher struct {
	videos []entities.Video
	err    error
}

func (f *stubFetcher) Fetch(ctx context.Context) ([]entities.Video, error) {
	return f.videos, f.err
}

type testAPI struct {
	router *gin.Engine
	repo   *memoryVideoRepository
}

func newTestAPI(t *testing.T, fetcher services.VideoFetcher) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpiryMinutes: 30},
		Auth:   config.AuthConfig{Username: "admin", Password: "password"},
	}

	log := logger.NewLogger(logger.Config{Level: logger.LevelError, ServiceName: "test"})
	repo := newMemoryVideoRepository()
	authService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryMinutes)
	videoService := services.NewVideoService(repo, fetcher, nil, log)

	router, err := api.NewRouter(cfg, videoService, authService, log)
	require.NoError(t, err)

	return &testAPI{router: router, repo: repo}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) login(t *testing.T) string {
	t.Helper()
	w := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func apiVideo(title string) entities.Video {
	return entities.Video{
		Title:       title,
		Duration:    "PT4M13S",
		Author:      "Canal Farmácia",
		PublishDate: time.Date(2025, 2, 10, 15, 0, 0, 0, time.UTC),
		Description: "aula sobre manipulação",
		ChannelName: "Canal Farmácia",
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{})

	w := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListEmptyStore(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{})

	w := a.do(http.MethodGet, "/api/videos", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreateRequiresAuth(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{})

	w := a.do(http.MethodPost, "/api/videos", "", apiVideo("Novo Vídeo"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, a.repo.videos)

	w = a.do(http.MethodPost, "/api/videos", "garbage-token", apiVideo("Novo Vídeo"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, a.repo.videos)
}

func TestCreateThenGetByID(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{})
	token := a.login(t)

	w := a.do(http.MethodPost, "/api/videos", token, apiVideo("Novo Vídeo"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created entities.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, fmt.Sprintf("/api/videos/%d", created.ID), w.Header().Get("Location"))

	w = a.do(http.MethodGet, fmt.Sprintf("/api/videos/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched entities.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Novo Vídeo", fetched.Title)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestCreateValidatesPayload(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{})
	token := a.login(t)

	missingTitle := apiVideo("")
	w := a.do(http.MethodPost, "/api/videos", token, missingTitle)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	longTitle := apiVideo(strings.Repeat("a", 201))
	w = a.do(http.MethodPost, "/api/videos", token, longTitle)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, a.repo.videos)
}

func TestListTitleFilter(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{})
	token := a.login(t)

	for _, title := range []string{"A", "B", "C"} {
		w := a.do(http.MethodPost, "/api/videos", token, apiVideo(title))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := a.do(http.MethodGet, "/api/videos?title=B", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var videos []entities.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &videos))
	require.Len(t, videos, 1)
	assert.Equal(t, "B", videos[0].Title)
}

func TestListRejectsBadTimestamp(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{})

	w := a.do(http.MethodGet, "/api/videos?publishedAfter=yesterday", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUnknownID(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{})

	w := a.do(http.MethodGet, "/api/videos/99", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodGet, "/api/videos/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateIDMismatch(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{})
	token := a.login(t)

	w := a.do(http.MethodPost, "/api/videos", token, apiVideo("original"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created entities.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	tampered := created
	tampered.Title = "tampered"
	w = a.do(http.MethodPut, fmt.Sprintf("/api/videos/%d", created.ID+1), token, tampered)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Storage untouched.
	assert.Equal(t, "original", a.repo.videos[created.ID].Title)
}

func TestUpdateHappyPath(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{})
	token := a.login(t)

	w := a.do(http.MethodPost, "/api/videos", token, apiVideo("before"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created entities.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	created.Title = "after"
	w = a.do(http.MethodPut, fmt.Sprintf("/api/videos/%d", created.ID), token, created)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "after", a.repo.videos[created.ID].Title)
}

func TestDeleteMakesRecordInvisibleButKeepsIt(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{})
	token := a.login(t)

	w := a.do(http.MethodPost, "/api/videos", token, apiVideo("Novo Vídeo"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created entities.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/videos/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(http.MethodGet, fmt.Sprintf("/api/videos/%d", created.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/videos/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	stored := a.repo.videos[created.ID]
	assert.True(t, stored.Deleted)
	assert.Equal(t, "Novo Vídeo", stored.Title)
}

func TestFetchImportsVideos(t *testing.T) {
	fetcher := &stubFetcher{videos: []entities.Video{apiVideo("um"), apiVideo("dois")}}
	a := newTestAPI(t, fetcher)
	token := a.login(t)

	w := a.do(http.MethodPost, "/api/videos/fetch", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, a.repo.videos, 2)
}

func TestFetchNothingAvailable(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{})
	token := a.login(t)

	w := a.do(http.MethodPost, "/api/videos/fetch", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, a.repo.videos)
}

func TestFetchRequiresAuth(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{videos: []entities.Video{apiVideo("um")}})

	w := a.do(http.MethodPost, "/api/videos/fetch", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, a.repo.videos)
}
