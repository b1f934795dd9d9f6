package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"video-catalog-service/internal/config"
	"video-catalog-service/internal/domain/entities"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	searchEndpoint = "/search"
	videosEndpoint = "/videos"

	defaultQuery           = "manipulação medicamentos"
	defaultRegionCode      = "BR"
	defaultMaxResults      = 10
	defaultPublishedAfter  = "2025-01-01T00:00:00Z"
	defaultPublishedBefore = "2026-01-01T00:00:00Z"
)

// Client queries the YouTube Data API for videos matching a fixed topic,
// region and publication window.
type Client struct {
	cfg        config.YouTubeConfig
	httpClient *http.Client
}

// NewClient creates a YouTube client. A missing API key is a startup error,
// not a per-call condition.
func NewClient(cfg config.YouTubeConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("youtube api key is not configured (YOUTUBE_API_KEY)")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Query == "" {
		cfg.Query = defaultQuery
	}
	if cfg.RegionCode == "" {
		cfg.RegionCode = defaultRegionCode
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.PublishedAfter == "" {
		cfg.PublishedAfter = defaultPublishedAfter
	}
	if cfg.PublishedBefore == "" {
		cfg.PublishedBefore = defaultPublishedBefore
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string    `json:"title"`
		Description  string    `json:"description"`
		ChannelTitle string    `json:"channelTitle"`
		PublishedAt  time.Time `json:"publishedAt"`
	} `json:"snippet"`
}

type detailsResponse struct {
	Items []struct {
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Fetch runs the search request and a per-item content-details lookup, and
// maps the results into catalog records. A failed search is fatal for the
// whole fetch; a failed detail lookup only costs that item its duration.
func (c *Client) Fetch(ctx context.Context) ([]entities.Video, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("maxResults", strconv.Itoa(c.cfg.MaxResults))
	params.Set("type", "video")
	params.Set("q", c.cfg.Query)
	params.Set("regionCode", c.cfg.RegionCode)
	params.Set("publishedAfter", c.cfg.PublishedAfter)
	params.Set("publishedBefore", c.cfg.PublishedBefore)
	params.Set("key", c.cfg.APIKey)

	searchURL := c.cfg.BaseURL + searchEndpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("youtube search failed with status %d", resp.StatusCode)
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("failed to decode youtube search response: %w", err)
	}

	videos := make([]entities.Video, 0, len(search.Items))
	for _, item := range search.Items {
		video := entities.Video{
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			ChannelName: item.Snippet.ChannelTitle,
			PublishDate: item.Snippet.PublishedAt,
			Duration:    c.fetchDuration(ctx, item.ID.VideoID),
			// The platform has no separate author concept.
			Author: item.Snippet.ChannelTitle,
		}
		videos = append(videos, video)
	}

	return videos, nil
}

// fetchDuration looks up the ISO-8601 duration for one video. Any failure
// leaves the duration empty; the item is still imported.
func (c *Client) fetchDuration(ctx context.Context, videoID string) string {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", videoID)
	params.Set("key", c.cfg.APIKey)

	detailsURL := c.cfg.BaseURL + videosEndpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, detailsURL, nil)
	if err != nil {
		return ""
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}

	var details detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return ""
	}

	if len(details.Items) == 0 {
		return ""
	}

	return details.Items[0].ContentDetails.Duration
}
