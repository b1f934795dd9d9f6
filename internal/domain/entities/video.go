package entities

import (
	"time"
)

// Video is the single persisted entity of the catalog. Soft-deleted records
// keep their id forever and are invisible to every default operation.
type Video struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title" binding:"required,max=200"`
	Duration    string    `json:"duration" db:"duration"`
	Author      string    `json:"author" db:"author"`
	PublishDate time.Time `json:"publishDate" db:"publish_date" binding:"required"`
	Description string    `json:"description" db:"description"`
	ChannelName string    `json:"channelName" db:"channel_name"`
	Deleted     bool      `json:"deleted" db:"deleted"`
}

// VideoQueryParams carries the optional list filters. Empty strings and a nil
// timestamp mean "filter not supplied".
type VideoQueryParams struct {
	Title          string     `json:"title"`
	Duration       string     `json:"duration"`
	Author         string     `json:"author"`
	PublishedAfter *time.Time `json:"publishedAfter"`
	Search         string     `json:"q"`
}
