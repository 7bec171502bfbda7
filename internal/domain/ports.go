package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Endpoints consumed by the engagement pipeline.
const (
	EndpointSearch       = "search/tweets"
	EndpointUserTimeline = "statuses/user_timeline"
	EndpointFavorite     = "favorites/create"
	EndpointReshare      = "statuses/retweet/:id"
)

// Params are the parameters of a read or write call.
type Params map[string]any

// Response is the outcome of a read or write call that reached the platform.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// StatusMessage is the platform's status message. Empty when absent.
	StatusMessage string

	// Data is the response payload. Nil when absent.
	Data json.RawMessage
}

// OK reports whether the call succeeded.
func (r *Response) OK() bool {
	return r.Status == 200
}

// Client performs parameterized reads and writes against the platform.
// Errors are reserved for transport failures; any response that reached the
// platform is returned with its status.
type Client interface {
	Read(ctx context.Context, endpoint string, params Params) (*Response, error)
	Write(ctx context.Context, endpoint string, params Params) (*Response, error)
}

// Sink receives human-readable trace messages. Emit never fails.
type Sink interface {
	Emit(v any)
}

// EngagementRepository persists the ledger of completed engagements.
type EngagementRepository interface {
	// RecordEngagement stores an engagement. Recording the same post twice
	// keeps the first record.
	RecordEngagement(ctx context.Context, e *Engagement) error

	// ListEngagements returns engagements newest first. The cursor is opaque;
	// the returned cursor is empty when there are no more results.
	ListEngagements(ctx context.Context, limit int, cursor string) ([]Engagement, string, error)

	// DeleteOldEngagements removes engagements older than maxAge and any rows
	// beyond maxRows, keeping the most recent. A non-positive maxAge or
	// maxRows disables that limit. Returns the rows deleted.
	DeleteOldEngagements(ctx context.Context, maxAge time.Duration, maxRows int) (int64, error)
}
