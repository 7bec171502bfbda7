package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Engagement records a post that was reshared and favorited.
type Engagement struct {
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	RunID     string    `json:"run_id"`
	EngagedAt time.Time `json:"engaged_at"`
}

// EncodeCursor returns the pagination cursor positioned after e.
// The format is "unixmillis::postID".
func EncodeCursor(e Engagement) string {
	return fmt.Sprintf("%d::%s", e.EngagedAt.UnixMilli(), e.PostID)
}

// ParseCursor splits a cursor produced by EncodeCursor.
func ParseCursor(cursor string) (time.Time, string, error) {
	parts := strings.SplitN(cursor, "::", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("cursor must be in format 'timestamp::postID'")
	}
	millis, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid timestamp in cursor: %w", err)
	}
	return time.UnixMilli(millis).UTC(), parts[1], nil
}
