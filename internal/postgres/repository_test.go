package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

// The repository is exercised against a real server when
// TEST_DATABASE_URL is set.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	repo, err := NewRepository(url)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = repo.db.Exec(`DELETE FROM engagements`)
		repo.Close()
	})
	_, err = repo.db.Exec(`DELETE FROM engagements`)
	require.NoError(t, err)
	return repo
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.RecordEngagement(ctx, &domain.Engagement{
			PostID:    id,
			AuthorID:  "42",
			RunID:     uuid.NewString(),
			EngagedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	page, cursor, err := repo.ListEngagements(ctx, 2, "")
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].PostID)
	assert.Equal(t, "b", page[1].PostID)

	page, cursor, err = repo.ListEngagements(ctx, 2, cursor)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "a", page[0].PostID)
	assert.Empty(t, cursor)

	deleted, err := repo.DeleteOldEngagements(ctx, time.Hour, 0)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	deleted, err = repo.DeleteOldEngagements(ctx, time.Hour, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
}
