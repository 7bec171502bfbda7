package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS engagements (
	post_id    TEXT PRIMARY KEY,
	author_id  TEXT NOT NULL,
	run_id     UUID NOT NULL,
	engaged_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_engagements_engaged_at ON engagements (engaged_at DESC, post_id DESC);
`

// Repository implements domain.EngagementRepository using PostgreSQL.
type Repository struct {
	db *sql.DB
}

var _ domain.EngagementRepository = (*Repository)(nil)

// NewRepository connects to PostgreSQL at the given URL, verifies the
// connection, creates the schema, and returns a new Repository. The caller
// should call Close when the repository is no longer needed.
func NewRepository(databaseURL string) (*Repository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// RecordEngagement inserts a new engagement.
func (r *Repository) RecordEngagement(ctx context.Context, e *domain.Engagement) error {
	query := `
		INSERT INTO engagements (post_id, author_id, run_id, engaged_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (post_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		e.PostID,
		e.AuthorID,
		e.RunID,
		e.EngagedAt,
	)
	return err
}

// ListEngagements retrieves engagements paginated by cursor.
// The cursor format is "engagedAt::postID" (unix millis::post id).
func (r *Repository) ListEngagements(ctx context.Context, limit int, cursor string) ([]domain.Engagement, string, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if cursor != "" {
		cursorTime, cursorID, parseErr := domain.ParseCursor(cursor)
		if parseErr != nil {
			return nil, "", fmt.Errorf("invalid cursor '%s': %w", cursor, parseErr)
		}

		rows, err = r.db.QueryContext(ctx, `
			SELECT post_id, author_id, run_id, engaged_at
			FROM engagements
			WHERE (engaged_at, post_id) < ($1, $2)
			ORDER BY engaged_at DESC, post_id DESC
			LIMIT $3`,
			cursorTime, cursorID, limit,
		)
		if err != nil {
			return nil, "", fmt.Errorf("query engagements with cursor (time=%v, post=%s, limit=%d): %w", cursorTime, cursorID, limit, err)
		}
	} else {
		rows, err = r.db.QueryContext(ctx, `
			SELECT post_id, author_id, run_id, engaged_at
			FROM engagements
			ORDER BY engaged_at DESC, post_id DESC
			LIMIT $1`,
			limit,
		)
		if err != nil {
			return nil, "", fmt.Errorf("query engagements without cursor (limit=%d): %w", limit, err)
		}
	}
	defer rows.Close()

	var engagements []domain.Engagement
	for rows.Next() {
		var e domain.Engagement
		err := rows.Scan(
			&e.PostID,
			&e.AuthorID,
			&e.RunID,
			&e.EngagedAt,
		)
		if err != nil {
			return nil, "", fmt.Errorf("scan engagement: %w", err)
		}
		e.EngagedAt = e.EngagedAt.UTC()
		engagements = append(engagements, e)
	}

	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("iterate engagements: %w", err)
	}

	var nextCursor string
	if limit > 0 && len(engagements) == limit {
		nextCursor = domain.EncodeCursor(engagements[len(engagements)-1])
	}

	return engagements, nextCursor, nil
}

// DeleteOldEngagements removes engagements older than maxAge and any excess
// rows beyond maxRows, keeping the most recent. A non-positive maxAge or
// maxRows disables that limit. Returns the total number of rows deleted.
func (r *Repository) DeleteOldEngagements(ctx context.Context, maxAge time.Duration, maxRows int) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var ttlDeleted int64
	if maxAge > 0 {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM engagements WHERE engaged_at < $1`,
			time.Now().UTC().Add(-maxAge),
		)
		if err != nil {
			return 0, fmt.Errorf("delete expired engagements: %w", err)
		}
		ttlDeleted, _ = res.RowsAffected()
	}

	// Delete excess rows beyond maxRows, keeping the most recent
	var capDeleted int64
	if maxRows > 0 {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM engagements WHERE post_id IN (
				SELECT post_id FROM engagements
				ORDER BY engaged_at DESC, post_id DESC
				OFFSET $1
			)`, maxRows,
		)
		if err != nil {
			return 0, fmt.Errorf("delete excess engagements: %w", err)
		}
		capDeleted, _ = res.RowsAffected()
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return ttlDeleted + capDeleted, nil
}
