package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS engagements (
	post_id    TEXT PRIMARY KEY,
	author_id  TEXT NOT NULL,
	run_id     TEXT NOT NULL,
	engaged_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_engagements_engaged_at ON engagements(engaged_at DESC, post_id DESC);
`

// Repository implements domain.EngagementRepository on an embedded SQLite
// database. Timestamps are stored as unix milliseconds.
type Repository struct {
	db *sql.DB
}

var _ domain.EngagementRepository = (*Repository)(nil)

// NewRepository opens the SQLite database at path (":memory:" for a private
// in-memory database), creates the schema, and returns a new Repository. The
// caller should call Close when the repository is no longer needed.
func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite serializes writers; a single connection also keeps an in-memory
	// database alive for the repository's lifetime.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// RecordEngagement inserts an engagement, keeping an existing record for the
// same post.
func (r *Repository) RecordEngagement(ctx context.Context, e *domain.Engagement) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO engagements (post_id, author_id, run_id, engaged_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (post_id) DO NOTHING`,
		e.PostID,
		e.AuthorID,
		e.RunID,
		e.EngagedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert engagement %s: %w", e.PostID, err)
	}
	return nil
}

// ListEngagements retrieves engagements newest first, paginated by cursor.
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
			WHERE (engaged_at, post_id) < (?, ?)
			ORDER BY engaged_at DESC, post_id DESC
			LIMIT ?`,
			cursorTime.UnixMilli(), cursorID, limit,
		)
	} else {
		rows, err = r.db.QueryContext(ctx, `
			SELECT post_id, author_id, run_id, engaged_at
			FROM engagements
			ORDER BY engaged_at DESC, post_id DESC
			LIMIT ?`,
			limit,
		)
	}
	if err != nil {
		return nil, "", fmt.Errorf("query engagements (limit=%d): %w", limit, err)
	}
	defer rows.Close()

	var engagements []domain.Engagement
	for rows.Next() {
		var (
			e      domain.Engagement
			millis int64
		)
		if err := rows.Scan(&e.PostID, &e.AuthorID, &e.RunID, &millis); err != nil {
			return nil, "", fmt.Errorf("scan engagement: %w", err)
		}
		e.EngagedAt = time.UnixMilli(millis).UTC()
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
// rows beyond maxRows. A non-positive maxAge or maxRows disables that limit.
func (r *Repository) DeleteOldEngagements(ctx context.Context, maxAge time.Duration, maxRows int) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var ttlDeleted int64
	if maxAge > 0 {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM engagements WHERE engaged_at < ?`,
			time.Now().Add(-maxAge).UnixMilli(),
		)
		if err != nil {
			return 0, fmt.Errorf("delete expired engagements: %w", err)
		}
		ttlDeleted, _ = res.RowsAffected()
	}

	var capDeleted int64
	if maxRows > 0 {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM engagements WHERE post_id IN (
				SELECT post_id FROM engagements
				ORDER BY engaged_at DESC, post_id DESC
				LIMIT -1 OFFSET ?
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
