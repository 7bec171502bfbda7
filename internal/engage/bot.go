package engage

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

// Bot wires the search stage to the reshare and favorite actions: every
// candidate that passes the search is reshared, and every reshare that
// succeeds is favorited.
type Bot struct {
	search   *Search
	reshare  *Action
	favorite *Action
	sink     domain.Sink
	ledger   domain.EngagementRepository
	logger   *slog.Logger
}

// Option configures optional Bot collaborators.
type Option func(*Bot)

// WithLedger records every completed engagement in repo.
func WithLedger(repo domain.EngagementRepository) Option {
	return func(b *Bot) { b.ledger = repo }
}

// WithLogger sets the logger used for run-level events.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) { b.logger = logger }
}

// NewBot creates a bot acting as the account with the given handle.
func NewBot(client domain.Client, sink domain.Sink, handle string, policy domain.PostPolicy, opts ...Option) *Bot {
	b := &Bot{
		search:   NewSearch(client, sink, handle, policy),
		reshare:  NewReshare(client, sink),
		favorite: NewFavorite(client, sink),
		sink:     sink,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run performs one engagement pass for the search params. The first failure
// of any stage aborts the pass and is returned unchanged.
func (b *Bot) Run(ctx context.Context, params domain.Params) error {
	runID := uuid.NewString()
	logger := b.logger.With("run_id", runID)
	logger.Info("engagement run started")

	engaged := 0
	completed := func(ctx context.Context, post *domain.Post) error {
		engaged++
		b.record(ctx, logger, runID, post)
		return nil
	}
	favorite := func(ctx context.Context, post *domain.Post) error {
		return b.favorite.Run(ctx, post, completed)
	}
	reshare := func(ctx context.Context, post *domain.Post) error {
		return b.reshare.Run(ctx, post, favorite)
	}

	if err := b.search.Run(ctx, params, reshare); err != nil {
		logger.Error("engagement run failed", "engaged", engaged, "error", err)
		return err
	}

	b.sink.Emit("all done")
	logger.Info("engagement run finished", "engaged", engaged)
	return nil
}

// record stores the engagement in the ledger. The platform writes have
// already happened, so failures are logged and the run goes on.
func (b *Bot) record(ctx context.Context, logger *slog.Logger, runID string, post *domain.Post) {
	if b.ledger == nil {
		return
	}

	e := &domain.Engagement{
		PostID:    post.ID(),
		AuthorID:  post.Author().ID(),
		RunID:     runID,
		EngagedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := b.ledger.RecordEngagement(ctx, e); err != nil {
		logger.Warn("failed to record engagement", "post_id", e.PostID, "error", err)
	}
}
