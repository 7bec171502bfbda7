package engage

import (
	"context"
	"fmt"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

// Continuation is invoked with a post once a stage has succeeded for it.
type Continuation func(ctx context.Context, post *domain.Post) error

// Action performs a single write against the platform for a post.
type Action struct {
	client   domain.Client
	sink     domain.Sink
	endpoint string
	verb     string
	done     string
	failure  error
}

// NewFavorite returns the action marking a post as favorite.
func NewFavorite(client domain.Client, sink domain.Sink) *Action {
	return &Action{
		client:   client,
		sink:     sink,
		endpoint: domain.EndpointFavorite,
		verb:     "favoriting",
		done:     "favorited",
		failure:  domain.ErrCannotFavorite,
	}
}

// NewReshare returns the action resharing a post.
func NewReshare(client domain.Client, sink domain.Sink) *Action {
	return &Action{
		client:   client,
		sink:     sink,
		endpoint: domain.EndpointReshare,
		verb:     "resharing",
		done:     "reshared",
		failure:  domain.ErrCannotReshare,
	}
}

// Run writes the action for post and then awaits onSuccess, if given.
// Transport errors are returned as is.
func (a *Action) Run(ctx context.Context, post *domain.Post, onSuccess Continuation) error {
	a.sink.Emit(fmt.Sprintf("%s post %s ...", a.verb, post.ID()))

	resp, err := a.client.Write(ctx, a.endpoint, domain.Params{"id": post.ID()})
	if err != nil {
		return err
	}

	if !resp.OK() {
		return fail(a.sink, a.failure, resp)
	}

	a.sink.Emit(a.done)

	if onSuccess != nil {
		return onSuccess(ctx, post)
	}
	return nil
}

// fail traces a non-success response and returns the matching error.
func fail(sink domain.Sink, failure error, resp *domain.Response) error {
	sink.Emit(failure.Error())
	if resp.StatusMessage != "" {
		sink.Emit(resp.StatusMessage)
	}
	return &domain.ResponseError{
		Err:           failure,
		Status:        resp.Status,
		StatusMessage: resp.StatusMessage,
	}
}
