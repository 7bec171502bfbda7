package engage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

// timelinePageSize is the largest page the own-timeline endpoint serves.
const timelinePageSize = 200

// Search fetches candidate posts, filters them through the eligibility policy
// and the account's recent reshares, and hands the rest to a continuation.
type Search struct {
	client domain.Client
	sink   domain.Sink
	handle string
	policy domain.PostPolicy
}

// NewSearch returns a search stage for the account with the given handle.
func NewSearch(client domain.Client, sink domain.Sink, handle string, policy domain.PostPolicy) *Search {
	return &Search{
		client: client,
		sink:   sink,
		handle: handle,
		policy: policy,
	}
}

// Run searches with params and invokes onSuccess for every eligible post not
// yet reshared, one at a time in search order. The first error aborts the run.
func (s *Search) Run(ctx context.Context, params domain.Params, onSuccess Continuation) error {
	posts, err := s.searchPosts(ctx, params)
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		s.sink.Emit("no posts found")
		return nil
	}

	s.sink.Emit(fmt.Sprintf("found %d post(s)", len(posts)))

	reshares, err := s.searchReshares(ctx)
	if err != nil {
		return err
	}

	for i, post := range posts {
		n := i + 1

		if !post.IsEligible() {
			s.sink.Emit(fmt.Sprintf("%d. post %s is not eligible: %s.", n, post.ID(), post.FailureReason))
			continue
		}

		s.sink.Emit(fmt.Sprintf("%d. post %s may be engaged", n, post.ID()))

		if HasAlreadyEngaged(s.sink, reshares, post) {
			continue
		}

		if onSuccess != nil {
			if err := onSuccess(ctx, post); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Search) searchPosts(ctx context.Context, params domain.Params) ([]*domain.Post, error) {
	s.sink.Emit("searching recent posts with the following params ...")
	s.sink.Emit(params)

	resp, err := s.client.Read(ctx, domain.EndpointSearch, params)
	if err != nil {
		return nil, err
	}

	if !resp.OK() || resp.Data == nil {
		return nil, fail(s.sink, domain.ErrCannotSearchPosts, resp)
	}

	s.sink.Emit("search completed")

	var results domain.SearchResults
	if err := json.Unmarshal(resp.Data, &results); err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}

	return s.toPosts(results.Statuses, false)
}

func (s *Search) searchReshares(ctx context.Context) ([]*domain.Post, error) {
	s.sink.Emit(fmt.Sprintf("searching recent reshares by account '%s' ...", s.handle))

	resp, err := s.client.Read(ctx, domain.EndpointUserTimeline, domain.Params{
		"screen_name":     s.handle,
		"count":           timelinePageSize,
		"exclude_replies": true,
		"include_rts":     true,
	})
	if err != nil {
		return nil, err
	}

	if !resp.OK() || resp.Data == nil {
		return nil, fail(s.sink, domain.ErrCannotSearchReshares, resp)
	}

	var timeline []domain.RawPost
	if err := json.Unmarshal(resp.Data, &timeline); err != nil {
		return nil, fmt.Errorf("decode timeline: %w", err)
	}

	reshares, err := s.toPosts(timeline, true)
	if err != nil {
		return nil, err
	}

	s.sink.Emit(fmt.Sprintf("found %d reshare(s)", len(reshares)))
	return reshares, nil
}

// toPosts builds candidate posts from raw records, keeping only reshares when
// onlyReshares is set.
func (s *Search) toPosts(raws []domain.RawPost, onlyReshares bool) ([]*domain.Post, error) {
	posts := make([]*domain.Post, 0, len(raws))
	for _, raw := range raws {
		post, err := domain.NewPost(raw, s.policy)
		if err != nil {
			return nil, err
		}

		if onlyReshares && !post.IsReshare() {
			continue
		}

		posts = append(posts, post)
	}
	return posts, nil
}
