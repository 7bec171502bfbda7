package engage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

type call struct {
	method   string
	endpoint string
	params   domain.Params
}

type reply struct {
	resp *domain.Response
	err  error
}

// fakeClient serves queued replies in order and records every call.
type fakeClient struct {
	reads  []reply
	writes []reply
	calls  []call
}

func (c *fakeClient) Read(_ context.Context, endpoint string, params domain.Params) (*domain.Response, error) {
	c.calls = append(c.calls, call{method: "read", endpoint: endpoint, params: params})
	if len(c.reads) == 0 {
		return nil, fmt.Errorf("unexpected read of %s", endpoint)
	}
	r := c.reads[0]
	c.reads = c.reads[1:]
	return r.resp, r.err
}

func (c *fakeClient) Write(_ context.Context, endpoint string, params domain.Params) (*domain.Response, error) {
	c.calls = append(c.calls, call{method: "write", endpoint: endpoint, params: params})
	if len(c.writes) == 0 {
		return nil, fmt.Errorf("unexpected write to %s", endpoint)
	}
	r := c.writes[0]
	c.writes = c.writes[1:]
	return r.resp, r.err
}

func (c *fakeClient) writeCalls() []call {
	var out []call
	for _, cl := range c.calls {
		if cl.method == "write" {
			out = append(out, cl)
		}
	}
	return out
}

// recordingSink keeps every emitted trace in order.
type recordingSink struct {
	traces []any
}

func (s *recordingSink) Emit(v any) {
	s.traces = append(s.traces, v)
}

func (s *recordingSink) messages() []string {
	var out []string
	for _, v := range s.traces {
		if msg, ok := v.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}

func okReply(data json.RawMessage) reply {
	return reply{resp: &domain.Response{Status: 200, Data: data}}
}

func statusReply(code int, message string) reply {
	return reply{resp: &domain.Response{Status: code, StatusMessage: message}}
}

func searchData(t *testing.T, raws ...domain.RawPost) json.RawMessage {
	t.Helper()
	if raws == nil {
		raws = []domain.RawPost{}
	}
	data, err := json.Marshal(domain.SearchResults{Statuses: raws})
	if err != nil {
		t.Fatalf("marshal search results: %v", err)
	}
	return data
}

func timelineData(t *testing.T, raws ...domain.RawPost) json.RawMessage {
	t.Helper()
	if raws == nil {
		raws = []domain.RawPost{}
	}
	data, err := json.Marshal(raws)
	if err != nil {
		t.Fatalf("marshal timeline: %v", err)
	}
	return data
}

func intPtr(v int) *int { return &v }

func rawPost(id string, mods ...func(*domain.RawPost)) domain.RawPost {
	p := domain.RawPost{
		IDStr: id,
		User: domain.RawUser{
			IDStr:          "42",
			CreatedAt:      "Mon Nov 29 21:18:15 +0000 2010",
			FollowersCount: 10,
			StatusesCount:  1,
		},
	}
	for _, mod := range mods {
		mod(&p)
	}
	return p
}

func eligibleRawPost(id string, mods ...func(*domain.RawPost)) domain.RawPost {
	base := func(p *domain.RawPost) {
		p.FavoriteCount = intPtr(100)
		p.User.FollowersCount = 1000
		p.User.StatusesCount = 1000
	}
	return rawPost(id, append([]func(*domain.RawPost){base}, mods...)...)
}

func reshareOf(id, originalID string) domain.RawPost {
	original := rawPost(originalID)
	return rawPost(id, func(p *domain.RawPost) {
		p.Retweeted = true
		p.RetweetedStatus = &original
	})
}

func mustPost(t *testing.T, raw domain.RawPost) *domain.Post {
	t.Helper()
	p, err := domain.NewPost(raw, domain.DefaultPostPolicy())
	if err != nil {
		t.Fatalf("NewPost: %v", err)
	}
	return p
}

// fakeLedger is an in-memory EngagementRepository.
type fakeLedger struct {
	mu        sync.Mutex
	recorded  []domain.Engagement
	recordErr error
	deletes   int
}

func (l *fakeLedger) RecordEngagement(_ context.Context, e *domain.Engagement) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.recordErr != nil {
		return l.recordErr
	}
	l.recorded = append(l.recorded, *e)
	return nil
}

func (l *fakeLedger) ListEngagements(_ context.Context, limit int, _ string) ([]domain.Engagement, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limit > len(l.recorded) {
		limit = len(l.recorded)
	}
	return append([]domain.Engagement(nil), l.recorded[:limit]...), "", nil
}

func (l *fakeLedger) DeleteOldEngagements(_ context.Context, _ time.Duration, _ int) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.deletes++
	return 0, nil
}
