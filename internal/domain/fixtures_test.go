package domain

import (
	"testing"
	"time"
)

func ptr[T any](v T) *T { return &v }

func rawUser(mods ...func(*RawUser)) RawUser {
	u := RawUser{
		ID:             123,
		IDStr:          "123",
		ScreenName:     "someone",
		CreatedAt:      "Mon Nov 29 21:18:15 +0000 2010",
		FollowersCount: 10,
		StatusesCount:  1,
	}
	for _, mod := range mods {
		mod(&u)
	}
	return u
}

func rawPost(mods ...func(*RawPost)) RawPost {
	p := RawPost{
		ID:    123,
		IDStr: "123",
		User:  rawUser(),
	}
	for _, mod := range mods {
		mod(&p)
	}
	return p
}

// eligibleRawPost passes every rule of DefaultPostPolicy.
func eligibleRawPost(mods ...func(*RawPost)) RawPost {
	base := []func(*RawPost){func(p *RawPost) {
		p.FavoriteCount = ptr(100)
		p.User.FollowersCount = 1000
		p.User.StatusesCount = 1000
	}}
	return rawPost(append(base, mods...)...)
}

func withNow(t *testing.T, ts time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}

func mustPost(t *testing.T, raw RawPost, policy PostPolicy) *Post {
	t.Helper()
	p, err := NewPost(raw, policy)
	if err != nil {
		t.Fatalf("NewPost: %v", err)
	}
	return p
}
