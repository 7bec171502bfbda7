package domain

import (
	"fmt"
	"slices"
	"time"
)

// CreatedAtLayout is the platform's timestamp layout, e.g.
// "Mon Nov 29 21:18:15 +0000 2010". Go parses month and weekday names in
// English regardless of the process locale.
const CreatedAtLayout = time.RubyDate

// now is the clock used for account age. Tests replace it.
var now = time.Now

// Author is a candidate author: a read-only view over a raw author record
// evaluated against an AuthorPolicy.
type Author struct {
	raw       RawUser
	policy    AuthorPolicy
	createdAt time.Time

	// FailureReason is the reason recorded by the last failed eligibility
	// check. It is empty until a check fails.
	FailureReason string
}

// NewAuthor builds a candidate author. It fails when the creation timestamp
// does not match CreatedAtLayout.
func NewAuthor(raw RawUser, policy AuthorPolicy) (*Author, error) {
	createdAt, err := time.Parse(CreatedAtLayout, raw.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of user %s: %w", raw.IDStr, err)
	}

	return &Author{
		raw:       raw,
		policy:    policy,
		createdAt: createdAt,
	}, nil
}

// ID returns the author's id string.
func (a *Author) ID() string {
	return a.raw.IDStr
}

// ScreenName returns the author's handle.
func (a *Author) ScreenName() string {
	return a.raw.ScreenName
}

// Followers returns the author's follower count.
func (a *Author) Followers() int {
	return a.raw.FollowersCount
}

// IsPublic reports whether the account is not protected.
func (a *Author) IsPublic() bool {
	return !a.raw.Protected
}

// AccountAgeDays returns the account age truncated to whole days.
func (a *Author) AccountAgeDays() int {
	return int(now().Sub(a.createdAt) / (24 * time.Hour))
}

// IsCreatedRecently reports whether the account is younger than the
// policy's minimum age.
func (a *Author) IsCreatedRecently() bool {
	return a.AccountAgeDays() < a.policy.MinAccountAgeDays
}

// HasEnoughFollowers reports whether the follower count reaches the minimum.
func (a *Author) HasEnoughFollowers() bool {
	return a.raw.FollowersCount >= a.policy.MinFollowers
}

// HasEnoughPosts reports whether the post count reaches the minimum.
func (a *Author) HasEnoughPosts() bool {
	return a.raw.StatusesCount >= a.policy.MinPosts
}

// IsBlocklisted reports whether the author id is on the policy blocklist.
func (a *Author) IsBlocklisted() bool {
	return slices.Contains(a.policy.Blocklist, a.raw.IDStr)
}

// IsEligible reports whether the author may be engaged with. On failure
// FailureReason holds the reason of the first violated rule.
func (a *Author) IsEligible() bool {
	reason, violated := firstViolation(a.rules())
	if violated {
		a.FailureReason = reason
		return false
	}
	return true
}

func (a *Author) rules() []rule {
	return []rule{
		{violated: a.IsBlocklisted, reason: fixed(ReasonBlocklisted)},
		{violated: func() bool { return !a.IsPublic() }, reason: fixed(ReasonNotPublic)},
		{violated: a.IsCreatedRecently, reason: fixed(ReasonCreatedRecently)},
		{violated: func() bool { return !a.HasEnoughFollowers() }, reason: fixed(ReasonNotEnoughFollowers)},
		{violated: func() bool { return !a.HasEnoughPosts() }, reason: fixed(ReasonNotEnoughPosts)},
	}
}
