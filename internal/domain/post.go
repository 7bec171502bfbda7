package domain

import (
	"fmt"
	"strings"
)

// Post is a candidate post: a read-only view over a raw status evaluated
// against a PostPolicy. It owns the candidate Author built from the status's
// embedded user record.
type Post struct {
	raw    RawPost
	policy PostPolicy
	author *Author

	// FailureReason is the reason recorded by the last failed eligibility
	// check. It is empty until a check fails.
	FailureReason string
}

// NewPost builds a candidate post and its author.
func NewPost(raw RawPost, policy PostPolicy) (*Post, error) {
	author, err := NewAuthor(raw.User, policy.Author)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", raw.IDStr, err)
	}

	return &Post{
		raw:    raw,
		policy: policy,
		author: author,
	}, nil
}

// ID returns the post's id string.
func (p *Post) ID() string {
	return p.raw.IDStr
}

// Author returns the candidate author built from the embedded user record.
func (p *Post) Author() *Author {
	return p.author
}

// OriginalID returns the id of the post this one reshares, if any.
func (p *Post) OriginalID() (string, bool) {
	if !exists(p.raw.RetweetedStatus) {
		return "", false
	}
	return p.raw.RetweetedStatus.IDStr, true
}

// Text returns the full display text. Truncated posts carry it in the
// full-text field.
func (p *Post) Text() string {
	if p.raw.Truncated {
		return p.raw.FullText
	}
	return p.raw.Text
}

// IsReshare reports whether the post is flagged as reshared or embeds an
// original post.
func (p *Post) IsReshare() bool {
	return p.raw.Retweeted || exists(p.raw.RetweetedStatus)
}

// IsReply reports whether any in-reply-to field is present, even when zero.
func (p *Post) IsReply() bool {
	return exists(p.raw.InReplyToScreenName) ||
		exists(p.raw.InReplyToStatusID) ||
		exists(p.raw.InReplyToStatusIDStr) ||
		exists(p.raw.InReplyToUserID) ||
		exists(p.raw.InReplyToUserIDStr)
}

// IsSensitive reports whether the post is flagged as possibly sensitive.
func (p *Post) IsSensitive() bool {
	return exists(p.raw.PossiblySensitive) && *p.raw.PossiblySensitive
}

// HasMinFavorites reports whether the favorite count is present and reaches
// the minimum.
func (p *Post) HasMinFavorites() bool {
	return exists(p.raw.FavoriteCount) && *p.raw.FavoriteCount >= p.policy.MinFavorites
}

// HasMinFavoritesToFollowersRatio fails when the author has no followers,
// since the ratio is undefined.
func (p *Post) HasMinFavoritesToFollowersRatio() bool {
	followers := p.author.Followers()
	if !exists(p.raw.FavoriteCount) || followers <= 0 {
		return false
	}
	return float64(*p.raw.FavoriteCount)/float64(followers) >= p.policy.MinFavoritesToFollowers
}

// HashtagCount returns the number of hashtag entities.
func (p *Post) HashtagCount() int {
	return len(p.raw.Entities.Hashtags)
}

// HasTooManyHashtags reports whether the hashtag count exceeds the maximum.
func (p *Post) HasTooManyHashtags() bool {
	return p.HashtagCount() > p.policy.MaxHashtags
}

// IsWithheld reports whether the post is withheld on copyright grounds.
func (p *Post) IsWithheld() bool {
	return exists(p.raw.WithheldCopyright) && *p.raw.WithheldCopyright
}

// HasBlockedWord reports whether the display text contains any blocked
// substring. Matching is case-sensitive; empty entries never match.
func (p *Post) HasBlockedWord() bool {
	text := p.Text()
	if text == "" {
		return false
	}
	for _, word := range p.policy.BlockedWords {
		if word != "" && strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// IsEligible reports whether the post may be engaged with. On failure
// FailureReason holds the reason of the first violated rule; author failures
// are copied from the author verbatim.
func (p *Post) IsEligible() bool {
	reason, violated := firstViolation(p.rules())
	if violated {
		p.FailureReason = reason
		return false
	}
	return true
}

func (p *Post) rules() []rule {
	return []rule{
		{violated: p.IsReshare, reason: fixed(ReasonIsReshare)},
		{violated: p.IsReply, reason: fixed(ReasonIsReply)},
		{violated: p.IsSensitive, reason: fixed(ReasonIsSensitive)},
		{violated: func() bool { return !p.HasMinFavorites() }, reason: fixed(ReasonNotEnoughFavorites)},
		{violated: func() bool { return !p.HasMinFavoritesToFollowersRatio() }, reason: fixed(ReasonNotEnoughRatio)},
		{violated: p.HasTooManyHashtags, reason: fixed(ReasonTooManyHashtags)},
		{violated: p.IsWithheld, reason: fixed(ReasonIsWithheld)},
		{violated: p.HasBlockedWord, reason: fixed(ReasonHasBlockedWord)},
		{violated: func() bool { return !p.author.IsEligible() }, reason: func() string { return p.author.FailureReason }},
	}
}
