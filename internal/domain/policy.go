package domain

// PostPolicy configures which posts qualify for engagement.
type PostPolicy struct {
	// MinFavorites is the minimum favorite count a post must have.
	MinFavorites int `yaml:"min_favorites"`

	// MinFavoritesToFollowers is the minimum ratio of the post's favorites to
	// its author's followers. Equal to the minimum passes.
	MinFavoritesToFollowers float64 `yaml:"min_favorites_to_followers"`

	// MaxHashtags is the largest hashtag count still accepted.
	MaxHashtags int `yaml:"max_hashtags"`

	// BlockedWords are case-sensitive substrings that disqualify a post.
	BlockedWords []string `yaml:"blocked_words"`

	// Author configures the rules applied to the post's author.
	Author AuthorPolicy `yaml:"author"`
}

// AuthorPolicy configures which authors qualify for engagement.
type AuthorPolicy struct {
	// MinAccountAgeDays is the minimum account age in whole days.
	MinAccountAgeDays int `yaml:"min_account_age_days"`

	MinFollowers int `yaml:"min_followers"`
	MinPosts     int `yaml:"min_posts"`

	// Blocklist holds author ids that are never engaged with.
	Blocklist []string `yaml:"blocklist"`
}

// DefaultPostPolicy returns the policy used when no policy file overrides it.
func DefaultPostPolicy() PostPolicy {
	return PostPolicy{
		MinFavorites:            3,
		MinFavoritesToFollowers: 0.02,
		MaxHashtags:             5,
		Author: AuthorPolicy{
			MinAccountAgeDays: 30,
			MinFollowers:      30,
			MinPosts:          100,
		},
	}
}

// Reasons reported by the post and author rule chains.
const (
	ReasonBlocklisted        = "blocklisted"
	ReasonNotPublic          = "not public"
	ReasonCreatedRecently    = "created recently"
	ReasonNotEnoughFollowers = "not enough followers"
	ReasonNotEnoughPosts     = "not enough posts"

	ReasonIsReshare          = "is reshare"
	ReasonIsReply            = "is reply"
	ReasonIsSensitive        = "is sensitive"
	ReasonNotEnoughFavorites = "not enough favorites"
	ReasonNotEnoughRatio     = "not enough favorite-to-follower ratio"
	ReasonTooManyHashtags    = "too many hashtags"
	ReasonIsWithheld         = "is withheld"
	ReasonHasBlockedWord     = "has blocked word"
)
