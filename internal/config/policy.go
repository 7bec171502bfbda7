package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

// LoadPolicy reads an eligibility policy from a YAML file. Fields missing
// from the file keep their default values.
//
//	min_favorites: 3
//	min_favorites_to_followers: 0.02
//	max_hashtags: 5
//	blocked_words: [spam]
//	author:
//	  min_account_age_days: 30
//	  min_followers: 30
//	  min_posts: 100
//	  blocklist: ["12345"]
func LoadPolicy(path string) (domain.PostPolicy, error) {
	policy := domain.DefaultPostPolicy()

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("read policy file: %w", err)
	}

	if err := yaml.Unmarshal(data, &policy); err != nil {
		return policy, fmt.Errorf("parse policy file %s: %w", path, err)
	}

	if err := validatePolicy(policy); err != nil {
		return policy, fmt.Errorf("policy file %s: %w", path, err)
	}
	return policy, nil
}

func validatePolicy(p domain.PostPolicy) error {
	switch {
	case p.MinFavorites < 0:
		return fmt.Errorf("min_favorites must not be negative")
	case p.MinFavoritesToFollowers < 0:
		return fmt.Errorf("min_favorites_to_followers must not be negative")
	case p.MaxHashtags < 0:
		return fmt.Errorf("max_hashtags must not be negative")
	case p.Author.MinAccountAgeDays < 0:
		return fmt.Errorf("author.min_account_age_days must not be negative")
	case p.Author.MinFollowers < 0:
		return fmt.Errorf("author.min_followers must not be negative")
	case p.Author.MinPosts < 0:
		return fmt.Errorf("author.min_posts must not be negative")
	}
	return nil
}
