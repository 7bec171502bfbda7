package domain

// RawPost is a status record as returned by the platform's search and
// timeline endpoints. Nullable fields are pointers so that absence can be told
// apart from zero values.
type RawPost struct {
	ID    int64  `json:"id"`
	IDStr string `json:"id_str"`

	CreatedAt string `json:"created_at"`
	Text      string `json:"text"`
	FullText  string `json:"full_text,omitempty"`
	Truncated bool   `json:"truncated"`

	Entities RawEntities `json:"entities"`
	User     RawUser     `json:"user"`

	Retweeted       bool     `json:"retweeted"`
	RetweetedStatus *RawPost `json:"retweeted_status,omitempty"`

	InReplyToScreenName  *string `json:"in_reply_to_screen_name"`
	InReplyToStatusID    *int64  `json:"in_reply_to_status_id"`
	InReplyToStatusIDStr *string `json:"in_reply_to_status_id_str"`
	InReplyToUserID      *int64  `json:"in_reply_to_user_id"`
	InReplyToUserIDStr   *string `json:"in_reply_to_user_id_str"`

	PossiblySensitive *bool `json:"possibly_sensitive,omitempty"`
	WithheldCopyright *bool `json:"withheld_copyright,omitempty"`

	FavoriteCount *int `json:"favorite_count"`
	RetweetCount  int  `json:"retweet_count"`
}

// RawEntities holds the parsed entities of a status.
type RawEntities struct {
	Hashtags []RawHashtag `json:"hashtags"`
}

// RawHashtag is a single hashtag entity.
type RawHashtag struct {
	Text string `json:"text"`
}

// RawUser is the author record embedded in every status.
type RawUser struct {
	ID             int64  `json:"id"`
	IDStr          string `json:"id_str"`
	ScreenName     string `json:"screen_name"`
	CreatedAt      string `json:"created_at"`
	Protected      bool   `json:"protected"`
	FollowersCount int    `json:"followers_count"`
	StatusesCount  int    `json:"statuses_count"`
}

// SearchResults is the payload of the search endpoint.
type SearchResults struct {
	Statuses []RawPost `json:"statuses"`
}

// exists reports whether an optional raw field was present in the record.
// Zero values (0, "", false) behind a non-nil pointer count as present.
func exists[T any](v *T) bool {
	return v != nil
}
