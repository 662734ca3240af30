package models

// ForumThread is the bot's view of a thread inside a forum channel.
type ForumThread struct {
	ID                   string
	Title                string
	CreatedAt            int64 // unix millis, derived from the thread snowflake
	Archived             bool
	Locked               bool
	MessageCount         int
	MemberCount          int
	AppliedTagIDs        []string
	LastMessageTimestamp *int64
	LastPinTimestamp     *int64
	ArchiveTimestamp     *int64
}

// ActivityScore is the timestamp used to rank threads by recency: the first
// non-nil of last message, last pin, archive and creation timestamps.
func (t *ForumThread) ActivityScore() int64 {
	if t.LastMessageTimestamp != nil {
		return *t.LastMessageTimestamp
	}
	if t.LastPinTimestamp != nil {
		return *t.LastPinTimestamp
	}
	if t.ArchiveTimestamp != nil {
		return *t.ArchiveTimestamp
	}
	if t.CreatedAt != 0 {
		return t.CreatedAt
	}
	return 0
}

// ForumTag is a tag configured on a forum channel.
type ForumTag struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Emoji     *string `json:"emoji"`
	Moderated bool    `json:"moderated"`
}

// PostContent is the starter-message-derived body of a forum post.
type PostContent struct {
	Text      string     `json:"text"`
	Images    []string   `json:"images"`
	Reactions []Reaction `json:"reactions,omitempty"`
}

// ThreadSummary is one entry of a forum post listing.
type ThreadSummary struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Author       string      `json:"author"`
	CreatedAt    int64       `json:"createdAt"`
	Tags         []ForumTag  `json:"tags"`
	Archived     bool        `json:"archived"`
	Locked       bool        `json:"locked"`
	MessageCount int         `json:"messageCount"`
	MemberCount  int         `json:"memberCount"`
	Content      PostContent `json:"content"`
}

// PostAuthor is the author block of a single forum post or reply.
type PostAuthor struct {
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
	Bot      bool    `json:"bot"`
}

// PostReply is one reply inside a forum post detail.
type PostReply struct {
	ID        string     `json:"id"`
	Author    PostAuthor `json:"author"`
	Text      string     `json:"text"`
	Timestamp int64      `json:"timestamp"`
	Images    []string   `json:"images"`
	Reactions []Reaction `json:"reactions"`
}

// PostDetail is the full view of a single forum post with its replies.
type PostDetail struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Author       PostAuthor  `json:"author"`
	CreatedAt    int64       `json:"createdAt"`
	LastActivity int64       `json:"lastActivity"`
	Tags         []ForumTag  `json:"tags"`
	Archived     bool        `json:"archived"`
	Locked       bool        `json:"locked"`
	MessageCount int         `json:"messageCount"`
	MemberCount  int         `json:"memberCount"`
	Content      PostContent `json:"content"`
	Replies      []PostReply `json:"replies"`
}
