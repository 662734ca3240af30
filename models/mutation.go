package models

// ExpeditionMutations is one expedition line of a mutation cycle post.
type ExpeditionMutations struct {
	Expedition string   `json:"expedition"`
	Mutations  []string `json:"mutations"`
}

// MutationCycle is the parsed weekly mutation rotation message.
type MutationCycle struct {
	Content   []ExpeditionMutations `json:"content"`
	ImageSrc  *string               `json:"imageSrc"`
	Timestamp int64                 `json:"timestamp"`
}

// CacheStats describes the state of the central updates cache.
type CacheStats struct {
	Cached       bool   `json:"cached"`
	MessageCount int    `json:"messageCount"`
	LastFetch    *int64 `json:"lastFetch"`
	AgeMillis    int64  `json:"age"`
	TTLMillis    int64  `json:"ttl"`
}
