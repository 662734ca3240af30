package updatescache

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"updatesbot/clients"
	"updatesbot/models"
	"updatesbot/services"
)

const (
	// cacheTTL is how long a fetched message batch stays fresh.
	cacheTTL = 5 * time.Minute
	// maxMessages is the number of messages fetched and cached per refresh.
	maxMessages = 100
)

type cacheEntry struct {
	messages  []*models.RawMessage
	lastFetch time.Time
}

// UpdatesCacheService caches the central updates channel's newest messages.
// The entry is replaced wholesale on every refresh, never partially mutated.
type UpdatesCacheService struct {
	discordClient clients.DiscordClient
	channelID     string
	now           func() time.Time

	mu    sync.Mutex
	entry *cacheEntry
}

// NewUpdatesCacheService creates a cache for the given central channel.
func NewUpdatesCacheService(discordClient clients.DiscordClient, channelID string) *UpdatesCacheService {
	return &UpdatesCacheService{
		discordClient: discordClient,
		channelID:     channelID,
		now:           time.Now,
	}
}

var _ services.UpdatesCacheService = (*UpdatesCacheService)(nil)

// SetClock overrides the time source, for tests.
func (s *UpdatesCacheService) SetClock(now func() time.Time) {
	s.now = now
}

// Get returns the cached messages, fetching a fresh batch when the entry is
// missing or older than the TTL. The lock is held across the fetch so
// concurrent misses trigger a single remote call.
func (s *UpdatesCacheService) Get(ctx context.Context) ([]*models.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.entry != nil && now.Sub(s.entry.lastFetch) < cacheTTL {
		return s.entry.messages, nil
	}

	log.Printf("📋 Fetching fresh messages from central updates channel %s", s.channelID)
	messages, err := s.discordClient.FetchMessages(s.channelID, maxMessages, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to refresh central updates cache: %w", err)
	}
	s.entry = &cacheEntry{messages: messages, lastFetch: now}
	return messages, nil
}

// Refresh discards the cached entry and repopulates it immediately.
func (s *UpdatesCacheService) Refresh(ctx context.Context) error {
	log.Printf("📋 Manually refreshing central updates cache")
	s.Invalidate()
	if _, err := s.Get(ctx); err != nil {
		return err
	}
	return nil
}

// Invalidate discards the cached entry without repopulating it.
func (s *UpdatesCacheService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = nil
}

// Stats describes the cache state for the debug surface.
func (s *UpdatesCacheService) Stats() models.CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.CacheStats{TTLMillis: cacheTTL.Milliseconds()}
	if s.entry == nil {
		return stats
	}
	lastFetch := s.entry.lastFetch.UnixMilli()
	stats.Cached = true
	stats.MessageCount = len(s.entry.messages)
	stats.LastFetch = &lastFetch
	stats.AgeMillis = s.now().Sub(s.entry.lastFetch).Milliseconds()
	return stats
}
