package services

import (
	"context"

	"github.com/samber/mo"

	"updatesbot/models"
)

// RegistryService exposes the static game/channel registry.
type RegistryService interface {
	// GetGame looks a game up by its unique name.
	GetGame(name string) mo.Option[models.GameConfig]
	// FindGameByRoleID returns the first game whose role list contains roleID.
	FindGameByRoleID(roleID string) mo.Option[models.GameConfig]
	// FindGameByTitle returns the first game with a keyword contained in the
	// lower-cased title.
	FindGameByTitle(title string) mo.Option[models.GameConfig]
	// AllGames returns the configured games in registration order.
	AllGames() []models.GameConfig
}

// ChannelsService enumerates live channels and resolves identifiers.
type ChannelsService interface {
	// ListChannels returns descriptors for every visible channel.
	ListChannels(ctx context.Context) ([]models.ChannelDescriptor, error)
	// ResolveChannel resolves an identifier by exact ID, then exact fullName,
	// then case-insensitive name. Returns None when nothing matches.
	ResolveChannel(ctx context.Context, identifier string) (mo.Option[models.ChannelDescriptor], error)
}

// UpdatesCacheService caches the central updates channel's recent messages.
type UpdatesCacheService interface {
	// Get returns the cached messages, fetching fresh ones on expiry.
	Get(ctx context.Context) ([]*models.RawMessage, error)
	// Refresh discards the cache and repopulates it immediately.
	Refresh(ctx context.Context) error
	// Invalidate discards the cache; the next Get repopulates lazily.
	Invalidate()
	// Stats describes the current cache state.
	Stats() models.CacheStats
}

// UpdatesService resolves merged game updates.
type UpdatesService interface {
	// ListGames returns a {name, link} entry per configured game.
	ListGames(baseURL string) []models.GameLink
	// GetGameUpdates returns up to 5 merged updates for a game, newest first.
	GetGameUpdates(ctx context.Context, gameName string) ([]models.Update, error)
}

// ForumService aggregates forum threads into post listings.
type ForumService interface {
	// ListPosts returns thread summaries for a forum channel, most recently
	// active first. limit <= 0 lists everything.
	ListPosts(ctx context.Context, channelID string, limit int) ([]models.ThreadSummary, error)
	// GetSinglePost returns a post with its replies, or None when the thread
	// does not exist.
	GetSinglePost(ctx context.Context, channelID, threadID string) (mo.Option[*models.PostDetail], error)
}

// InfoService serves the named info channels and their recent messages.
type InfoService interface {
	// ListChannels returns a {name, link} entry per configured info channel.
	ListChannels(baseURL string) []models.ChannelLink
	// GetChannelMessages returns the 5 newest messages of a named info channel
	// in the rich projection.
	GetChannelMessages(ctx context.Context, channelName string) ([]models.InfoMessage, error)
}

// MutationCycleService parses the weekly mutation rotation post.
type MutationCycleService interface {
	// GetLatest returns the newest parseable mutation cycle message.
	GetLatest(ctx context.Context) (mo.Option[models.MutationCycle], error)
}

// SpamGuardService tracks inbound messages and reports spam bursts.
type SpamGuardService interface {
	// HandleMessage records one inbound message and evaluates the spam rules.
	HandleMessage(ctx context.Context, msg *models.InboundMessage)
	// Cleanup evicts stale tracked entries and clears the flagged set.
	Cleanup()
}

// StatusService refreshes the companion app's download/version counters.
type StatusService interface {
	// Refresh fetches the current numbers and renames the status channels.
	Refresh(ctx context.Context) error
}
