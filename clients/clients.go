package clients

import (
	"github.com/samber/mo"

	"updatesbot/models"
)

// DiscordClient wraps the Discord REST and gateway surface the services use.
// Implementations return core.ErrNotFound for missing entities and
// core.ErrWrongType when a channel exists but has the wrong capability.
type DiscordClient interface {
	// GetBotUser returns the authenticated bot account.
	GetBotUser() (*models.BotUser, error)

	// GetAllChannels lists all guild channels the bot can see, sorted by
	// category (channels without a category first) and then by name.
	GetAllChannels() ([]models.ChannelDescriptor, error)

	// GetTextChannel resolves a channel ID and verifies it can hold messages.
	GetTextChannel(channelID string) (*models.ChannelDescriptor, error)

	// GetForumChannel resolves a channel ID and verifies it is a forum.
	GetForumChannel(channelID string) (*models.ChannelDescriptor, error)

	// FetchMessages returns up to limit newest messages of a channel, newest
	// first. afterID and beforeID are optional snowflake bounds.
	FetchMessages(channelID string, limit int, beforeID, afterID string) ([]*models.RawMessage, error)

	// FetchForumThreads returns the forum's threads sorted by activity score
	// descending. When limit > 0 the result is truncated to limit and the
	// archived-thread listing is skipped entirely if the active threads
	// alone satisfy it. limit <= 0 fetches everything.
	FetchForumThreads(channelID string, limit int) ([]*models.ForumThread, error)

	// GetForumTags returns the tags configured on a forum channel.
	GetForumTags(channelID string) ([]models.ForumTag, error)

	// GetThread resolves a thread by ID. Returns None when the thread does
	// not exist or is not a thread.
	GetThread(threadID string) (mo.Option[*models.ForumThread], error)

	// FetchStarterMessage returns the thread's starter message, or None when
	// it was deleted.
	FetchStarterMessage(threadID string) (mo.Option[*models.RawMessage], error)

	// FetchThreadMessages returns up to limit messages of a thread, newest
	// first.
	FetchThreadMessages(threadID string, limit int) ([]*models.RawMessage, error)

	// DeleteMessage removes a single message.
	DeleteMessage(channelID, messageID string) error

	// BanUser bans a guild member with an audit log reason, deleting their
	// last day of messages.
	BanUser(guildID, userID, reason string) error

	// SendSpamReport posts a detection report embed to the mod log channel.
	SendSpamReport(channelID string, report *models.SpamReport) error

	// SetChannelName renames a channel.
	SetChannelName(channelID, name string) error
}
