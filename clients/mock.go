package clients

import (
	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"updatesbot/models"
)

// MockDiscordClient is a mock implementation of DiscordClient.
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) GetBotUser() (*models.BotUser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BotUser), args.Error(1)
}

func (m *MockDiscordClient) GetAllChannels() ([]models.ChannelDescriptor, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChannelDescriptor), args.Error(1)
}

func (m *MockDiscordClient) GetTextChannel(channelID string) (*models.ChannelDescriptor, error) {
	args := m.Called(channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelDescriptor), args.Error(1)
}

func (m *MockDiscordClient) GetForumChannel(channelID string) (*models.ChannelDescriptor, error) {
	args := m.Called(channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelDescriptor), args.Error(1)
}

func (m *MockDiscordClient) FetchMessages(channelID string, limit int, beforeID, afterID string) ([]*models.RawMessage, error) {
	args := m.Called(channelID, limit, beforeID, afterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RawMessage), args.Error(1)
}

func (m *MockDiscordClient) FetchForumThreads(channelID string, limit int) ([]*models.ForumThread, error) {
	args := m.Called(channelID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ForumThread), args.Error(1)
}

func (m *MockDiscordClient) GetForumTags(channelID string) ([]models.ForumTag, error) {
	args := m.Called(channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ForumTag), args.Error(1)
}

func (m *MockDiscordClient) GetThread(threadID string) (mo.Option[*models.ForumThread], error) {
	args := m.Called(threadID)
	return args.Get(0).(mo.Option[*models.ForumThread]), args.Error(1)
}

func (m *MockDiscordClient) FetchStarterMessage(threadID string) (mo.Option[*models.RawMessage], error) {
	args := m.Called(threadID)
	return args.Get(0).(mo.Option[*models.RawMessage]), args.Error(1)
}

func (m *MockDiscordClient) FetchThreadMessages(threadID string, limit int) ([]*models.RawMessage, error) {
	args := m.Called(threadID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RawMessage), args.Error(1)
}

func (m *MockDiscordClient) DeleteMessage(channelID, messageID string) error {
	args := m.Called(channelID, messageID)
	return args.Error(0)
}

func (m *MockDiscordClient) BanUser(guildID, userID, reason string) error {
	args := m.Called(guildID, userID, reason)
	return args.Error(0)
}

func (m *MockDiscordClient) SendSpamReport(channelID string, report *models.SpamReport) error {
	args := m.Called(channelID, report)
	return args.Error(0)
}

func (m *MockDiscordClient) SetChannelName(channelID, name string) error {
	args := m.Called(channelID, name)
	return args.Error(0)
}
