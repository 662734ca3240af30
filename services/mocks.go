package services

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"updatesbot/models"
)

// MockRegistryService is a mock implementation of RegistryService.
type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) GetGame(name string) mo.Option[models.GameConfig] {
	args := m.Called(name)
	return args.Get(0).(mo.Option[models.GameConfig])
}

func (m *MockRegistryService) FindGameByRoleID(roleID string) mo.Option[models.GameConfig] {
	args := m.Called(roleID)
	return args.Get(0).(mo.Option[models.GameConfig])
}

func (m *MockRegistryService) FindGameByTitle(title string) mo.Option[models.GameConfig] {
	args := m.Called(title)
	return args.Get(0).(mo.Option[models.GameConfig])
}

func (m *MockRegistryService) AllGames() []models.GameConfig {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.GameConfig)
}

// MockChannelsService is a mock implementation of ChannelsService.
type MockChannelsService struct {
	mock.Mock
}

func (m *MockChannelsService) ListChannels(ctx context.Context) ([]models.ChannelDescriptor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChannelDescriptor), args.Error(1)
}

func (m *MockChannelsService) ResolveChannel(ctx context.Context, identifier string) (mo.Option[models.ChannelDescriptor], error) {
	args := m.Called(ctx, identifier)
	return args.Get(0).(mo.Option[models.ChannelDescriptor]), args.Error(1)
}

// MockUpdatesCacheService is a mock implementation of UpdatesCacheService.
type MockUpdatesCacheService struct {
	mock.Mock
}

func (m *MockUpdatesCacheService) Get(ctx context.Context) ([]*models.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RawMessage), args.Error(1)
}

func (m *MockUpdatesCacheService) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUpdatesCacheService) Invalidate() {
	m.Called()
}

func (m *MockUpdatesCacheService) Stats() models.CacheStats {
	args := m.Called()
	return args.Get(0).(models.CacheStats)
}

// MockUpdatesService is a mock implementation of UpdatesService.
type MockUpdatesService struct {
	mock.Mock
}

func (m *MockUpdatesService) ListGames(baseURL string) []models.GameLink {
	args := m.Called(baseURL)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.GameLink)
}

func (m *MockUpdatesService) GetGameUpdates(ctx context.Context, gameName string) ([]models.Update, error) {
	args := m.Called(ctx, gameName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Update), args.Error(1)
}

// MockForumService is a mock implementation of ForumService.
type MockForumService struct {
	mock.Mock
}

func (m *MockForumService) ListPosts(ctx context.Context, channelID string, limit int) ([]models.ThreadSummary, error) {
	args := m.Called(ctx, channelID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ThreadSummary), args.Error(1)
}

func (m *MockForumService) GetSinglePost(ctx context.Context, channelID, threadID string) (mo.Option[*models.PostDetail], error) {
	args := m.Called(ctx, channelID, threadID)
	return args.Get(0).(mo.Option[*models.PostDetail]), args.Error(1)
}

// MockInfoService is a mock implementation of InfoService.
type MockInfoService struct {
	mock.Mock
}

func (m *MockInfoService) ListChannels(baseURL string) []models.ChannelLink {
	args := m.Called(baseURL)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.ChannelLink)
}

func (m *MockInfoService) GetChannelMessages(ctx context.Context, channelName string) ([]models.InfoMessage, error) {
	args := m.Called(ctx, channelName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InfoMessage), args.Error(1)
}

// MockMutationCycleService is a mock implementation of MutationCycleService.
type MockMutationCycleService struct {
	mock.Mock
}

func (m *MockMutationCycleService) GetLatest(ctx context.Context) (mo.Option[models.MutationCycle], error) {
	args := m.Called(ctx)
	return args.Get(0).(mo.Option[models.MutationCycle]), args.Error(1)
}

// MockSpamGuardService is a mock implementation of SpamGuardService.
type MockSpamGuardService struct {
	mock.Mock
}

func (m *MockSpamGuardService) HandleMessage(ctx context.Context, msg *models.InboundMessage) {
	m.Called(ctx, msg)
}

func (m *MockSpamGuardService) Cleanup() {
	m.Called()
}

// MockStatusService is a mock implementation of StatusService.
type MockStatusService struct {
	mock.Mock
}

func (m *MockStatusService) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
