package updates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"updatesbot/clients"
	"updatesbot/core"
	"updatesbot/models"
	"updatesbot/services"
	"updatesbot/services/registry"
)

func newService(
	games []models.GameConfig,
	mockClient *clients.MockDiscordClient,
	mockCache *services.MockUpdatesCacheService,
) *UpdatesService {
	return NewUpdatesService(mockClient, registry.NewRegistryService(games), mockCache)
}

func TestUpdatesService_ListGames(t *testing.T) {
	games := []models.GameConfig{
		{Name: "palworld", ChannelID: "ch1"},
		{Name: "satisfactory", ChannelID: "ch2"},
	}
	service := newService(games, new(clients.MockDiscordClient), new(services.MockUpdatesCacheService))

	links := service.ListGames("https://example.com/api/updates/")
	require.Len(t, links, 2)
	assert.Equal(t, models.GameLink{Name: "palworld", Link: "https://example.com/api/updates/palworld"}, links[0])
}

func TestUpdatesService_GetGameUpdates(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown_game_returns_not_found", func(t *testing.T) {
		service := newService(nil, new(clients.MockDiscordClient), new(services.MockUpdatesCacheService))

		_, err := service.GetGameUpdates(ctx, "factorio")
		require.Error(t, err)
		assert.True(t, core.IsNotFoundError(err))
	})

	t.Run("merges_dedicated_and_central_sources", func(t *testing.T) {
		games := []models.GameConfig{{
			Name:          "palworld",
			ChannelID:     "ch1",
			TitleKeywords: []string{"palworld"},
		}}
		mockClient := new(clients.MockDiscordClient)
		mockClient.On("FetchMessages", "ch1", 5, "", "").Return([]*models.RawMessage{
			{CleanContent: "dedicated post", CreatedAt: 300},
		}, nil)
		mockCache := new(services.MockUpdatesCacheService)
		mockCache.On("Get", ctx).Return([]*models.RawMessage{
			{CleanContent: "Palworld patch notes\ndetails", CreatedAt: 400},
			{CleanContent: "unrelated game news", CreatedAt: 350},
		}, nil)

		updates, err := newService(games, mockClient, mockCache).GetGameUpdates(ctx, "palworld")
		require.NoError(t, err)
		require.Len(t, updates, 2)
		assert.Equal(t, "Palworld patch notes\ndetails", updates[0].Text)
		assert.Equal(t, "dedicated post", updates[1].Text)
	})

	t.Run("duplicate_timestamp_keeps_dedicated_copy", func(t *testing.T) {
		games := []models.GameConfig{{
			Name:          "palworld",
			ChannelID:     "ch1",
			TitleKeywords: []string{"palworld"},
		}}
		mockClient := new(clients.MockDiscordClient)
		mockClient.On("FetchMessages", "ch1", 5, "", "").Return([]*models.RawMessage{
			{CleanContent: "dedicated copy", CreatedAt: 500},
		}, nil)
		mockCache := new(services.MockUpdatesCacheService)
		mockCache.On("Get", ctx).Return([]*models.RawMessage{
			{CleanContent: "palworld central copy", CreatedAt: 500},
		}, nil)

		updates, err := newService(games, mockClient, mockCache).GetGameUpdates(ctx, "palworld")
		require.NoError(t, err)
		require.Len(t, updates, 1)
		assert.Equal(t, "dedicated copy", updates[0].Text)
	})

	t.Run("caps_at_five_sorted_descending", func(t *testing.T) {
		games := []models.GameConfig{{
			Name:          "palworld",
			ChannelID:     "ch1",
			TitleKeywords: []string{"palworld"},
		}}
		dedicated := []*models.RawMessage{}
		for i := 0; i < 5; i++ {
			dedicated = append(dedicated, &models.RawMessage{CleanContent: "d", CreatedAt: int64(100 + i)})
		}
		central := []*models.RawMessage{}
		for i := 0; i < 5; i++ {
			central = append(central, &models.RawMessage{CleanContent: "palworld c", CreatedAt: int64(200 + i)})
		}
		mockClient := new(clients.MockDiscordClient)
		mockClient.On("FetchMessages", "ch1", 5, "", "").Return(dedicated, nil)
		mockCache := new(services.MockUpdatesCacheService)
		mockCache.On("Get", ctx).Return(central, nil)

		updates, err := newService(games, mockClient, mockCache).GetGameUpdates(ctx, "palworld")
		require.NoError(t, err)
		require.Len(t, updates, 5)
		for i := 1; i < len(updates); i++ {
			assert.Greater(t, updates[i-1].Timestamp, updates[i].Timestamp)
		}
	})

	t.Run("dedicated_channel_failure_is_best_effort", func(t *testing.T) {
		games := []models.GameConfig{{
			Name:          "palworld",
			ChannelID:     "gone",
			TitleKeywords: []string{"palworld"},
		}}
		mockClient := new(clients.MockDiscordClient)
		mockClient.On("FetchMessages", "gone", 5, "", "").Return(nil, core.ErrNotFound)
		mockCache := new(services.MockUpdatesCacheService)
		mockCache.On("Get", ctx).Return([]*models.RawMessage{
			{CleanContent: "palworld central only", CreatedAt: 900},
		}, nil)

		updates, err := newService(games, mockClient, mockCache).GetGameUpdates(ctx, "palworld")
		require.NoError(t, err)
		require.Len(t, updates, 1)
		assert.Equal(t, "palworld central only", updates[0].Text)
	})

	t.Run("role_mention_matches_without_keywords", func(t *testing.T) {
		games := []models.GameConfig{{
			Name:          "duet-night-abyss",
			RoleIDs:       []string{"role1"},
			TitleKeywords: []string{"duet night abyss"},
		}}
		mockCache := new(services.MockUpdatesCacheService)
		mockCache.On("Get", ctx).Return([]*models.RawMessage{
			{CleanContent: "big news today", MentionedRoleIDs: []string{"role1"}, CreatedAt: 700},
		}, nil)

		updates, err := newService(games, new(clients.MockDiscordClient), mockCache).GetGameUpdates(ctx, "duet-night-abyss")
		require.NoError(t, err)
		require.Len(t, updates, 1)
		assert.Equal(t, "big news today", updates[0].Text)
	})

	t.Run("keyword_matches_first_line_only", func(t *testing.T) {
		games := []models.GameConfig{{
			Name:          "palworld",
			TitleKeywords: []string{"palworld"},
		}}
		mockCache := new(services.MockUpdatesCacheService)
		mockCache.On("Get", ctx).Return([]*models.RawMessage{
			{CleanContent: "other title\nmentions palworld below", CreatedAt: 800},
			{CleanContent: "Palworld v0.4\nbody", CreatedAt: 750},
		}, nil)

		updates, err := newService(games, new(clients.MockDiscordClient), mockCache).GetGameUpdates(ctx, "palworld")
		require.NoError(t, err)
		require.Len(t, updates, 1)
		assert.Equal(t, int64(750), updates[0].Timestamp)
	})

	t.Run("projects_image_attachments", func(t *testing.T) {
		games := []models.GameConfig{{
			Name:          "palworld",
			TitleKeywords: []string{"palworld"},
		}}
		mockCache := new(services.MockUpdatesCacheService)
		mockCache.On("Get", ctx).Return([]*models.RawMessage{
			{
				CleanContent: "palworld screenshots",
				CreatedAt:    600,
				Attachments: []models.Attachment{
					{URL: "https://cdn/img.png", ContentType: "image/png"},
					{URL: "https://cdn/log.txt", ContentType: "text/plain"},
				},
			},
		}, nil)

		updates, err := newService(games, new(clients.MockDiscordClient), mockCache).GetGameUpdates(ctx, "palworld")
		require.NoError(t, err)
		require.Len(t, updates, 1)
		assert.Equal(t, []string{"https://cdn/img.png"}, updates[0].Images)
	})
}
