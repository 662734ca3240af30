package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"updatesbot/clients"
	"updatesbot/core"
	"updatesbot/middleware"
	"updatesbot/models"
	"updatesbot/services"
)

type fixture struct {
	updates       *services.MockUpdatesService
	info          *services.MockInfoService
	forum         *services.MockForumService
	mutationCycle *services.MockMutationCycleService
	channels      *services.MockChannelsService
	cache         *services.MockUpdatesCacheService
	discord       *clients.MockDiscordClient
	router        *mux.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		updates:       new(services.MockUpdatesService),
		info:          new(services.MockInfoService),
		forum:         new(services.MockForumService),
		mutationCycle: new(services.MockMutationCycleService),
		channels:      new(services.MockChannelsService),
		cache:         new(services.MockUpdatesCacheService),
		discord:       new(clients.MockDiscordClient),
	}
	handler := NewAPIHandler(f.updates, f.info, f.forum, f.mutationCycle, f.channels, f.cache, f.discord, "suggestions-ch")
	f.router = mux.NewRouter()
	handler.SetupEndpoints(f.router, middleware.APIKeyAuthMiddleware("test-key"))
	return f
}

func (f *fixture) request(method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestUpdatesRoutes(t *testing.T) {
	t.Run("list_games", func(t *testing.T) {
		f := newFixture(t)
		f.updates.On("ListGames", mock.AnythingOfType("string")).Return([]models.GameLink{
			{Name: "palworld", Link: "http://example.com/api/updates/palworld"},
		})

		rec := f.request(http.MethodGet, "http://example.com/api/updates", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var links []models.GameLink
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &links))
		require.Len(t, links, 1)
		assert.Equal(t, "palworld", links[0].Name)
	})

	t.Run("game_updates", func(t *testing.T) {
		f := newFixture(t)
		f.updates.On("GetGameUpdates", mock.Anything, "palworld").Return([]models.Update{
			{Text: "patch", Images: []string{}, Timestamp: 100},
		}, nil)

		rec := f.request(http.MethodGet, "/api/updates/palworld", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown_game_is_404", func(t *testing.T) {
		f := newFixture(t)
		f.updates.On("GetGameUpdates", mock.Anything, "factorio").Return(nil, core.ErrNotFound)

		rec := f.request(http.MethodGet, "/api/updates/factorio", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("post_is_405", func(t *testing.T) {
		f := newFixture(t)
		rec := f.request(http.MethodPost, "/api/updates", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("options_is_204", func(t *testing.T) {
		f := newFixture(t)
		rec := f.request(http.MethodOptions, "/api/updates", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestInfoRoutes(t *testing.T) {
	t.Run("list_channels", func(t *testing.T) {
		f := newFixture(t)
		f.info.On("ListChannels", mock.AnythingOfType("string")).Return([]models.ChannelLink{
			{Name: "announcements", Link: "http://example.com/api/info/announcements"},
		})

		rec := f.request(http.MethodGet, "http://example.com/api/info", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var links []models.ChannelLink
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &links))
		require.Len(t, links, 1)
		assert.Equal(t, "announcements", links[0].Name)
	})

	t.Run("channel_messages", func(t *testing.T) {
		f := newFixture(t)
		f.info.On("GetChannelMessages", mock.Anything, "announcements").Return([]models.InfoMessage{
			{Text: "release", Images: []string{}, Timestamp: 100},
		}, nil)

		rec := f.request(http.MethodGet, "/api/info/announcements", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		f.info.AssertExpectations(t)
	})

	t.Run("unknown_channel_is_404", func(t *testing.T) {
		f := newFixture(t)
		f.info.On("GetChannelMessages", mock.Anything, "ghost").Return(nil, core.ErrNotFound)

		rec := f.request(http.MethodGet, "/api/info/ghost", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSuggestionsRoutes(t *testing.T) {
	t.Run("list_posts", func(t *testing.T) {
		f := newFixture(t)
		f.forum.On("ListPosts", mock.Anything, "suggestions-ch", 0).Return([]models.ThreadSummary{
			{ID: "t1", Title: "bug report"},
		}, nil)

		rec := f.request(http.MethodGet, "/api/suggestions-issues", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("limit_param_is_forwarded", func(t *testing.T) {
		f := newFixture(t)
		f.forum.On("ListPosts", mock.Anything, "suggestions-ch", 5).Return([]models.ThreadSummary{}, nil)

		rec := f.request(http.MethodGet, "/api/suggestions-issues?limit=5", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		f.forum.AssertExpectations(t)
	})

	t.Run("invalid_limit_is_400", func(t *testing.T) {
		f := newFixture(t)
		rec := f.request(http.MethodGet, "/api/suggestions-issues?limit=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["error"], "limit")
	})

	t.Run("missing_post_is_404", func(t *testing.T) {
		f := newFixture(t)
		f.forum.On("GetSinglePost", mock.Anything, "suggestions-ch", "gone").
			Return(mo.None[*models.PostDetail](), nil)

		rec := f.request(http.MethodGet, "/api/suggestions-issues/gone", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("single_post", func(t *testing.T) {
		f := newFixture(t)
		f.forum.On("GetSinglePost", mock.Anything, "suggestions-ch", "t1").
			Return(mo.Some(&models.PostDetail{ID: "t1", Title: "dark mode"}), nil)

		rec := f.request(http.MethodGet, "/api/suggestions-issues/t1", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "dark mode", decodeBody(t, rec)["title"])
	})
}

func TestMutationCycleRoute(t *testing.T) {
	t.Run("returns_cycle", func(t *testing.T) {
		f := newFixture(t)
		f.mutationCycle.On("GetLatest", mock.Anything).Return(mo.Some(models.MutationCycle{
			Content:   []models.ExpeditionMutations{{Expedition: "Dynasty", Mutations: []string{"Hellfire"}}},
			Timestamp: 100,
		}), nil)

		rec := f.request(http.MethodGet, "/api/mutation-cycle", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("none_is_404", func(t *testing.T) {
		f := newFixture(t)
		f.mutationCycle.On("GetLatest", mock.Anything).Return(mo.None[models.MutationCycle](), nil)

		rec := f.request(http.MethodGet, "/api/mutation-cycle", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMCPAuthGate(t *testing.T) {
	t.Run("missing_token_is_401_without_side_effects", func(t *testing.T) {
		f := newFixture(t)
		rec := f.request(http.MethodGet, "/api/mcp", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		f.channels.AssertNotCalled(t, "ListChannels", mock.Anything)
	})

	t.Run("wrong_token_is_401", func(t *testing.T) {
		f := newFixture(t)
		rec := f.request(http.MethodGet, "/api/mcp/messages?channel=general", "bad-key")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		f.discord.AssertNotCalled(t, "FetchMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delete_without_token_never_deletes", func(t *testing.T) {
		f := newFixture(t)
		rec := f.request(http.MethodDelete, "/api/mcp/message?channel=general&message_id=m1", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		f.discord.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
	})
}

func TestMCPRoutes(t *testing.T) {
	general := models.ChannelDescriptor{
		ID: "100", Name: "general", FullName: "general", Type: models.ChannelTypeText,
	}

	t.Run("channel_list", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("ListChannels", mock.Anything).Return([]models.ChannelDescriptor{general}, nil)

		rec := f.request(http.MethodGet, "/api/mcp", "test-key")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(1), decodeBody(t, rec)["count"])
	})

	t.Run("messages_with_after_filter", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("ResolveChannel", mock.Anything, "general").Return(mo.Some(general), nil)
		f.discord.On("FetchMessages", "100", 10, "", "").Return([]*models.RawMessage{
			{ID: "m2", CleanContent: "new", CreatedAt: 2000},
			{ID: "m1", CleanContent: "old", CreatedAt: 500},
		}, nil)

		rec := f.request(http.MethodGet, "/api/mcp/messages?channel=general&after=1000", "test-key")
		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(1), body["count"])
	})

	t.Run("non_numeric_after_is_400", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("ResolveChannel", mock.Anything, "general").Return(mo.Some(general), nil)

		rec := f.request(http.MethodGet, "/api/mcp/messages?channel=general&after=yesterday", "test-key")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["error"], "after")
	})

	t.Run("missing_channel_param_is_400", func(t *testing.T) {
		f := newFixture(t)
		rec := f.request(http.MethodGet, "/api/mcp/messages", "test-key")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown_channel_is_404", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("ResolveChannel", mock.Anything, "nope").
			Return(mo.None[models.ChannelDescriptor](), nil)

		rec := f.request(http.MethodGet, "/api/mcp/messages?channel=nope", "test-key")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("search_matches_embeds", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("ResolveChannel", mock.Anything, "general").Return(mo.Some(general), nil)
		f.discord.On("FetchMessages", "100", 50, "", "").Return([]*models.RawMessage{
			{ID: "m1", CleanContent: "nothing relevant", CreatedAt: 100},
			{
				ID:        "m2",
				CreatedAt: 200,
				Embeds:    []models.Embed{{Title: "Server Maintenance tonight"}},
			},
		}, nil)

		rec := f.request(http.MethodGet, "/api/mcp/search?channel=general&query=maintenance", "test-key")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(1), decodeBody(t, rec)["count"])
	})

	t.Run("search_without_query_is_400", func(t *testing.T) {
		f := newFixture(t)
		rec := f.request(http.MethodGet, "/api/mcp/search?channel=general", "test-key")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("reactions_threshold", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("ResolveChannel", mock.Anything, "general").Return(mo.Some(general), nil)
		f.discord.On("FetchMessages", "100", 50, "", "").Return([]*models.RawMessage{
			{ID: "m1", Reactions: []models.Reaction{{Emoji: "👍", Count: 2}}},
			{ID: "m2", Reactions: []models.Reaction{{Emoji: "👍", Count: 4}, {Emoji: "🔥", Count: 3}}},
		}, nil)

		rec := f.request(http.MethodGet, "/api/mcp/reactions?channel=general&min_reactions=5", "test-key")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(1), decodeBody(t, rec)["count"])
	})

	t.Run("forum_on_text_channel_is_400", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("ResolveChannel", mock.Anything, "general").Return(mo.Some(general), nil)

		rec := f.request(http.MethodGet, "/api/mcp/forum?channel=general", "test-key")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.forum.AssertNotCalled(t, "ListPosts", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("forum_posts_with_after_filter", func(t *testing.T) {
		forumChannel := models.ChannelDescriptor{
			ID: "200", Name: "suggestions", FullName: "suggestions", Type: models.ChannelTypeForum,
		}
		f := newFixture(t)
		f.channels.On("ResolveChannel", mock.Anything, "suggestions").Return(mo.Some(forumChannel), nil)
		f.forum.On("ListPosts", mock.Anything, "200", 20).Return([]models.ThreadSummary{
			{ID: "t1", CreatedAt: 3000},
			{ID: "t2", CreatedAt: 1000},
		}, nil)

		rec := f.request(http.MethodGet, "/api/mcp/forum?channel=suggestions&after=2000", "test-key")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(1), decodeBody(t, rec)["count"])
	})

	t.Run("delete_message", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("ResolveChannel", mock.Anything, "general").Return(mo.Some(general), nil)
		f.discord.On("DeleteMessage", "100", "m1").Return(nil)

		rec := f.request(http.MethodDelete, "/api/mcp/message?channel=general&message_id=m1", "test-key")
		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "general", body["channel"])
		assert.Equal(t, "m1", body["messageId"])
	})

	t.Run("delete_missing_message_is_404", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("ResolveChannel", mock.Anything, "general").Return(mo.Some(general), nil)
		f.discord.On("DeleteMessage", "100", "gone").Return(core.ErrNotFound)

		rec := f.request(http.MethodDelete, "/api/mcp/message?channel=general&message_id=gone", "test-key")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHealthRoute(t *testing.T) {
	f := newFixture(t)
	f.cache.On("Stats").Return(models.CacheStats{Cached: true, MessageCount: 42, TTLMillis: 300000})

	rec := f.request(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
}
