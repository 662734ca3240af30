package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"updatesbot/clients"
	"updatesbot/core"
	"updatesbot/models"
	"updatesbot/services"
)

const maxMessageFetch = 100

// APIHandler serves the public update/forum routes and the authorized MCP API.
type APIHandler struct {
	updatesService       services.UpdatesService
	infoService          services.InfoService
	forumService         services.ForumService
	mutationCycleService services.MutationCycleService
	channelsService      services.ChannelsService
	cacheService         services.UpdatesCacheService
	discordClient        clients.DiscordClient
	suggestionsChannelID string
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	updatesService services.UpdatesService,
	infoService services.InfoService,
	forumService services.ForumService,
	mutationCycleService services.MutationCycleService,
	channelsService services.ChannelsService,
	cacheService services.UpdatesCacheService,
	discordClient clients.DiscordClient,
	suggestionsChannelID string,
) *APIHandler {
	return &APIHandler{
		updatesService:       updatesService,
		infoService:          infoService,
		forumService:         forumService,
		mutationCycleService: mutationCycleService,
		channelsService:      channelsService,
		cacheService:         cacheService,
		discordClient:        discordClient,
		suggestionsChannelID: suggestionsChannelID,
	}
}

// SetupEndpoints registers all HTTP routes. The MCP subtree is wrapped with
// the given auth middleware.
func (h *APIHandler) SetupEndpoints(router *mux.Router, authMiddleware mux.MiddlewareFunc) {
	router.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/updates", h.handleListGames).Methods(http.MethodGet)
	api.HandleFunc("/updates/{gameName}", h.handleGameUpdates).Methods(http.MethodGet)
	api.HandleFunc("/info", h.handleListInfoChannels).Methods(http.MethodGet)
	api.HandleFunc("/info/{channelName}", h.handleInfoChannel).Methods(http.MethodGet)
	api.HandleFunc("/suggestions-issues", h.handleListSuggestions).Methods(http.MethodGet)
	api.HandleFunc("/suggestions-issues/{postId}", h.handleSuggestionPost).Methods(http.MethodGet)
	api.HandleFunc("/mutation-cycle", h.handleMutationCycle).Methods(http.MethodGet)

	mcp := api.PathPrefix("/mcp").Subrouter()
	mcp.Use(authMiddleware)
	mcp.HandleFunc("", h.handleMCPChannels).Methods(http.MethodGet)
	mcp.HandleFunc("/messages", h.handleMCPMessages).Methods(http.MethodGet)
	mcp.HandleFunc("/search", h.handleMCPSearch).Methods(http.MethodGet)
	mcp.HandleFunc("/reactions", h.handleMCPReactions).Methods(http.MethodGet)
	mcp.HandleFunc("/forum", h.handleMCPForum).Methods(http.MethodGet)
	mcp.HandleFunc("/message", h.handleMCPDeleteMessage).Methods(http.MethodDelete)

	// Every route answers plain OPTIONS with 204; preflight requests are
	// handled by the CORS middleware before they reach the router.
	router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "Not found")
	})
}

func (h *APIHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"updatesCache": h.cacheService.Stats(),
	})
}

func (h *APIHandler) handleListGames(w http.ResponseWriter, r *http.Request) {
	baseURL := fmt.Sprintf("%s://%s%s", requestScheme(r), r.Host, r.URL.Path)
	writeJSON(w, http.StatusOK, h.updatesService.ListGames(baseURL))
}

func (h *APIHandler) handleGameUpdates(w http.ResponseWriter, r *http.Request) {
	gameName := mux.Vars(r)["gameName"]
	updates, err := h.updatesService.GetGameUpdates(r.Context(), gameName)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updates)
}

func (h *APIHandler) handleListInfoChannels(w http.ResponseWriter, r *http.Request) {
	baseURL := fmt.Sprintf("%s://%s%s", requestScheme(r), r.Host, r.URL.Path)
	writeJSON(w, http.StatusOK, h.infoService.ListChannels(baseURL))
}

func (h *APIHandler) handleInfoChannel(w http.ResponseWriter, r *http.Request) {
	channelName := mux.Vars(r)["channelName"]
	messages, err := h.infoService.GetChannelMessages(r.Context(), channelName)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *APIHandler) handleListSuggestions(w http.ResponseWriter, r *http.Request) {
	if h.suggestionsChannelID == "" {
		writeJSONError(w, http.StatusNotFound, "Suggestions forum is not configured")
		return
	}
	limit, ok := h.parseIntParam(w, r, "limit", 0)
	if !ok {
		return
	}
	posts, err := h.forumService.ListPosts(r.Context(), h.suggestionsChannelID, limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *APIHandler) handleSuggestionPost(w http.ResponseWriter, r *http.Request) {
	if h.suggestionsChannelID == "" {
		writeJSONError(w, http.StatusNotFound, "Suggestions forum is not configured")
		return
	}
	postID := mux.Vars(r)["postId"]
	maybePost, err := h.forumService.GetSinglePost(r.Context(), h.suggestionsChannelID, postID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	post, ok := maybePost.Get()
	if !ok {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("Post '%s' not found", postID))
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *APIHandler) handleMutationCycle(w http.ResponseWriter, r *http.Request) {
	maybeCycle, err := h.mutationCycleService.GetLatest(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	cycle, ok := maybeCycle.Get()
	if !ok {
		writeJSONError(w, http.StatusNotFound, "No mutation cycle message found")
		return
	}
	writeJSON(w, http.StatusOK, cycle)
}

func (h *APIHandler) handleMCPChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.channelsService.ListChannels(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(channels),
		"channels": channels,
	})
}

func (h *APIHandler) handleMCPMessages(w http.ResponseWriter, r *http.Request) {
	channel, ok := h.resolveChannelParam(w, r)
	if !ok {
		return
	}
	limit, ok := h.parseIntParam(w, r, "limit", 10)
	if !ok {
		return
	}
	after, ok := h.parseInt64Param(w, r, "after", 0)
	if !ok {
		return
	}

	messages, err := h.fetchFormatted(channel.ID, limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if after > 0 {
		messages = filterAfter(messages, after)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"channel":  channel.Name,
		"fullName": channel.FullName,
		"category": channel.Category,
		"type":     channel.Type,
		"count":    len(messages),
		"messages": messages,
	})
}

func (h *APIHandler) handleMCPSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing 'query' parameter")
		return
	}
	channel, ok := h.resolveChannelParam(w, r)
	if !ok {
		return
	}
	limit, ok := h.parseIntParam(w, r, "limit", 50)
	if !ok {
		return
	}

	raw, err := h.discordClient.FetchMessages(channel.ID, min(limit, maxMessageFetch), "", "")
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	lowerQuery := strings.ToLower(query)
	matching := []models.FormattedMessage{}
	for _, msg := range raw {
		if msg.MatchesQuery(lowerQuery) {
			matching = append(matching, models.FormatMessage(msg))
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"channel":  channel.Name,
		"fullName": channel.FullName,
		"category": channel.Category,
		"query":    query,
		"count":    len(matching),
		"messages": matching,
	})
}

func (h *APIHandler) handleMCPReactions(w http.ResponseWriter, r *http.Request) {
	channel, ok := h.resolveChannelParam(w, r)
	if !ok {
		return
	}
	minReactions, ok := h.parseIntParam(w, r, "min_reactions", 5)
	if !ok {
		return
	}
	limit, ok := h.parseIntParam(w, r, "limit", 50)
	if !ok {
		return
	}

	raw, err := h.discordClient.FetchMessages(channel.ID, min(limit, maxMessageFetch), "", "")
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	matching := []models.FormattedMessage{}
	for _, msg := range raw {
		if msg.TotalReactions() >= minReactions {
			matching = append(matching, models.FormatMessage(msg))
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"channel":       channel.Name,
		"fullName":      channel.FullName,
		"category":      channel.Category,
		"min_reactions": minReactions,
		"count":         len(matching),
		"messages":      matching,
	})
}

func (h *APIHandler) handleMCPForum(w http.ResponseWriter, r *http.Request) {
	channel, ok := h.resolveChannelParam(w, r)
	if !ok {
		return
	}
	if channel.Type != models.ChannelTypeForum {
		writeJSONError(w, http.StatusBadRequest,
			fmt.Sprintf("Channel '%s' is not a forum channel", channel.Name))
		return
	}
	limit, ok := h.parseIntParam(w, r, "limit", 20)
	if !ok {
		return
	}
	after, ok := h.parseInt64Param(w, r, "after", 0)
	if !ok {
		return
	}

	posts, err := h.forumService.ListPosts(r.Context(), channel.ID, limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if after > 0 {
		filtered := []models.ThreadSummary{}
		for _, post := range posts {
			if post.CreatedAt > after {
				filtered = append(filtered, post)
			}
		}
		posts = filtered
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"channel": channel.Name,
		"count":   len(posts),
		"posts":   posts,
	})
}

func (h *APIHandler) handleMCPDeleteMessage(w http.ResponseWriter, r *http.Request) {
	messageID := r.URL.Query().Get("message_id")
	if messageID == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing 'message_id' parameter")
		return
	}
	channel, ok := h.resolveChannelParam(w, r)
	if !ok {
		return
	}
	if err := h.discordClient.DeleteMessage(channel.ID, messageID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	log.Printf("✅ Deleted message %s in channel %s", messageID, channel.Name)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"channel":   channel.Name,
		"messageId": messageID,
	})
}

// resolveChannelParam reads the channel query parameter and resolves it to a
// descriptor, writing the error response itself when that fails.
func (h *APIHandler) resolveChannelParam(w http.ResponseWriter, r *http.Request) (models.ChannelDescriptor, bool) {
	identifier := r.URL.Query().Get("channel")
	if identifier == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing 'channel' parameter")
		return models.ChannelDescriptor{}, false
	}
	resolved, err := h.channelsService.ResolveChannel(r.Context(), identifier)
	if err != nil {
		h.writeServiceError(w, err)
		return models.ChannelDescriptor{}, false
	}
	channel, ok := resolved.Get()
	if !ok {
		writeJSONError(w, http.StatusNotFound,
			fmt.Sprintf("Channel '%s' not found. Use GET /api/mcp to list all channels.", identifier))
		return models.ChannelDescriptor{}, false
	}
	return channel, true
}

func (h *APIHandler) fetchFormatted(channelID string, limit int) ([]models.FormattedMessage, error) {
	raw, err := h.discordClient.FetchMessages(channelID, min(limit, maxMessageFetch), "", "")
	if err != nil {
		return nil, err
	}
	formatted := make([]models.FormattedMessage, 0, len(raw))
	for _, msg := range raw {
		formatted = append(formatted, models.FormatMessage(msg))
	}
	return formatted, nil
}

func filterAfter(messages []models.FormattedMessage, after int64) []models.FormattedMessage {
	filtered := []models.FormattedMessage{}
	for _, msg := range messages {
		if msg.Timestamp > after {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

func (h *APIHandler) parseIntParam(w http.ResponseWriter, r *http.Request, name string, defaultValue int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid '%s' parameter: must be a number", name))
		return 0, false
	}
	return value, true
}

func (h *APIHandler) parseInt64Param(w http.ResponseWriter, r *http.Request, name string, defaultValue int64) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid '%s' parameter: must be a number", name))
		return 0, false
	}
	return value, true
}

func (h *APIHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case core.IsNotFoundError(err):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case core.IsWrongTypeError(err):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrUnauthorized):
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		log.Printf("❌ Request failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
