package updates

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"updatesbot/clients"
	"updatesbot/core"
	"updatesbot/models"
	"updatesbot/services"
	"updatesbot/utils"
)

// maxUpdates caps both the per-source fetch and the merged result.
const maxUpdates = 5

// UpdatesService merges a game's dedicated channel with the central updates
// channel into a single newest-first update feed.
type UpdatesService struct {
	discordClient clients.DiscordClient
	registry      services.RegistryService
	cache         services.UpdatesCacheService
}

// NewUpdatesService creates a new updates service.
func NewUpdatesService(
	discordClient clients.DiscordClient,
	registry services.RegistryService,
	cache services.UpdatesCacheService,
) *UpdatesService {
	return &UpdatesService{
		discordClient: discordClient,
		registry:      registry,
		cache:         cache,
	}
}

var _ services.UpdatesService = (*UpdatesService)(nil)

func (s *UpdatesService) ListGames(baseURL string) []models.GameLink {
	games := s.registry.AllGames()
	links := make([]models.GameLink, 0, len(games))
	for _, game := range games {
		links = append(links, models.GameLink{
			Name: game.Name,
			Link: fmt.Sprintf("%s/%s", strings.TrimSuffix(baseURL, "/"), game.Name),
		})
	}
	return links
}

func (s *UpdatesService) GetGameUpdates(ctx context.Context, gameName string) ([]models.Update, error) {
	log.Printf("📋 Starting to get game updates for: %s", gameName)
	game, ok := s.registry.GetGame(gameName).Get()
	if !ok {
		return nil, fmt.Errorf("game %s: %w", gameName, core.ErrNotFound)
	}

	// The dedicated channel is best-effort. A lookup failure must not hide
	// updates announced centrally.
	dedicated := []models.Update{}
	if game.ChannelID != "" {
		messages, err := s.discordClient.FetchMessages(game.ChannelID, maxUpdates, "", "")
		if err != nil {
			log.Printf("⚠️ Failed to fetch dedicated channel %s for game %s: %v", game.ChannelID, gameName, err)
		} else {
			for _, msg := range messages {
				dedicated = append(dedicated, msg.ToUpdate())
			}
		}
	}

	central, err := s.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get central updates: %w", err)
	}
	centralMatches := []models.Update{}
	for _, msg := range central {
		if len(centralMatches) >= maxUpdates {
			break
		}
		if messageMatchesGame(msg, game) {
			centralMatches = append(centralMatches, msg.ToUpdate())
		}
	}

	merged := mergeUpdates(dedicated, centralMatches)
	log.Printf("📋 Completed successfully - resolved %d updates for game: %s", len(merged), gameName)
	return merged, nil
}

// messageMatchesGame matches by role mention first, falling back to a
// title-keyword substring match against the message's first line.
func messageMatchesGame(msg *models.RawMessage, game models.GameConfig) bool {
	if len(game.RoleIDs) > 0 {
		for _, mentioned := range msg.MentionedRoleIDs {
			for _, roleID := range game.RoleIDs {
				if mentioned == roleID {
					return true
				}
			}
		}
	}
	title := strings.ToLower(utils.FirstLine(msg.CleanContent))
	for _, keyword := range game.TitleKeywords {
		if strings.Contains(title, keyword) {
			return true
		}
	}
	return false
}

// mergeUpdates concatenates both sources dedicated-first, drops entries whose
// timestamp was already seen, sorts newest first and truncates.
func mergeUpdates(dedicated, central []models.Update) []models.Update {
	seen := map[int64]bool{}
	merged := []models.Update{}
	for _, update := range append(dedicated, central...) {
		if seen[update.Timestamp] {
			continue
		}
		seen[update.Timestamp] = true
		merged = append(merged, update)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp > merged[j].Timestamp
	})
	if len(merged) > maxUpdates {
		merged = merged[:maxUpdates]
	}
	return merged
}
