package mutationcycle

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/samber/mo"

	"updatesbot/clients"
	"updatesbot/models"
	"updatesbot/services"
)

// candidateMessages is how many recent messages are checked for a parseable
// rotation post.
const candidateMessages = 3

// MutationCycleService extracts the weekly expedition mutation rotation from
// the configured announcement channel.
type MutationCycleService struct {
	discordClient clients.DiscordClient
	channelID     string
}

// NewMutationCycleService creates a new mutation cycle service.
func NewMutationCycleService(discordClient clients.DiscordClient, channelID string) *MutationCycleService {
	return &MutationCycleService{discordClient: discordClient, channelID: channelID}
}

var _ services.MutationCycleService = (*MutationCycleService)(nil)

// GetLatest fetches the newest messages and returns the first one that parses
// fully. Messages with any unparseable line are skipped.
func (s *MutationCycleService) GetLatest(ctx context.Context) (mo.Option[models.MutationCycle], error) {
	log.Printf("📋 Starting to get latest mutation cycle")
	messages, err := s.discordClient.FetchMessages(s.channelID, candidateMessages, "", "")
	if err != nil {
		return mo.None[models.MutationCycle](), fmt.Errorf("failed to fetch mutation cycle messages: %w", err)
	}
	for _, msg := range messages {
		content, ok := parseCycleContent(msg.Content)
		if !ok {
			continue
		}
		cycle := models.MutationCycle{
			Content:   content,
			Timestamp: msg.CreatedAt,
		}
		if len(msg.Attachments) > 0 {
			url := msg.Attachments[0].URL
			cycle.ImageSrc = &url
		}
		log.Printf("📋 Completed successfully - parsed mutation cycle with %d expeditions", len(content))
		return mo.Some(cycle), nil
	}
	log.Printf("⚠️ No parseable mutation cycle message among the %d newest", len(messages))
	return mo.None[models.MutationCycle](), nil
}

// parseCycleContent parses every line as `**Expedition** \x60mut1, mut2\x60`.
// All lines must carry a backtick-quoted mutation list or the whole message is
// rejected. The bolded expedition name is optional per line.
func parseCycleContent(content string) ([]models.ExpeditionMutations, bool) {
	lines := strings.Split(content, "\n")
	parsed := make([]models.ExpeditionMutations, 0, len(lines))
	for _, line := range lines {
		quoted := strings.Split(line, "`")
		if len(quoted) < 2 {
			return nil, false
		}
		expedition := ""
		if bolded := strings.Split(line, "**"); len(bolded) >= 2 {
			expedition = bolded[1]
		}
		parsed = append(parsed, models.ExpeditionMutations{
			Expedition: expedition,
			Mutations:  strings.Split(quoted[1], ", "),
		})
	}
	return parsed, true
}
