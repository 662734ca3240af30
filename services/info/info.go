package info

import (
	"context"
	"fmt"
	"strings"

	"updatesbot/clients"
	"updatesbot/core"
	"updatesbot/models"
	"updatesbot/services"
)

const messageFetchLimit = 5

// InfoService serves the named info channels: a listing with per-channel
// links and the 5 newest messages of each channel in the rich projection.
type InfoService struct {
	discordClient clients.DiscordClient
	channels      []models.InfoChannel
}

// NewInfoService creates an info service over the given channel set.
func NewInfoService(discordClient clients.DiscordClient, channels []models.InfoChannel) *InfoService {
	return &InfoService{
		discordClient: discordClient,
		channels:      channels,
	}
}

var _ services.InfoService = (*InfoService)(nil)

func (s *InfoService) ListChannels(baseURL string) []models.ChannelLink {
	links := make([]models.ChannelLink, 0, len(s.channels))
	for _, channel := range s.channels {
		links = append(links, models.ChannelLink{
			Name: channel.Name,
			Link: fmt.Sprintf("%s/%s", strings.TrimSuffix(baseURL, "/"), channel.Name),
		})
	}
	return links
}

func (s *InfoService) GetChannelMessages(ctx context.Context, channelName string) ([]models.InfoMessage, error) {
	var channelID string
	for _, channel := range s.channels {
		if channel.Name == channelName {
			channelID = channel.ChannelID
			break
		}
	}
	if channelID == "" {
		return nil, fmt.Errorf("info channel %s: %w", channelName, core.ErrNotFound)
	}

	raw, err := s.discordClient.FetchMessages(channelID, messageFetchLimit, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch info messages for channel %s: %w", channelName, err)
	}
	messages := make([]models.InfoMessage, 0, len(raw))
	for _, msg := range raw {
		messages = append(messages, msg.ToInfoMessage())
	}
	return messages, nil
}
