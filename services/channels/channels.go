package channels

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/mo"

	"updatesbot/clients"
	"updatesbot/models"
	"updatesbot/services"
)

// ChannelsService lists live channels and resolves channel identifiers.
type ChannelsService struct {
	discordClient clients.DiscordClient
}

// NewChannelsService creates a new channels service.
func NewChannelsService(discordClient clients.DiscordClient) *ChannelsService {
	return &ChannelsService{discordClient: discordClient}
}

var _ services.ChannelsService = (*ChannelsService)(nil)

func (s *ChannelsService) ListChannels(ctx context.Context) ([]models.ChannelDescriptor, error) {
	channels, err := s.discordClient.GetAllChannels()
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return channels, nil
}

// ResolveChannel tries an exact ID match first, then the category-qualified
// full name, then a case-insensitive bare name.
func (s *ChannelsService) ResolveChannel(ctx context.Context, identifier string) (mo.Option[models.ChannelDescriptor], error) {
	channels, err := s.discordClient.GetAllChannels()
	if err != nil {
		return mo.None[models.ChannelDescriptor](), fmt.Errorf("failed to resolve channel %s: %w", identifier, err)
	}

	for _, channel := range channels {
		if channel.ID == identifier {
			return mo.Some(channel), nil
		}
	}
	for _, channel := range channels {
		if channel.FullName == identifier {
			return mo.Some(channel), nil
		}
	}
	lowerIdentifier := strings.ToLower(identifier)
	for _, channel := range channels {
		if strings.ToLower(channel.Name) == lowerIdentifier {
			return mo.Some(channel), nil
		}
	}
	return mo.None[models.ChannelDescriptor](), nil
}
