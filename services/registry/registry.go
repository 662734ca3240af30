package registry

import (
	"strings"

	"github.com/samber/mo"

	"updatesbot/models"
	"updatesbot/services"
)

// RegistryService holds the static game registry. The set is immutable after
// construction.
type RegistryService struct {
	games []models.GameConfig
}

// NewRegistryService creates a registry over the given game configurations.
func NewRegistryService(games []models.GameConfig) *RegistryService {
	return &RegistryService{games: games}
}

var _ services.RegistryService = (*RegistryService)(nil)

func (s *RegistryService) GetGame(name string) mo.Option[models.GameConfig] {
	for _, game := range s.games {
		if game.Name == name {
			return mo.Some(game)
		}
	}
	return mo.None[models.GameConfig]()
}

func (s *RegistryService) FindGameByRoleID(roleID string) mo.Option[models.GameConfig] {
	for _, game := range s.games {
		for _, id := range game.RoleIDs {
			if id == roleID {
				return mo.Some(game)
			}
		}
	}
	return mo.None[models.GameConfig]()
}

func (s *RegistryService) FindGameByTitle(title string) mo.Option[models.GameConfig] {
	lowerTitle := strings.ToLower(title)
	for _, game := range s.games {
		for _, keyword := range game.TitleKeywords {
			if strings.Contains(lowerTitle, keyword) {
				return mo.Some(game)
			}
		}
	}
	return mo.None[models.GameConfig]()
}

func (s *RegistryService) AllGames() []models.GameConfig {
	games := make([]models.GameConfig, len(s.games))
	copy(games, s.games)
	return games
}
