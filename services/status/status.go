package status

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"updatesbot/clients"
	"updatesbot/services"
)

const (
	// RefreshInterval is how often the composition root ticks Refresh.
	RefreshInterval = time.Hour

	// companionAppID is the Overwolf store ID of the companion app.
	companionAppID = "ebafpjfhleenmkcmdhlbdchpdalblhiellgfmmbb"

	defaultStoreAPIBaseURL  = "https://storeapi.overwolf.com"
	defaultGithubAPIBaseURL = "https://api.github.com"

	manifestPath = "/repos/lmachens/the-hidden-gaming-lair/contents/apps/palworld-overwolf/manifest.json"
)

// StatusService mirrors the companion app's download counter and released
// version into two channel names.
type StatusService struct {
	discordClient      clients.DiscordClient
	httpClient         *http.Client
	downloadsChannelID string
	versionChannelID   string
	githubToken        string
	storeAPIBaseURL    string
	githubAPIBaseURL   string
	now                func() time.Time
}

// NewStatusService creates a new status service.
func NewStatusService(
	discordClient clients.DiscordClient,
	httpClient *http.Client,
	downloadsChannelID, versionChannelID, githubToken string,
) *StatusService {
	return &StatusService{
		discordClient:      discordClient,
		httpClient:         httpClient,
		downloadsChannelID: downloadsChannelID,
		versionChannelID:   versionChannelID,
		githubToken:        githubToken,
		storeAPIBaseURL:    defaultStoreAPIBaseURL,
		githubAPIBaseURL:   defaultGithubAPIBaseURL,
		now:                time.Now,
	}
}

var _ services.StatusService = (*StatusService)(nil)

// SetBaseURLs overrides the upstream endpoints, for tests.
func (s *StatusService) SetBaseURLs(storeAPI, githubAPI string) {
	s.storeAPIBaseURL = storeAPI
	s.githubAPIBaseURL = githubAPI
}

func (s *StatusService) Refresh(ctx context.Context) error {
	log.Printf("📋 Starting to refresh app status channels")
	downloads, err := s.fetchDownloads(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch download counter: %w", err)
	}
	version, err := s.fetchVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch released version: %w", err)
	}
	if err := s.discordClient.SetChannelName(s.downloadsChannelID, fmt.Sprintf("Downloads: %s", downloads)); err != nil {
		return err
	}
	if err := s.discordClient.SetChannelName(s.versionChannelID, fmt.Sprintf("Version: %s", version)); err != nil {
		return err
	}
	log.Printf("📋 Completed successfully - status channels set to downloads=%s version=%s", downloads, version)
	return nil
}

func (s *StatusService) fetchDownloads(ctx context.Context) (string, error) {
	// The r parameter busts the store API's response cache.
	endpoint := fmt.Sprintf("%s/apps/download-counter?appids=%s&r=%d",
		s.storeAPIBaseURL,
		url.QueryEscape(fmt.Sprintf("[%q]", companionAppID)),
		s.now().UnixMilli())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download counter request: %w", err)
	}
	body, err := s.do(req)
	if err != nil {
		return "", err
	}
	var counters map[string]string
	if err := json.Unmarshal(body, &counters); err != nil {
		return "", fmt.Errorf("failed to decode download counter response: %w", err)
	}
	downloads, ok := counters[companionAppID]
	if !ok {
		return "", fmt.Errorf("download counter response is missing app %s", companionAppID)
	}
	return downloads, nil
}

func (s *StatusService) fetchVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.githubAPIBaseURL+manifestPath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create manifest request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.raw+json")
	req.Header.Set("Authorization", "Bearer "+s.githubToken)
	body, err := s.do(req)
	if err != nil {
		return "", err
	}
	var manifest struct {
		Meta struct {
			Version string `json:"version"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(body, &manifest); err != nil {
		return "", fmt.Errorf("failed to decode manifest response: %w", err)
	}
	if manifest.Meta.Version == "" {
		return "", fmt.Errorf("manifest response is missing meta.version")
	}
	return manifest.Meta.Version, nil
}

func (s *StatusService) do(req *http.Request) ([]byte, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
