package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type MCPConfig struct {
	APIKey string
}

// IsConfigured returns true if the MCP API surface can be enabled
func (c MCPConfig) IsConfigured() bool {
	return c.APIKey != ""
}

type SpamGuardConfig struct {
	ModLogChannelID string
	SafeRoleIDs     []string
	Mode            string
}

// IsConfigured returns true if spam detections can be posted to a mod log channel
func (c SpamGuardConfig) IsConfigured() bool {
	return c.ModLogChannelID != ""
}

type StatusConfig struct {
	DownloadsChannelID string
	VersionChannelID   string
	GithubAccessToken  string
}

// IsConfigured returns true if all required status refresher configuration is present
func (c StatusConfig) IsConfigured() bool {
	return c.DownloadsChannelID != "" &&
		c.VersionChannelID != "" &&
		c.GithubAccessToken != ""
}

type ForumConfig struct {
	SuggestionsChannelID string
}

// IsConfigured returns true if the suggestions forum endpoints can be enabled
func (c ForumConfig) IsConfigured() bool {
	return c.SuggestionsChannelID != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DiscordBotToken    string
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"

	// Channel configuration
	CentralUpdatesChannelID string
	MutationCycleChannelID  string

	// Feature configurations (grouped)
	MCPConfig       MCPConfig
	SpamGuardConfig SpamGuardConfig
	StatusConfig    StatusConfig
	ForumConfig     ForumConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	botToken, err := getEnvRequired("DISCORD_BOT_TOKEN")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		DiscordBotToken:    botToken,
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),

		CentralUpdatesChannelID: getEnvWithDefault("CENTRAL_UPDATES_CHANNEL_ID", "1166078913756270702"),
		MutationCycleChannelID:  getEnvWithDefault("MUTATION_CYCLE_CHANNEL_ID", "1062724443580936192"),

		MCPConfig: MCPConfig{
			APIKey: os.Getenv("MCP_API_KEY"),
		},

		SpamGuardConfig: SpamGuardConfig{
			ModLogChannelID: os.Getenv("MOD_LOG_CHANNEL_ID"),
			SafeRoleIDs:     splitCSV(os.Getenv("SAFE_ROLE_IDS")),
			Mode:            getEnvWithDefault("SPAM_GUARD_MODE", "log"),
		},

		StatusConfig: StatusConfig{
			DownloadsChannelID: os.Getenv("STATUS_DOWNLOADS_CHANNEL_ID"),
			VersionChannelID:   os.Getenv("STATUS_VERSION_CHANNEL_ID"),
			GithubAccessToken:  os.Getenv("GITHUB_ACCESS_TOKEN"),
		},

		ForumConfig: ForumConfig{
			SuggestionsChannelID: os.Getenv("SUGGESTIONS_CHANNEL_ID"),
		},
	}

	if config.SpamGuardConfig.Mode != "log" && config.SpamGuardConfig.Mode != "act" {
		return nil, fmt.Errorf("SPAM_GUARD_MODE must be 'log' or 'act', got %q", config.SpamGuardConfig.Mode)
	}

	// Log which features are configured
	if config.MCPConfig.IsConfigured() {
		log.Printf("✅ MCP API surface configured")
	} else {
		log.Printf("⚠️ MCP_API_KEY not set - MCP routes will reject all requests")
	}

	if config.SpamGuardConfig.IsConfigured() {
		log.Printf("✅ Spam guard mod log configured (mode: %s, safe roles: %d)",
			config.SpamGuardConfig.Mode, len(config.SpamGuardConfig.SafeRoleIDs))
	} else {
		log.Printf("⚠️ MOD_LOG_CHANNEL_ID not set - spam detections will only be logged locally")
	}

	if config.StatusConfig.IsConfigured() {
		log.Printf("✅ App status refresher configured")
	} else {
		log.Printf("⚠️ Status refresher not configured - status channels will not be updated")
	}

	if config.ForumConfig.IsConfigured() {
		log.Printf("✅ Suggestions forum configured")
	} else {
		log.Printf("⚠️ SUGGESTIONS_CHANNEL_ID not set - suggestions endpoints will be disabled")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
