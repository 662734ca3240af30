package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"updatesbot/clients/discord"
	"updatesbot/config"
	"updatesbot/handlers"
	"updatesbot/middleware"
	"updatesbot/models"
	"updatesbot/services/channels"
	"updatesbot/services/forum"
	"updatesbot/services/info"
	"updatesbot/services/mutationcycle"
	"updatesbot/services/registry"
	"updatesbot/services/spamguard"
	"updatesbot/services/status"
	"updatesbot/services/updates"
	"updatesbot/services/updatescache"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Open the Discord gateway session
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return err
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent
	if err := session.Open(); err != nil {
		return err
	}
	defer session.Close()

	discordClient := discord.NewDiscordClient(session)
	botUser, err := discordClient.GetBotUser()
	if err != nil {
		return err
	}
	log.Printf("✅ Logged in as %s", botUser.Username)

	// Initialize services
	registryService := registry.NewRegistryService(registry.DefaultGames())
	channelsService := channels.NewChannelsService(discordClient)
	cacheService := updatescache.NewUpdatesCacheService(discordClient, cfg.CentralUpdatesChannelID)
	updatesService := updates.NewUpdatesService(discordClient, registryService, cacheService)
	infoService := info.NewInfoService(discordClient, info.DefaultChannels())
	forumService := forum.NewForumService(discordClient)
	mutationCycleService := mutationcycle.NewMutationCycleService(discordClient, cfg.MutationCycleChannelID)
	spamGuardService := spamguard.NewSpamGuardService(
		discordClient,
		cfg.SpamGuardConfig.ModLogChannelID,
		cfg.SpamGuardConfig.SafeRoleIDs,
		models.SpamGuardMode(cfg.SpamGuardConfig.Mode),
	)

	// Feed gateway messages into the spam guard
	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author != nil && m.Author.ID == botUser.ID {
			return
		}
		spamGuardService.HandleMessage(context.Background(), discord.InboundFromEvent(m))
	})

	cleanupTicker := time.NewTicker(spamguard.CleanupInterval)
	go func() {
		for range cleanupTicker.C {
			spamGuardService.Cleanup()
		}
	}()
	defer cleanupTicker.Stop()

	// Start the status refresher when its channels are configured
	if cfg.StatusConfig.IsConfigured() {
		statusService := status.NewStatusService(
			discordClient,
			&http.Client{Timeout: 30 * time.Second},
			cfg.StatusConfig.DownloadsChannelID,
			cfg.StatusConfig.VersionChannelID,
			cfg.StatusConfig.GithubAccessToken,
		)
		statusTicker := time.NewTicker(status.RefreshInterval)
		go func() {
			if err := statusService.Refresh(context.Background()); err != nil {
				log.Printf("⚠️ Status refresh failed: %v", err)
			}
			for range statusTicker.C {
				if err := statusService.Refresh(context.Background()); err != nil {
					log.Printf("⚠️ Status refresh failed: %v", err)
				}
			}
		}()
		defer statusTicker.Stop()
	}

	// Setup HTTP endpoints
	apiHandler := handlers.NewAPIHandler(
		updatesService,
		infoService,
		forumService,
		mutationCycleService,
		channelsService,
		cacheService,
		discordClient,
		cfg.ForumConfig.SuggestionsChannelID,
	)
	authMiddleware := middleware.APIKeyAuthMiddleware(cfg.MCPConfig.APIKey)

	router := mux.NewRouter()
	apiHandler.SetupEndpoints(router, authMiddleware)

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
