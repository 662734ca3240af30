package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"updatesbot/clients/discord"
	"updatesbot/config"
	"updatesbot/mcpserver"
	"updatesbot/services/channels"
	"updatesbot/services/forum"
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
	if !cfg.MCPConfig.IsConfigured() {
		return fmt.Errorf("MCP_API_KEY is required for authorization")
	}

	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return err
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	if err := session.Open(); err != nil {
		return err
	}
	defer session.Close()

	discordClient := discord.NewDiscordClient(session)
	channelsService := channels.NewChannelsService(discordClient)
	forumService := forum.NewForumService(discordClient)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := mcpserver.New(channelsService, forumService, discordClient)
	return srv.ServeStdio(ctx)
}
