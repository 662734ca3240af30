package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"updatesbot/clients"
	"updatesbot/services"
)

const (
	serverName    = "discord-bot-mcp"
	serverVersion = "1.0.0"
)

// Server exposes the Discord read/moderation surface as MCP tools over stdio.
type Server struct {
	mcp             *server.MCPServer
	channelsService services.ChannelsService
	forumService    services.ForumService
	discordClient   clients.DiscordClient
}

// New creates the MCP server with all tools registered. It does not start
// listening until ServeStdio is called.
func New(
	channelsService services.ChannelsService,
	forumService services.ForumService,
	discordClient clients.DiscordClient,
) *Server {
	s := &Server{
		channelsService: channelsService,
		forumService:    forumService,
		discordClient:   discordClient,
	}

	mcpServer := server.NewMCPServer(serverName, serverVersion)
	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}

	s.mcp = mcpServer
	return s
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := server.NewStdioServer(s.mcp)
	log.Printf("✅ MCP server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		s.toolGetChannelList(),
		s.toolGetRecentMessages(),
		s.toolSearchMessages(),
		s.toolGetMessagesWithReactions(),
		s.toolGetForumPosts(),
		s.toolDeleteMessage(),
	}
}

func resultText(text string) *mcp.CallToolResult {
	return mcp.NewToolResultText(text)
}

func resultErr(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(err.Error())},
		IsError: true,
	}
}

func resultJSON(v any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(v)
}

// stringArg extracts a named string argument. Returns ("", false) when the
// argument is absent or not a string.
func stringArg(req mcp.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg extracts a named int argument. The protocol serialises numbers as
// float64, so both representations are accepted.
func intArg(req mcp.CallToolRequest, name string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return defaultVal
}
