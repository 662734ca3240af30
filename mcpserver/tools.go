package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"updatesbot/models"
)

const maxMessageFetch = 100

// resolveChannel resolves a channel argument to a descriptor. A non-nil
// result means the caller should return it as-is (missing argument, lookup
// failure, or unknown channel).
func (s *Server) resolveChannel(ctx context.Context, req mcp.CallToolRequest) (models.ChannelDescriptor, *mcp.CallToolResult) {
	identifier, ok := stringArg(req, "channel")
	if !ok || identifier == "" {
		return models.ChannelDescriptor{}, resultErr(errors.New("channel is required"))
	}
	resolved, err := s.channelsService.ResolveChannel(ctx, identifier)
	if err != nil {
		return models.ChannelDescriptor{}, resultErr(fmt.Errorf("resolve channel %q: %w", identifier, err))
	}
	channel, ok := resolved.Get()
	if !ok {
		return models.ChannelDescriptor{}, resultText(fmt.Sprintf(
			"Channel '%s' not found. Use get_channel_list to see available channels.", identifier))
	}
	return channel, nil
}

func (s *Server) toolGetChannelList() server.ServerTool {
	tool := mcp.NewTool("get_channel_list",
		mcp.WithDescription("Get a list of all available Discord channels that can be monitored. Returns channels with their categories and types."),
	)
	return server.ServerTool{Tool: tool, Handler: s.handleGetChannelList}
}

func (s *Server) handleGetChannelList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	channels, err := s.channelsService.ListChannels(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("get_channel_list: %w", err)), nil
	}
	return resultJSON(map[string]any{
		"count":    len(channels),
		"channels": channels,
	})
}

func (s *Server) toolGetRecentMessages() server.ServerTool {
	tool := mcp.NewTool("get_recent_messages",
		mcp.WithDescription("Get recent messages from a Discord channel. Useful for checking latest updates and discussions. Channel can be specified by name, ID, or 'category/name' format."),
		mcp.WithString("channel",
			mcp.Description("Channel identifier: name (e.g., 'chat'), ID, or 'category/name' (e.g., 'Community/chat')"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of messages to retrieve (1-100, default: 10)"),
		),
	)
	return server.ServerTool{Tool: tool, Handler: s.handleGetRecentMessages}
}

func (s *Server) handleGetRecentMessages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	channel, errResult := s.resolveChannel(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	limit := intArg(req, "limit", 10)

	raw, err := s.discordClient.FetchMessages(channel.ID, min(limit, maxMessageFetch), "", "")
	if err != nil {
		return resultErr(fmt.Errorf("get_recent_messages: %w", err)), nil
	}
	messages := make([]models.FormattedMessage, 0, len(raw))
	for _, msg := range raw {
		messages = append(messages, models.FormatMessage(msg))
	}

	return resultJSON(map[string]any{
		"channel":  channel.Name,
		"fullName": channel.FullName,
		"category": channel.Category,
		"type":     channel.Type,
		"count":    len(messages),
		"messages": messages,
	})
}

func (s *Server) toolSearchMessages() server.ServerTool {
	tool := mcp.NewTool("search_messages",
		mcp.WithDescription("Search for messages in a channel containing specific keywords. Useful for finding discussions about specific topics."),
		mcp.WithString("channel",
			mcp.Description("Channel identifier: name, ID, or 'category/name'"),
			mcp.Required(),
		),
		mcp.WithString("query",
			mcp.Description("Search query (keywords to find in message content)"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of messages to search through (default: 50)"),
		),
	)
	return server.ServerTool{Tool: tool, Handler: s.handleSearchMessages}
}

func (s *Server) handleSearchMessages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, ok := stringArg(req, "query")
	if !ok || query == "" {
		return resultErr(errors.New("query is required")), nil
	}
	channel, errResult := s.resolveChannel(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	limit := intArg(req, "limit", 50)

	raw, err := s.discordClient.FetchMessages(channel.ID, min(limit, maxMessageFetch), "", "")
	if err != nil {
		return resultErr(fmt.Errorf("search_messages: %w", err)), nil
	}
	lowerQuery := strings.ToLower(query)
	matching := []models.FormattedMessage{}
	for _, msg := range raw {
		if msg.MatchesQuery(lowerQuery) {
			matching = append(matching, models.FormatMessage(msg))
		}
	}

	return resultJSON(map[string]any{
		"channel":  channel.Name,
		"fullName": channel.FullName,
		"category": channel.Category,
		"query":    query,
		"count":    len(matching),
		"messages": matching,
	})
}

func (s *Server) toolGetMessagesWithReactions() server.ServerTool {
	tool := mcp.NewTool("get_messages_with_reactions",
		mcp.WithDescription("Get messages with significant reactions (5+ reactions). Useful for finding important or trending discussions."),
		mcp.WithString("channel",
			mcp.Description("Channel identifier: name, ID, or 'category/name'"),
			mcp.Required(),
		),
		mcp.WithNumber("min_reactions",
			mcp.Description("Minimum number of reactions (default: 5)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of messages to check (default: 50)"),
		),
	)
	return server.ServerTool{Tool: tool, Handler: s.handleGetMessagesWithReactions}
}

func (s *Server) handleGetMessagesWithReactions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	channel, errResult := s.resolveChannel(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	minReactions := intArg(req, "min_reactions", 5)
	limit := intArg(req, "limit", 50)

	raw, err := s.discordClient.FetchMessages(channel.ID, min(limit, maxMessageFetch), "", "")
	if err != nil {
		return resultErr(fmt.Errorf("get_messages_with_reactions: %w", err)), nil
	}
	matching := []models.FormattedMessage{}
	for _, msg := range raw {
		if msg.TotalReactions() >= minReactions {
			matching = append(matching, models.FormatMessage(msg))
		}
	}

	return resultJSON(map[string]any{
		"channel":       channel.Name,
		"fullName":      channel.FullName,
		"category":      channel.Category,
		"min_reactions": minReactions,
		"count":         len(matching),
		"messages":      matching,
	})
}

func (s *Server) toolGetForumPosts() server.ServerTool {
	tool := mcp.NewTool("get_forum_posts",
		mcp.WithDescription("Get posts from a Discord forum channel, most recently active first. Returns thread summaries with tags, reactions, and reply counts."),
		mcp.WithString("channel",
			mcp.Description("Forum channel identifier: name, ID, or 'category/name'"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of posts to retrieve (default: 20)"),
		),
	)
	return server.ServerTool{Tool: tool, Handler: s.handleGetForumPosts}
}

func (s *Server) handleGetForumPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	channel, errResult := s.resolveChannel(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	if channel.Type != models.ChannelTypeForum {
		return resultErr(fmt.Errorf("channel '%s' is not a forum channel", channel.Name)), nil
	}
	limit := intArg(req, "limit", 20)

	posts, err := s.forumService.ListPosts(ctx, channel.ID, limit)
	if err != nil {
		return resultErr(fmt.Errorf("get_forum_posts: %w", err)), nil
	}

	return resultJSON(map[string]any{
		"channel": channel.Name,
		"count":   len(posts),
		"posts":   posts,
	})
}

func (s *Server) toolDeleteMessage() server.ServerTool {
	tool := mcp.NewTool("delete_message",
		mcp.WithDescription("Delete a single message from a Discord channel. Use with care, deleted messages cannot be restored."),
		mcp.WithString("channel",
			mcp.Description("Channel identifier: name, ID, or 'category/name'"),
			mcp.Required(),
		),
		mcp.WithString("message_id",
			mcp.Description("ID of the message to delete"),
			mcp.Required(),
		),
	)
	return server.ServerTool{Tool: tool, Handler: s.handleDeleteMessage}
}

func (s *Server) handleDeleteMessage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	messageID, ok := stringArg(req, "message_id")
	if !ok || messageID == "" {
		return resultErr(errors.New("message_id is required")), nil
	}
	channel, errResult := s.resolveChannel(ctx, req)
	if errResult != nil {
		return errResult, nil
	}

	if err := s.discordClient.DeleteMessage(channel.ID, messageID); err != nil {
		return resultErr(fmt.Errorf("delete_message: %w", err)), nil
	}
	log.Printf("✅ Deleted message %s in channel %s", messageID, channel.Name)

	return resultJSON(map[string]any{
		"success":   true,
		"channel":   channel.Name,
		"messageId": messageID,
	})
}
