package forum

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/samber/mo"

	"updatesbot/clients"
	"updatesbot/models"
	"updatesbot/services"
)

// maxReplies caps how many thread messages a single post detail loads.
const maxReplies = 100

// ForumService aggregates forum threads with their starter messages and tag
// metadata into post listings.
type ForumService struct {
	discordClient clients.DiscordClient
}

// NewForumService creates a new forum service.
func NewForumService(discordClient clients.DiscordClient) *ForumService {
	return &ForumService{discordClient: discordClient}
}

var _ services.ForumService = (*ForumService)(nil)

func (s *ForumService) ListPosts(ctx context.Context, channelID string, limit int) ([]models.ThreadSummary, error) {
	log.Printf("📋 Starting to list forum posts for channel: %s", channelID)
	if _, err := s.discordClient.GetForumChannel(channelID); err != nil {
		return nil, err
	}
	availableTags, err := s.discordClient.GetForumTags(channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get forum tags for channel %s: %w", channelID, err)
	}
	threads, err := s.discordClient.FetchForumThreads(channelID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forum threads for channel %s: %w", channelID, err)
	}

	summaries := make([]models.ThreadSummary, 0, len(threads))
	for _, thread := range threads {
		starter := s.fetchStarter(thread.ID)
		summaries = append(summaries, models.ThreadSummary{
			ID:           thread.ID,
			Title:        thread.Title,
			Author:       starterAuthorName(starter),
			CreatedAt:    thread.CreatedAt,
			Tags:         resolveTags(thread.AppliedTagIDs, availableTags),
			Archived:     thread.Archived,
			Locked:       thread.Locked,
			MessageCount: thread.MessageCount,
			MemberCount:  thread.MemberCount,
			Content:      starterContent(starter, false),
		})
	}
	log.Printf("📋 Completed successfully - listed %d forum posts for channel: %s", len(summaries), channelID)
	return summaries, nil
}

func (s *ForumService) GetSinglePost(ctx context.Context, channelID, threadID string) (mo.Option[*models.PostDetail], error) {
	log.Printf("📋 Starting to get forum post: %s", threadID)
	maybeThread, err := s.discordClient.GetThread(threadID)
	if err != nil {
		return mo.None[*models.PostDetail](), fmt.Errorf("failed to get thread %s: %w", threadID, err)
	}
	thread, ok := maybeThread.Get()
	if !ok {
		return mo.None[*models.PostDetail](), nil
	}

	availableTags, err := s.discordClient.GetForumTags(channelID)
	if err != nil {
		log.Printf("⚠️ Failed to get forum tags for channel %s: %v", channelID, err)
		availableTags = nil
	}
	starter := s.fetchStarter(threadID)
	messages, err := s.discordClient.FetchThreadMessages(threadID, maxReplies)
	if err != nil {
		return mo.None[*models.PostDetail](), fmt.Errorf("failed to fetch messages for thread %s: %w", threadID, err)
	}

	replies := make([]models.PostReply, 0, len(messages))
	for _, msg := range messages {
		if msg.ID == threadID {
			continue
		}
		var avatar *string
		if msg.AuthorAvatarURL != "" {
			url := msg.AuthorAvatarURL
			avatar = &url
		}
		reactions := msg.Reactions
		if reactions == nil {
			reactions = []models.Reaction{}
		}
		replies = append(replies, models.PostReply{
			ID: msg.ID,
			Author: models.PostAuthor{
				Username: msg.AuthorName,
				Avatar:   avatar,
				Bot:      msg.IsBot,
			},
			Text:      msg.CleanContent,
			Timestamp: msg.CreatedAt,
			Images:    msg.ImageURLs(),
			Reactions: reactions,
		})
	}
	sort.SliceStable(replies, func(i, j int) bool {
		return replies[i].Timestamp < replies[j].Timestamp
	})

	detail := &models.PostDetail{
		ID:           thread.ID,
		Title:        thread.Title,
		Author:       starterAuthor(starter),
		CreatedAt:    thread.CreatedAt,
		LastActivity: thread.ActivityScore(),
		Tags:         resolveTags(thread.AppliedTagIDs, availableTags),
		Archived:     thread.Archived,
		Locked:       thread.Locked,
		MessageCount: thread.MessageCount,
		MemberCount:  thread.MemberCount,
		Content:      starterContent(starter, true),
		Replies:      replies,
	}
	log.Printf("📋 Completed successfully - got forum post %s with %d replies", threadID, len(replies))
	return mo.Some(detail), nil
}

// fetchStarter loads a thread's starter message best-effort. A missing or
// deleted starter degrades the post, never fails it.
func (s *ForumService) fetchStarter(threadID string) mo.Option[*models.RawMessage] {
	starter, err := s.discordClient.FetchStarterMessage(threadID)
	if err != nil {
		log.Printf("⚠️ Failed to fetch starter message for thread %s: %v", threadID, err)
		return mo.None[*models.RawMessage]()
	}
	return starter
}

func starterAuthorName(starter mo.Option[*models.RawMessage]) string {
	if msg, ok := starter.Get(); ok {
		return msg.AuthorName
	}
	return "Unknown"
}

func starterAuthor(starter mo.Option[*models.RawMessage]) models.PostAuthor {
	msg, ok := starter.Get()
	if !ok {
		return models.PostAuthor{Username: "Unknown"}
	}
	var avatar *string
	if msg.AuthorAvatarURL != "" {
		url := msg.AuthorAvatarURL
		avatar = &url
	}
	return models.PostAuthor{
		Username: msg.AuthorName,
		Avatar:   avatar,
		Bot:      msg.IsBot,
	}
}

func starterContent(starter mo.Option[*models.RawMessage], includeReactions bool) models.PostContent {
	content := models.PostContent{Text: "", Images: []string{}}
	msg, ok := starter.Get()
	if !ok {
		return content
	}
	content.Text = msg.CleanContent
	content.Images = msg.ImageURLs()
	if includeReactions {
		reactions := msg.Reactions
		if reactions == nil {
			reactions = []models.Reaction{}
		}
		content.Reactions = reactions
	}
	return content
}

// resolveTags maps applied tag IDs to tag metadata, silently dropping IDs the
// forum no longer declares.
func resolveTags(appliedTagIDs []string, availableTags []models.ForumTag) []models.ForumTag {
	byID := make(map[string]models.ForumTag, len(availableTags))
	for _, tag := range availableTags {
		byID[tag.ID] = tag
	}
	resolved := []models.ForumTag{}
	for _, id := range appliedTagIDs {
		if tag, ok := byID[id]; ok {
			resolved = append(resolved, tag)
		}
	}
	return resolved
}
