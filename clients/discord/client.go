package discord

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"updatesbot/clients"
	"updatesbot/core"
	"updatesbot/models"
)

// threadAPI is the slice of the Discord session used for thread listing.
type threadAPI interface {
	ThreadsActive(channelID string, options ...discordgo.RequestOption) (*discordgo.ThreadsList, error)
	ThreadsArchived(channelID string, before *time.Time, limit int, options ...discordgo.RequestOption) (*discordgo.ThreadsList, error)
}

// DiscordClient implements the clients.DiscordClient interface on top of a
// connected discordgo session.
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient creates a new Discord client wrapping the given session
func NewDiscordClient(session *discordgo.Session) clients.DiscordClient {
	return &DiscordClient{session: session}
}

func (c *DiscordClient) GetBotUser() (*models.BotUser, error) {
	if c.session.State != nil && c.session.State.User != nil {
		return &models.BotUser{
			ID:       c.session.State.User.ID,
			Username: c.session.State.User.Username,
		}, nil
	}
	user, err := c.session.User("@me")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bot user: %w", err)
	}
	return &models.BotUser{ID: user.ID, Username: user.Username}, nil
}

// getChannel resolves a channel from gateway state first, falling back to the
// REST API for channels the state has not seen (archived threads mostly).
func (c *DiscordClient) getChannel(channelID string) (*discordgo.Channel, error) {
	if channel, err := c.session.State.Channel(channelID); err == nil && channel != nil {
		return channel, nil
	}
	channel, err := c.session.Channel(channelID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("channel %s: %w", channelID, core.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch channel %s: %w", channelID, err)
	}
	return channel, nil
}

func (c *DiscordClient) GetAllChannels() ([]models.ChannelDescriptor, error) {
	descriptors := []models.ChannelDescriptor{}
	for _, guild := range c.session.State.Guilds {
		// Parent names cover both category parents of channels and channel
		// parents of threads.
		parentNames := map[string]string{}
		for _, channel := range guild.Channels {
			parentNames[channel.ID] = channel.Name
		}
		for _, channel := range guild.Channels {
			switch channel.Type {
			case discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildCategory, discordgo.ChannelTypeGuildStageVoice:
				continue
			}
			descriptors = append(descriptors, describeChannel(channel, parentNames))
		}
		for _, thread := range guild.Threads {
			descriptors = append(descriptors, describeChannel(thread, parentNames))
		}
	}
	// Channels without a category sort last
	sort.SliceStable(descriptors, func(i, j int) bool {
		a, b := descriptors[i], descriptors[j]
		switch {
		case a.Category == nil && b.Category != nil:
			return false
		case a.Category != nil && b.Category == nil:
			return true
		case a.Category != nil && b.Category != nil && *a.Category != *b.Category:
			return *a.Category < *b.Category
		default:
			return a.Name < b.Name
		}
	})
	return descriptors, nil
}

func (c *DiscordClient) GetTextChannel(channelID string) (*models.ChannelDescriptor, error) {
	channel, err := c.getChannel(channelID)
	if err != nil {
		return nil, err
	}
	descriptor := c.describeWithCategory(channel)
	if !descriptor.Type.IsTextCapable() {
		return nil, fmt.Errorf("channel %s has type %s: %w", channelID, descriptor.Type, core.ErrWrongType)
	}
	return &descriptor, nil
}

func (c *DiscordClient) GetForumChannel(channelID string) (*models.ChannelDescriptor, error) {
	channel, err := c.getChannel(channelID)
	if err != nil {
		return nil, err
	}
	descriptor := c.describeWithCategory(channel)
	if descriptor.Type != models.ChannelTypeForum {
		return nil, fmt.Errorf("channel %s has type %s: %w", channelID, descriptor.Type, core.ErrWrongType)
	}
	return &descriptor, nil
}

func (c *DiscordClient) FetchMessages(channelID string, limit int, beforeID, afterID string) ([]*models.RawMessage, error) {
	messages, err := c.session.ChannelMessages(channelID, limit, beforeID, afterID, "")
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("channel %s: %w", channelID, core.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch messages from channel %s: %w", channelID, err)
	}
	result := make([]*models.RawMessage, 0, len(messages))
	for _, msg := range messages {
		result = append(result, toRawMessage(msg))
	}
	return result, nil
}

func (c *DiscordClient) FetchForumThreads(channelID string, limit int) ([]*models.ForumThread, error) {
	return fetchForumThreads(c.session, channelID, limit)
}

// fetchForumThreads lists all active threads first. When those alone satisfy
// the limit the archive is never touched. Otherwise archived threads are paged
// in batches of at most 100, the cursor after each batch being the archive
// timestamp of the batch's oldest-archived thread. The combined list is sorted
// by activity score descending and truncated to limit when one is given.
func fetchForumThreads(api threadAPI, channelID string, limit int) ([]*models.ForumThread, error) {
	active, err := api.ThreadsActive(channelID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("channel %s: %w", channelID, core.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch active threads for channel %s: %w", channelID, err)
	}
	threads := make([]*models.ForumThread, 0, len(active.Threads))
	for _, thread := range active.Threads {
		threads = append(threads, toForumThread(thread))
	}

	if limit > 0 && len(threads) >= limit {
		sortByActivity(threads)
		return threads[:limit], nil
	}

	remaining := -1
	if limit > 0 {
		remaining = limit - len(threads)
	}
	collected := 0
	var before *time.Time
	for {
		batchSize := 100
		if remaining >= 0 {
			if remaining-collected < 1 {
				break
			}
			batchSize = min(100, remaining-collected)
		}
		archived, err := api.ThreadsArchived(channelID, before, batchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch archived threads for channel %s: %w", channelID, err)
		}
		if len(archived.Threads) == 0 {
			break
		}
		var oldest *discordgo.Channel
		for _, thread := range archived.Threads {
			threads = append(threads, toForumThread(thread))
			if oldest == nil || archiveTime(thread).Before(archiveTime(oldest)) {
				oldest = thread
			}
		}
		collected += len(archived.Threads)
		if !archived.HasMore {
			break
		}
		oldestArchive := archiveTime(oldest)
		before = &oldestArchive
	}

	sortByActivity(threads)
	if limit > 0 && len(threads) > limit {
		threads = threads[:limit]
	}
	return threads, nil
}

func sortByActivity(threads []*models.ForumThread) {
	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].ActivityScore() > threads[j].ActivityScore()
	})
}

func archiveTime(thread *discordgo.Channel) time.Time {
	if thread.ThreadMetadata != nil {
		return thread.ThreadMetadata.ArchiveTimestamp
	}
	return time.Time{}
}

func (c *DiscordClient) GetForumTags(channelID string) ([]models.ForumTag, error) {
	channel, err := c.getChannel(channelID)
	if err != nil {
		return nil, err
	}
	if mapChannelType(channel.Type) != models.ChannelTypeForum {
		return nil, fmt.Errorf("channel %s has type %s: %w", channelID, mapChannelType(channel.Type), core.ErrWrongType)
	}
	tags := make([]models.ForumTag, 0, len(channel.AvailableTags))
	for _, tag := range channel.AvailableTags {
		var emoji *string
		if tag.EmojiName != "" {
			name := tag.EmojiName
			emoji = &name
		}
		tags = append(tags, models.ForumTag{
			ID:        tag.ID,
			Name:      tag.Name,
			Emoji:     emoji,
			Moderated: tag.Moderated,
		})
	}
	return tags, nil
}

func (c *DiscordClient) GetThread(threadID string) (mo.Option[*models.ForumThread], error) {
	channel, err := c.session.Channel(threadID)
	if err != nil {
		if isNotFound(err) {
			return mo.None[*models.ForumThread](), nil
		}
		return mo.None[*models.ForumThread](), fmt.Errorf("failed to fetch thread %s: %w", threadID, err)
	}
	if !isThreadType(channel.Type) {
		return mo.None[*models.ForumThread](), nil
	}
	return mo.Some(toForumThread(channel)), nil
}

func (c *DiscordClient) FetchStarterMessage(threadID string) (mo.Option[*models.RawMessage], error) {
	// The starter message of a forum thread shares the thread's ID.
	msg, err := c.session.ChannelMessage(threadID, threadID)
	if err != nil {
		if isNotFound(err) {
			return mo.None[*models.RawMessage](), nil
		}
		return mo.None[*models.RawMessage](), fmt.Errorf("failed to fetch starter message for thread %s: %w", threadID, err)
	}
	return mo.Some(toRawMessage(msg)), nil
}

func (c *DiscordClient) FetchThreadMessages(threadID string, limit int) ([]*models.RawMessage, error) {
	return c.FetchMessages(threadID, limit, "", "")
}

func (c *DiscordClient) DeleteMessage(channelID, messageID string) error {
	if err := c.session.ChannelMessageDelete(channelID, messageID); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("message %s in channel %s: %w", messageID, channelID, core.ErrNotFound)
		}
		return fmt.Errorf("failed to delete message %s in channel %s: %w", messageID, channelID, err)
	}
	return nil
}

func (c *DiscordClient) BanUser(guildID, userID, reason string) error {
	if err := c.session.GuildBanCreateWithReason(guildID, userID, reason, 1); err != nil {
		return fmt.Errorf("failed to ban user %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

func (c *DiscordClient) SendSpamReport(channelID string, report *models.SpamReport) error {
	links := report.MessageLinks
	if len(links) > 10 {
		links = links[:10]
	}
	linksValue := strings.Join(links, "\n")
	if linksValue == "" {
		linksValue = "none recorded"
	}
	embed := &discordgo.MessageEmbed{
		Title:     "Spam detection",
		Color:     0xED4245,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("%s (<@%s>)", report.UserTag, report.UserID)},
			{Name: "Rule", Value: report.Rule, Inline: true},
			{Name: "Mode", Value: string(report.Mode), Inline: true},
			{Name: "Detail", Value: report.Detail},
			{Name: "Messages", Value: linksValue},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: report.ID},
	}
	if _, err := c.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		return fmt.Errorf("failed to send spam report to channel %s: %w", channelID, err)
	}
	return nil
}

func (c *DiscordClient) SetChannelName(channelID, name string) error {
	if _, err := c.session.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: name}); err != nil {
		return fmt.Errorf("failed to rename channel %s: %w", channelID, err)
	}
	return nil
}

// InboundFromEvent converts a gateway message create event into the slice of
// data the spam guard consumes.
func InboundFromEvent(m *discordgo.MessageCreate) *models.InboundMessage {
	imageCount := 0
	for _, att := range m.Attachments {
		if strings.HasPrefix(att.ContentType, "image") {
			imageCount++
		}
	}
	authorTag := ""
	isBot := false
	authorID := ""
	if m.Author != nil {
		authorID = m.Author.ID
		authorTag = m.Author.Username
		isBot = m.Author.Bot
	}
	var roleIDs []string
	if m.Member != nil {
		roleIDs = m.Member.Roles
	}
	return &models.InboundMessage{
		MessageID:     m.ID,
		ChannelID:     m.ChannelID,
		GuildID:       m.GuildID,
		AuthorID:      authorID,
		AuthorTag:     authorTag,
		IsBot:         isBot,
		MemberRoleIDs: roleIDs,
		ImageCount:    imageCount,
	}
}

func (c *DiscordClient) describeWithCategory(channel *discordgo.Channel) models.ChannelDescriptor {
	categories := map[string]string{}
	if channel.ParentID != "" {
		if parent, err := c.getChannel(channel.ParentID); err == nil {
			categories[parent.ID] = parent.Name
		}
	}
	return describeChannel(channel, categories)
}

func describeChannel(channel *discordgo.Channel, parentNames map[string]string) models.ChannelDescriptor {
	descriptor := models.ChannelDescriptor{
		ID:       channel.ID,
		Name:     channel.Name,
		Type:     mapChannelType(channel.Type),
		GuildID:  channel.GuildID,
		FullName: channel.Name,
	}
	if channel.ParentID != "" {
		parentID := channel.ParentID
		descriptor.CategoryID = &parentID
		if name, ok := parentNames[channel.ParentID]; ok {
			category := name
			descriptor.Category = &category
			descriptor.FullName = name + "/" + channel.Name
		}
	}
	return descriptor
}

func mapChannelType(t discordgo.ChannelType) models.ChannelType {
	switch t {
	case discordgo.ChannelTypeGuildText:
		return models.ChannelTypeText
	case discordgo.ChannelTypeGuildForum:
		return models.ChannelTypeForum
	case discordgo.ChannelTypeGuildNews:
		return models.ChannelTypeAnnouncement
	case discordgo.ChannelTypeGuildNewsThread, discordgo.ChannelTypeGuildPublicThread, discordgo.ChannelTypeGuildPrivateThread:
		return models.ChannelTypeThread
	case discordgo.ChannelTypeGuildVoice:
		return models.ChannelTypeVoice
	case discordgo.ChannelTypeGuildCategory:
		return models.ChannelTypeCategory
	case discordgo.ChannelTypeGuildStageVoice:
		return models.ChannelTypeStage
	default:
		return models.ChannelTypeUnknown
	}
}

func isThreadType(t discordgo.ChannelType) bool {
	switch t {
	case discordgo.ChannelTypeGuildNewsThread, discordgo.ChannelTypeGuildPublicThread, discordgo.ChannelTypeGuildPrivateThread:
		return true
	default:
		return false
	}
}

func toRawMessage(msg *discordgo.Message) *models.RawMessage {
	attachments := make([]models.Attachment, 0, len(msg.Attachments))
	for _, att := range msg.Attachments {
		attachments = append(attachments, models.Attachment{
			URL:         att.URL,
			ContentType: att.ContentType,
			Name:        att.Filename,
			Size:        att.Size,
		})
	}
	embeds := make([]models.Embed, 0, len(msg.Embeds))
	for _, embed := range msg.Embeds {
		fields := make([]models.EmbedField, 0, len(embed.Fields))
		for _, field := range embed.Fields {
			fields = append(fields, models.EmbedField{Name: field.Name, Value: field.Value, Inline: field.Inline})
		}
		var author *models.EmbedAuthor
		if embed.Author != nil {
			author = &models.EmbedAuthor{
				Name:    embed.Author.Name,
				URL:     embed.Author.URL,
				IconURL: embed.Author.IconURL,
			}
		}
		var footer *models.EmbedFooter
		if embed.Footer != nil {
			footer = &models.EmbedFooter{Text: embed.Footer.Text, IconURL: embed.Footer.IconURL}
		}
		var thumbnail *models.EmbedMedia
		if embed.Thumbnail != nil {
			thumbnail = &models.EmbedMedia{URL: embed.Thumbnail.URL}
		}
		var image *models.EmbedMedia
		if embed.Image != nil {
			image = &models.EmbedMedia{URL: embed.Image.URL}
		}
		embeds = append(embeds, models.Embed{
			Title:       embed.Title,
			Description: embed.Description,
			URL:         embed.URL,
			Color:       embed.Color,
			Timestamp:   embed.Timestamp,
			Author:      author,
			Footer:      footer,
			Thumbnail:   thumbnail,
			Image:       image,
			Fields:      fields,
		})
	}
	reactions := make([]models.Reaction, 0, len(msg.Reactions))
	for _, reaction := range msg.Reactions {
		if reaction.Emoji == nil {
			continue
		}
		reactions = append(reactions, models.Reaction{
			Emoji: reaction.Emoji.Name,
			Count: reaction.Count,
		})
	}
	authorID, authorName, avatarURL := "", "", ""
	isBot := false
	if msg.Author != nil {
		authorID = msg.Author.ID
		authorName = msg.Author.Username
		avatarURL = msg.Author.AvatarURL("")
		isBot = msg.Author.Bot
	}
	return &models.RawMessage{
		ID:               msg.ID,
		ChannelID:        msg.ChannelID,
		GuildID:          msg.GuildID,
		AuthorID:         authorID,
		AuthorName:       authorName,
		AuthorAvatarURL:  avatarURL,
		IsBot:            isBot,
		Content:          msg.Content,
		CleanContent:     msg.ContentWithMentionsReplaced(),
		CreatedAt:        msg.Timestamp.UnixMilli(),
		Attachments:      attachments,
		Embeds:           embeds,
		Reactions:        reactions,
		MentionedRoleIDs: msg.MentionRoles,
	}
}

func toForumThread(channel *discordgo.Channel) *models.ForumThread {
	thread := &models.ForumThread{
		ID:            channel.ID,
		Title:         channel.Name,
		MessageCount:  channel.MessageCount,
		MemberCount:   channel.MemberCount,
		AppliedTagIDs: channel.AppliedTags,
	}
	if created, err := discordgo.SnowflakeTimestamp(channel.ID); err == nil {
		thread.CreatedAt = created.UnixMilli()
	}
	if channel.LastMessageID != "" {
		if ts, err := discordgo.SnowflakeTimestamp(channel.LastMessageID); err == nil {
			millis := ts.UnixMilli()
			thread.LastMessageTimestamp = &millis
		}
	}
	if channel.LastPinTimestamp != nil {
		millis := channel.LastPinTimestamp.UnixMilli()
		thread.LastPinTimestamp = &millis
	}
	if channel.ThreadMetadata != nil {
		thread.Archived = channel.ThreadMetadata.Archived
		thread.Locked = channel.ThreadMetadata.Locked
		if !channel.ThreadMetadata.ArchiveTimestamp.IsZero() {
			millis := channel.ThreadMetadata.ArchiveTimestamp.UnixMilli()
			thread.ArchiveTimestamp = &millis
		}
	}
	return thread
}

func isNotFound(err error) bool {
	if restErr, ok := err.(*discordgo.RESTError); ok {
		return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
