package models

import "strings"

// BotUser identifies the authenticated bot account.
type BotUser struct {
	ID       string
	Username string
}

// Attachment is a file attached to a message.
type Attachment struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Name        string `json:"name"`
	Size        int    `json:"size"`
}

// IsImage reports whether the attachment content type is an image.
func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.ContentType, "image")
}

// EmbedField is a single name/value pair inside an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// EmbedAuthor is the author block of an embed.
type EmbedAuthor struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"iconURL,omitempty"`
}

// EmbedFooter is the footer block of an embed.
type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"iconURL,omitempty"`
}

// EmbedMedia is an embed thumbnail or image reference.
type EmbedMedia struct {
	URL string `json:"url"`
}

// Embed is the message embed data the API republishes.
type Embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	URL         string       `json:"url"`
	Color       int          `json:"color,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Thumbnail   *EmbedMedia  `json:"thumbnail,omitempty"`
	Image       *EmbedMedia  `json:"image,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// Reaction aggregates one emoji's reaction count on a message.
type Reaction struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// RawMessage is the bot's read-only view of a gateway message. The gateway
// owns the underlying data; the core only reads it, never mutates it.
type RawMessage struct {
	ID               string
	ChannelID        string
	GuildID          string
	AuthorID         string
	AuthorName       string
	AuthorAvatarURL  string
	IsBot            bool
	Content          string
	CleanContent     string
	CreatedAt        int64 // unix millis
	Attachments      []Attachment
	Embeds           []Embed
	Reactions        []Reaction
	MentionedRoleIDs []string
}

// ImageURLs returns the URLs of all image attachments.
func (m *RawMessage) ImageURLs() []string {
	images := []string{}
	for _, att := range m.Attachments {
		if att.IsImage() {
			images = append(images, att.URL)
		}
	}
	return images
}

// TotalReactions returns the sum of all reaction counts on the message.
func (m *RawMessage) TotalReactions() int {
	total := 0
	for _, r := range m.Reactions {
		total += r.Count
	}
	return total
}

// Update is the simplified projection served by the updates API.
type Update struct {
	Text      string   `json:"text"`
	Images    []string `json:"images"`
	Timestamp int64    `json:"timestamp"`
}

// ToUpdate projects a raw message into the updates API shape.
func (m *RawMessage) ToUpdate() Update {
	return Update{
		Text:      m.CleanContent,
		Images:    m.ImageURLs(),
		Timestamp: m.CreatedAt,
	}
}

// InfoMessage is the rich projection served by the info API: the update shape
// plus full attachment metadata and embeds.
type InfoMessage struct {
	Text        string       `json:"text"`
	Images      []string     `json:"images"`
	Timestamp   int64        `json:"timestamp"`
	Attachments []Attachment `json:"attachments"`
	Embeds      []Embed      `json:"embeds"`
}

// ToInfoMessage projects a raw message into the info API shape.
func (m *RawMessage) ToInfoMessage() InfoMessage {
	attachments := m.Attachments
	if attachments == nil {
		attachments = []Attachment{}
	}
	embeds := m.Embeds
	if embeds == nil {
		embeds = []Embed{}
	}
	return InfoMessage{
		Text:        m.CleanContent,
		Images:      m.ImageURLs(),
		Timestamp:   m.CreatedAt,
		Attachments: attachments,
		Embeds:      embeds,
	}
}

// MessageAuthor is the author block of a formatted message.
type MessageAuthor struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Bot         bool   `json:"bot"`
}

// FormattedMessage is the projection served by the MCP API and MCP tools.
type FormattedMessage struct {
	ID          string        `json:"id"`
	Author      MessageAuthor `json:"author"`
	Content     string        `json:"content"`
	Timestamp   int64         `json:"timestamp"`
	Attachments []Attachment  `json:"attachments"`
	Embeds      []Embed       `json:"embeds,omitempty"`
	Reactions   []Reaction    `json:"reactions"`
}

// FormatMessage projects a raw message into the MCP API shape.
func FormatMessage(m *RawMessage) FormattedMessage {
	attachments := m.Attachments
	if attachments == nil {
		attachments = []Attachment{}
	}
	reactions := m.Reactions
	if reactions == nil {
		reactions = []Reaction{}
	}
	return FormattedMessage{
		ID: m.ID,
		Author: MessageAuthor{
			ID:          m.AuthorID,
			Username:    m.AuthorName,
			DisplayName: m.AuthorName,
			Bot:         m.IsBot,
		},
		Content:     m.CleanContent,
		Timestamp:   m.CreatedAt,
		Attachments: attachments,
		Embeds:      m.Embeds,
		Reactions:   reactions,
	}
}

// MatchesQuery reports whether the message's clean content or any embed
// title/description/field contains the already-lowercased query.
func (m *RawMessage) MatchesQuery(lowerQuery string) bool {
	if strings.Contains(strings.ToLower(m.CleanContent), lowerQuery) {
		return true
	}
	for _, embed := range m.Embeds {
		if strings.Contains(strings.ToLower(embed.Title), lowerQuery) ||
			strings.Contains(strings.ToLower(embed.Description), lowerQuery) {
			return true
		}
		for _, field := range embed.Fields {
			if strings.Contains(strings.ToLower(field.Name), lowerQuery) ||
				strings.Contains(strings.ToLower(field.Value), lowerQuery) {
				return true
			}
		}
	}
	return false
}
