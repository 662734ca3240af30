package models

// ChannelType is the closed set of channel capabilities the bot understands.
// It is resolved once at lookup time; capability-specific accessors on the
// Discord client return a typed failure when the type does not match.
type ChannelType string

const (
	ChannelTypeText         ChannelType = "text"
	ChannelTypeForum        ChannelType = "forum"
	ChannelTypeAnnouncement ChannelType = "announcement"
	ChannelTypeThread       ChannelType = "thread"
	ChannelTypeVoice        ChannelType = "voice"
	ChannelTypeCategory     ChannelType = "category"
	ChannelTypeStage        ChannelType = "stage"
	ChannelTypeUnknown      ChannelType = "unknown"
)

// IsTextCapable reports whether messages can be fetched from this channel type.
func (t ChannelType) IsTextCapable() bool {
	switch t {
	case ChannelTypeText, ChannelTypeAnnouncement, ChannelTypeThread:
		return true
	default:
		return false
	}
}

// ChannelDescriptor describes a single channel with its category context.
// Derived on demand from the live channel list; never persisted.
type ChannelDescriptor struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Type       ChannelType `json:"type"`
	GuildID    string      `json:"-"`
	Category   *string     `json:"category"`
	CategoryID *string     `json:"categoryId"`
	// FullName is "category/name" when the channel has a parent category,
	// otherwise just the channel name.
	FullName string `json:"fullName"`
}

// InfoChannel is a named channel published through the info API.
type InfoChannel struct {
	Name      string
	ChannelID string
}

// ChannelLink is one entry of the info channel listing.
type ChannelLink struct {
	Name string `json:"name"`
	Link string `json:"link"`
}
