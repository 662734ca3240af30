package models

// SpamGuardMode selects whether spam detections are only reported or also
// acted on (message deletion + ban).
type SpamGuardMode string

const (
	SpamGuardModeLog SpamGuardMode = "log"
	SpamGuardModeAct SpamGuardMode = "act"
)

// InboundMessage is the slice of a gateway message event the spam guard needs.
type InboundMessage struct {
	MessageID     string
	ChannelID     string
	GuildID       string
	AuthorID      string
	AuthorTag     string
	IsBot         bool
	MemberRoleIDs []string
	ImageCount    int
}

// TrackedMessage is one recorded message event in a user's sliding window.
type TrackedMessage struct {
	ChannelID  string
	MessageID  string
	GuildID    string
	Timestamp  int64 // unix millis
	ImageCount int
}

// SpamReport describes a single triggered detection.
type SpamReport struct {
	ID           string
	UserID       string
	UserTag      string
	Rule         string
	Detail       string
	MessageLinks []string
	Mode         SpamGuardMode
}
