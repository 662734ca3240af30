package models

// GameConfig maps a game/app name to its dedicated updates channel and the
// role IDs / title keywords used to classify posts in the central channel.
// The configured set is static, loaded at startup and immutable afterwards.
type GameConfig struct {
	// Name is the game/channel name used in the API route.
	Name string
	// ChannelID is the dedicated updates channel. Empty means the game is
	// announced in the central channel only.
	ChannelID string
	// RoleIDs are the roles pinged for this game in the central channel.
	RoleIDs []string
	// TitleKeywords are lower-cased alternative names matched against the
	// first line of central-channel messages.
	TitleKeywords []string
}

// GameLink is one entry of the updates channel listing.
type GameLink struct {
	Name string `json:"name"`
	Link string `json:"link"`
}
