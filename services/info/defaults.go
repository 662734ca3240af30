package info

import "updatesbot/models"

// DefaultChannels is the production set of info channels.
func DefaultChannels() []models.InfoChannel {
	return []models.InfoChannel{
		{Name: "announcements", ChannelID: "815508847099117588"},
		{Name: "app-updates", ChannelID: "1166078913756270702"},
		{Name: "aeternum-map", ChannelID: "896014490808745994"},
		{Name: "aeternum-tracker", ChannelID: "1159116919249575978"},
		{Name: "diablo4-map", ChannelID: "1114136338036441201"},
		{Name: "palia-map", ChannelID: "1148606632494895145"},
		{Name: "palia-tracker", ChannelID: "1151592050995773520"},
		{Name: "diablo4-companion", ChannelID: "1124004157007867924"},
		{Name: "new-world-companion", ChannelID: "1105189246769311774"},
		{Name: "sons-of-the-forest-map", ChannelID: "1086576689745772554"},
		{Name: "arkesia-map", ChannelID: "944106743036796928"},
		{Name: "trophy-hunter", ChannelID: "543841073676681217"},
		{Name: "songs-of-conquest", ChannelID: "976935814900645939"},
		{Name: "hogwarts-legacy-map", ChannelID: "1064862000150237264"},
	}
}
