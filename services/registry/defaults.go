package registry

import "updatesbot/models"

// DefaultGames is the production game registry. Keywords are stored
// lower-case so title matching never needs to normalize them again.
func DefaultGames() []models.GameConfig {
	return []models.GameConfig{
		{
			Name:          "announcements",
			ChannelID:     "815508847099117588",
			TitleKeywords: []string{"announcement"},
		},
		{
			Name:          "aeternum-map",
			ChannelID:     "896014490808745994",
			RoleIDs:       []string{"1105201503582568508"},
			TitleKeywords: []string{"aeternum map", "new world map"},
		},
		{
			Name:          "aeternum-tracker",
			ChannelID:     "1159116919249575978",
			TitleKeywords: []string{"aeternum tracker"},
		},
		{
			Name:          "diablo4",
			ChannelID:     "1114136338036441201",
			TitleKeywords: []string{"diablo 4", "diablo iv"},
		},
		{
			Name:          "palia",
			ChannelID:     "1148606632494895145",
			TitleKeywords: []string{"palia"},
		},
		{
			Name:          "palia-tracker",
			ChannelID:     "1151592050995773520",
			TitleKeywords: []string{"palia tracker"},
		},
		{
			Name:          "diablo4-companion",
			ChannelID:     "1124004157007867924",
			TitleKeywords: []string{"diablo 4 companion", "diablo iv companion"},
		},
		{
			Name:          "new-world-companion",
			ChannelID:     "1105189246769311774",
			RoleIDs:       []string{"1105201503582568508"},
			TitleKeywords: []string{"new world companion"},
		},
		{
			Name:          "sons-of-the-forest-map",
			ChannelID:     "1086576689745772554",
			TitleKeywords: []string{"sons of the forest"},
		},
		{
			Name:          "arkesia-map",
			ChannelID:     "944106743036796928",
			TitleKeywords: []string{"arkesia", "lost ark"},
		},
		{
			Name:          "trophy-hunter",
			ChannelID:     "543841073676681217",
			TitleKeywords: []string{"trophy hunter"},
		},
		{
			Name:          "songs-of-conquest",
			ChannelID:     "976935814900645939",
			TitleKeywords: []string{"songs of conquest"},
		},
		{
			Name:          "hogwarts-legacy-map",
			ChannelID:     "1064862000150237264",
			TitleKeywords: []string{"hogwarts legacy"},
		},
		{
			Name:          "skeleton",
			ChannelID:     "918959476734824468",
			TitleKeywords: []string{"skeleton"},
		},
		{
			Name:          "palworld",
			ChannelID:     "1198571864755277895",
			TitleKeywords: []string{"palworld"},
		},
		{
			Name:          "once-human",
			ChannelID:     "1196793877458321458",
			TitleKeywords: []string{"once human"},
		},
		{
			Name:          "night-crows",
			ChannelID:     "1217421560386818088",
			TitleKeywords: []string{"night crows"},
		},
		{
			Name:          "seekers-of-skyveil",
			ChannelID:     "1225105797038473226",
			TitleKeywords: []string{"seekers of skyveil"},
		},
		{
			Name:          "pax-dei",
			ChannelID:     "1234393071299596309",
			TitleKeywords: []string{"pax dei"},
		},
		{
			Name:          "wuthering-waves",
			ChannelID:     "1247540622835974257",
			RoleIDs:       []string{"1247541675430248588"},
			TitleKeywords: []string{"wuthering waves"},
		},
		{
			Name:          "satisfactory",
			ChannelID:     "1302557334446407700",
			TitleKeywords: []string{"satisfactory"},
		},
		{
			Name:          "infinity-nikki",
			ChannelID:     "1313829928856322048",
			RoleIDs:       []string{"1313828748113739827"},
			TitleKeywords: []string{"infinity nikki"},
		},
		{
			Name:          "avowed",
			ChannelID:     "1339985812430917706",
			TitleKeywords: []string{"avowed"},
		},
		{
			Name:          "dune-awakening",
			ChannelID:     "1376831284411629629",
			RoleIDs:       []string{"1376831895501017099"},
			TitleKeywords: []string{"dune: awakening", "dune awakening"},
		},
		{
			Name:          "chrono-odyssey",
			ChannelID:     "1386716236976492694",
			TitleKeywords: []string{"chrono odyssey"},
		},
		{
			Name:          "soulframe",
			ChannelID:     "1400750444720029726",
			RoleIDs:       []string{"1400750833381019698"},
			TitleKeywords: []string{"soulframe"},
		},
		{
			Name:          "grounded2",
			ChannelID:     "1400751543573282876",
			TitleKeywords: []string{"grounded 2", "grounded ii"},
		},
		{
			Name:          "blue-protocol-star-resonance",
			ChannelID:     "1425525855509151824",
			RoleIDs:       []string{"1425524646723321890"},
			TitleKeywords: []string{"blue protocol: star resonance", "blue protocol star resonance"},
		},
		{
			// No dedicated channel, announced centrally only.
			Name:          "duet-night-abyss",
			RoleIDs:       []string{"1435978166257717349"},
			TitleKeywords: []string{"duet night abyss"},
		},
		{
			// No dedicated channel, announced centrally only.
			Name:          "thgl-companion-app",
			RoleIDs:       []string{"1445860743181369509"},
			TitleKeywords: []string{"thgl companion app", "companion app"},
		},
	}
}
