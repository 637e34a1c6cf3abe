package static

import "github.com/bwmarrin/discordgo"

const (
	ColorDefault = 0x7169ba
	ColorRed     = 0xff2b66
	ColorGreen   = 0x92f026
	ColorYellow  = 0xffff38
	ColorGray    = 0x929292

	OAuthScopes = "bot%20applications.commands"

	InvitePermission = discordgo.PermissionEmbedLinks |
		discordgo.PermissionAttachFiles |
		discordgo.PermissionVoiceConnect |
		discordgo.PermissionVoiceSpeak

	Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildVoiceStates

	// Bounds for the per-user welcome sound volume,
	// enforced at write time by every store driver.
	VolumeMin = 0.01
	VolumeMax = 5.0
)

const (
	DiConfig         = "config"
	DiDatabase       = "database"
	DiDiscord        = "discord"
	DiCommandHandler = "cmdhandler"
	DiScheduler      = "scheduler"
	DiPlayback       = "playback"
	DiSessions       = "sessions"
	DiSounds         = "sounds"
	DiWebserver      = "webserver"
)
