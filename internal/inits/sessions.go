package inits

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sarulabs/di/v2"

	"github.com/zekurio/herald/internal/services/playback"
	"github.com/zekurio/herald/internal/services/sessions"
	"github.com/zekurio/herald/internal/util/static"
)

func InitSessions(ctn di.Container) sessions.Provider {
	player := ctn.Get(static.DiPlayback).(playback.Provider)

	// Resolved lazily, the gateway session is built after the
	// session service because the listeners depend on it.
	tr := sessions.NewDiscordTransport(func() *discordgo.Session {
		return ctn.Get(static.DiDiscord).(*discordgo.Session)
	})

	return sessions.NewHandler(tr, player)
}
