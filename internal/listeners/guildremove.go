package listeners

import (
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/sarulabs/di/v2"

	"github.com/zekurio/herald/internal/services/sessions"
	"github.com/zekurio/herald/internal/util/static"
)

type GuildRemove struct {
	sess sessions.Provider
}

func NewGuildRemove(ctn di.Container) *GuildRemove {
	return &GuildRemove{
		sess: ctn.Get(static.DiSessions).(sessions.Provider),
	}
}

func (g *GuildRemove) Handler(s *discordgo.Session, e *discordgo.GuildDelete) {
	if err := g.sess.Destroy(e.ID); err != nil {
		log.With(err).Error("Failed to release voice session", "GuildID", e.ID)
	}
}
