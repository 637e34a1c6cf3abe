package listeners

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/sarulabs/di/v2"

	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/util/static"
	"github.com/zekurio/herald/pkg/discordutils"
)

type GuildCreate struct {
	cfg models.Config
}

func NewGuildCreate(ctn di.Container) *GuildCreate {
	return &GuildCreate{
		cfg: ctn.Get(static.DiConfig).(models.Config),
	}
}

func (g *GuildCreate) GuildLimit(s *discordgo.Session, e *discordgo.GuildCreate) {

	// only freshly joined guilds count against the limit
	if e.JoinedAt.Unix() <= time.Now().Unix() {
		return
	}

	limit := g.cfg.Discord.GuildLimit
	if limit == -1 {
		return
	}

	if len(s.State.Guilds) > limit {
		_, err := discordutils.SendMessageDM(s, e.OwnerID,
			fmt.Sprintf("Sorry, the instance owner disallowed me to join more than %d guilds.", limit))
		if err != nil {
			log.With(err).Error("Failed to send message", "GuildID", e.Guild.ID, "UserID", e.OwnerID)
			return
		}
		err = s.GuildLeave(e.Guild.ID)
		if err != nil {
			log.With(err).Error("Failed to leave guild", "GuildID", e.Guild.ID)
			return
		}

		log.Debug("Left guild due to guild limit", "GuildID", e.Guild.ID)
	}
}
