package listeners

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/sarulabs/di/v2"

	"github.com/zekurio/herald/internal/services/scheduler"
	"github.com/zekurio/herald/internal/util/static"
	"github.com/zekurio/herald/pkg/discordutils"
)

type ListenerReady struct {
	sched scheduler.Provider
}

func NewListenerReady(ctn di.Container) *ListenerReady {
	return &ListenerReady{
		sched: ctn.Get(static.DiScheduler).(scheduler.Provider),
	}
}

func (l *ListenerReady) Handler(s *discordgo.Session, e *discordgo.Ready) {
	err := s.UpdateListeningStatus("you arrive")
	if err != nil {
		return
	}
	log.Info("Signed in!", "Username", fmt.Sprintf("%s#%s", e.User.Username, e.User.Discriminator), "ID", e.User.ID)
	log.Infof("Invite link: %s", discordutils.GetInviteLink(s))

	l.sched.Start()
}
