package inits

import (
	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
	"github.com/sarulabs/di/v2"

	"github.com/zekurio/herald/internal/services/scheduler"
	"github.com/zekurio/herald/internal/services/sounds"
	"github.com/zekurio/herald/internal/util/static"
)

func InitScheduler(ctn di.Container) scheduler.Provider {
	snd := ctn.Get(static.DiSounds).(sounds.Provider)

	sched := &scheduler.CronScheduler{C: cron.New(cron.WithSeconds())}

	if _, err := sched.Schedule("0 0 * * * *", snd.CleanupOrphans); err != nil {
		log.With(err).Error("Failed to schedule download cleanup")
	}

	return sched
}
