package inits

import (
	"github.com/charmbracelet/log"
	"github.com/sarulabs/di/v2"

	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/database"
	"github.com/zekurio/herald/internal/services/sessions"
	"github.com/zekurio/herald/internal/services/webserver"
	"github.com/zekurio/herald/internal/util/static"
)

func InitWebserver(ctn di.Container) *webserver.Webserver {
	cfg := ctn.Get(static.DiConfig).(models.Config)
	if !cfg.Webserver.Enabled {
		return nil
	}

	db := ctn.Get(static.DiDatabase).(database.Database)
	sess := ctn.Get(static.DiSessions).(sessions.Provider)

	ws := webserver.New(cfg.Webserver.Addr, db, sess)

	go func() {
		if err := ws.ListenAndServeBlocking(); err != nil {
			log.With(err).Error("Webserver failed")
		}
	}()

	return ws
}
