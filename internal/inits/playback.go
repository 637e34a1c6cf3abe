package inits

import (
	"github.com/sarulabs/di/v2"

	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/database"
	"github.com/zekurio/herald/internal/services/playback"
	"github.com/zekurio/herald/internal/util/static"
)

func InitPlayback(ctn di.Container) playback.Provider {
	cfg := ctn.Get(static.DiConfig).(models.Config)
	db := ctn.Get(static.DiDatabase).(database.Database)

	return playback.NewHandler(db, playback.NewDCAEncoder(), cfg.Sound)
}
