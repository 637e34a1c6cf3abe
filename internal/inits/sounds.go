package inits

import (
	"os"

	"github.com/sarulabs/di/v2"

	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/database"
	"github.com/zekurio/herald/internal/services/sounds"
	"github.com/zekurio/herald/internal/util/static"
)

func InitSounds(ctn di.Container) (sounds.Provider, error) {
	cfg := ctn.Get(static.DiConfig).(models.Config)
	db := ctn.Get(static.DiDatabase).(database.Database)

	if err := os.MkdirAll(cfg.Sound.ClipsDir, 0755); err != nil {
		return nil, err
	}

	dl := &sounds.YtdlpDownloader{Path: cfg.Sound.YtdlpPath}
	tr := &sounds.FfmpegTrimmer{Path: cfg.Sound.FfmpegPath}

	return sounds.NewHandler(db, dl, tr, cfg.Sound), nil
}
