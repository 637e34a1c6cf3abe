package inits

import (
	"errors"

	"github.com/sarulabs/di/v2"

	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/database"
	"github.com/zekurio/herald/internal/services/database/bolt"
	"github.com/zekurio/herald/internal/services/database/jsonfile"
	"github.com/zekurio/herald/internal/services/database/postgres"
	"github.com/zekurio/herald/internal/util/static"
)

func InitDatabase(ctn di.Container) (database.Database, error) {
	cfg := ctn.Get(static.DiConfig).(models.Config)

	switch cfg.Storage.Driver {
	case "jsonfile":
		return jsonfile.InitJSONFile(cfg.Storage.SettingsFile)
	case "postgres":
		return postgres.InitPostgres(cfg.Storage.Postgres)
	case "bolt":
		return bolt.InitBolt(cfg.Storage.BoltFile)
	default:
		return nil, errors.New("unknown database driver")
	}
}
