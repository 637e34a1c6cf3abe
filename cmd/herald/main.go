package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/sarulabs/di/v2"
	"github.com/zekrotja/ken"

	"github.com/zekurio/herald/internal/inits"
	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/config"
	"github.com/zekurio/herald/internal/services/database"
	"github.com/zekurio/herald/internal/services/scheduler"
	"github.com/zekurio/herald/internal/services/sessions"
	"github.com/zekurio/herald/internal/services/webserver"
	"github.com/zekurio/herald/internal/util/embedded"
	"github.com/zekurio/herald/internal/util/static"
)

var (
	flagConfigPath = flag.String("c", "config.toml", "Path to config file")
)

func main() {

	flag.Parse()

	godotenv.Load()

	if embedded.Release == "true" {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(log.DebugLevel)
	}

	diBuilder, err := di.NewBuilder()
	if err != nil {
		log.With(err).Fatal("Failed to create DI builder")
	}

	// Config
	err = diBuilder.Add(di.Def{
		Name: static.DiConfig,
		Build: func(ctn di.Container) (interface{}, error) {
			return config.Parse(*flagConfigPath, "HERALD_", models.DefaultConfig)
		},
	})
	if err != nil {
		log.With(err).Fatal("Config parsing failed")
	}

	// Database
	err = diBuilder.Add(di.Def{
		Name: static.DiDatabase,
		Build: func(ctn di.Container) (interface{}, error) {
			return inits.InitDatabase(ctn)
		},
		Close: func(obj interface{}) error {
			d := obj.(database.Database)
			log.Info("Shutting down database connection...")
			return d.Close()
		},
	})
	if err != nil {
		log.With(err).Fatal("Database creation failed")
	}

	// Playback
	err = diBuilder.Add(di.Def{
		Name: static.DiPlayback,
		Build: func(ctn di.Container) (interface{}, error) {
			return inits.InitPlayback(ctn), nil
		},
	})
	if err != nil {
		log.With(err).Fatal("Playback creation failed")
	}

	// Voice sessions
	err = diBuilder.Add(di.Def{
		Name: static.DiSessions,
		Build: func(ctn di.Container) (interface{}, error) {
			return inits.InitSessions(ctn), nil
		},
		Close: func(obj interface{}) error {
			sess := obj.(sessions.Provider)
			log.Info("Releasing voice sessions...")
			for _, vs := range sess.Active() {
				if err := sess.Destroy(vs.GuildID); err != nil {
					log.With(err).Warn("Failed to release voice session", "GuildID", vs.GuildID)
				}
			}
			return nil
		},
	})
	if err != nil {
		log.With(err).Fatal("Sessions creation failed")
	}

	// Sound registration
	err = diBuilder.Add(di.Def{
		Name: static.DiSounds,
		Build: func(ctn di.Container) (interface{}, error) {
			return inits.InitSounds(ctn)
		},
	})
	if err != nil {
		log.With(err).Fatal("Sounds creation failed")
	}

	// Scheduler
	err = diBuilder.Add(di.Def{
		Name: static.DiScheduler,
		Build: func(ctn di.Container) (interface{}, error) {
			return inits.InitScheduler(ctn), nil
		},
		Close: func(obj interface{}) error {
			obj.(scheduler.Provider).Stop()
			return nil
		},
	})
	if err != nil {
		log.With(err).Fatal("Scheduler creation failed")
	}

	// Discord Session
	err = diBuilder.Add(di.Def{
		Name: static.DiDiscord,
		Build: func(ctn di.Container) (interface{}, error) {
			return inits.InitDiscord(ctn)
		},
		Close: func(obj interface{}) error {
			return obj.(*discordgo.Session).Close()
		},
	})
	if err != nil {
		log.With(err).Fatal("Discord creation failed")
	}

	// Ken
	err = diBuilder.Add(di.Def{
		Name: static.DiCommandHandler,
		Build: func(ctn di.Container) (interface{}, error) {
			return inits.InitKen(ctn)
		},
		Close: func(obj interface{}) error {
			return obj.(*ken.Ken).Unregister()
		},
	})
	if err != nil {
		log.With(err).Fatal("Command handler creation failed")
	}

	// Webserver
	err = diBuilder.Add(di.Def{
		Name: static.DiWebserver,
		Build: func(ctn di.Container) (interface{}, error) {
			return inits.InitWebserver(ctn), nil
		},
		Close: func(obj interface{}) error {
			ws := obj.(*webserver.Webserver)
			if ws == nil {
				return nil
			}
			return ws.Stop()
		},
	})
	if err != nil {
		log.With(err).Fatal("Webserver creation failed")
	}

	// Build dependency injection container
	ctn := diBuilder.Build()
	// Tear down dependency instances
	defer func(ctn di.Container) {
		err := ctn.DeleteWithSubContainers()
		if err != nil {
			log.With(err).Fatal("Failed to tear down dependency instances")
		}
	}(ctn)

	ctn.Get(static.DiCommandHandler)

	s := ctn.Get(static.DiDiscord).(*discordgo.Session)
	err = s.Open()
	if err != nil {
		log.With(err).Fatal("Failed to open Discord connection")
	}

	ctn.Get(static.DiWebserver)

	// Block main go routine until one of the following
	// specified exit sys calls occure.
	log.Info("Started event loop. Stop with CTRL-C...")

	log.Info("Initialization finished")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt, os.Kill)
	<-sc

}
