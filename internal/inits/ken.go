package inits

import (
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/sarulabs/di/v2"
	"github.com/zekrotja/ken"

	"github.com/zekurio/herald/internal/middlewares"
	"github.com/zekurio/herald/internal/slashcommands"
	"github.com/zekurio/herald/internal/util/static"
)

func InitKen(ctn di.Container) (*ken.Ken, error) {
	s := ctn.Get(static.DiDiscord).(*discordgo.Session)

	k, err := ken.New(s, ken.Options{
		DependencyProvider: ctn,
		EmbedColors: ken.EmbedColors{
			Default: static.ColorDefault,
			Error:   static.ColorRed,
		},
		OnSystemError: func(context string, err error, args ...interface{}) {
			log.With(err).Error("Ken system error", "Context", context)
		},
		OnCommandError: func(err error, ctx *ken.Ctx) {
			log.With(err).Error("Command execution failed", "Command", ctx.Command.Name())
		},
	})
	if err != nil {
		return nil, err
	}

	err = k.RegisterCommands(
		new(slashcommands.AddSound),
		new(slashcommands.SetVolume),
		new(slashcommands.Stats),
	)
	if err != nil {
		return nil, err
	}

	err = k.RegisterMiddlewares(
		middlewares.NewCooldownMiddleware(),
	)
	if err != nil {
		return nil, err
	}

	return k, nil
}
