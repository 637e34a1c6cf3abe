package slashcommands

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/zekrotja/ken"

	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/database"
	"github.com/zekurio/herald/internal/services/database/dberr"
	"github.com/zekurio/herald/internal/util/static"
)

type SetVolume struct {
	ken.EphemeralCommand
}

var _ ken.SlashCommand = (*SetVolume)(nil)

func (c *SetVolume) Name() string {
	return "set-volume"
}

func (c *SetVolume) Description() string {
	return "Set the playback volume of your welcome sound."
}

func (c *SetVolume) Version() string {
	return "1.0.0"
}

func (c *SetVolume) Type() discordgo.ApplicationCommandType {
	return discordgo.ChatApplicationCommand
}

func (c *SetVolume) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionNumber,
			Name:        "volume",
			Description: fmt.Sprintf("Volume multiplier between %g and %g, 1.0 is unchanged.", static.VolumeMin, static.VolumeMax),
			Required:    true,
		},
	}
}

func (c *SetVolume) Run(ctx ken.Context) (err error) {
	if err = ctx.Defer(); err != nil {
		return
	}

	volume := ctx.Options().GetByName("volume").FloatValue()

	db := ctx.Get(static.DiDatabase).(database.Database)

	p, err := db.GetProfile(ctx.User().ID)
	if err != nil {
		if !errors.Is(err, dberr.ErrNotFound) {
			return ctx.FollowUpError("Your settings could not be loaded.", "").Send().Error
		}
		p = models.DefaultProfile()
	}
	p.Volume = volume

	if err = db.SetProfile(ctx.User().ID, p); err != nil {
		if errors.Is(err, dberr.ErrVolumeOutOfRange) {
			return ctx.FollowUpError(
				fmt.Sprintf("The volume must be between %g and %g.", static.VolumeMin, static.VolumeMax), "").
				Send().Error
		}
		return ctx.FollowUpError("Your volume could not be saved.", "").Send().Error
	}

	return ctx.FollowUpEmbed(&discordgo.MessageEmbed{
		Description: fmt.Sprintf("Your welcome sound volume is now `%g`.", volume),
	}).Send().Error
}
