package slashcommands

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/zekrotja/ken"

	"github.com/zekurio/herald/internal/middlewares"
	"github.com/zekurio/herald/internal/services/sounds"
	"github.com/zekurio/herald/internal/util/static"
	"github.com/zekurio/herald/pkg/timeutils"
)

type AddSound struct{}

var (
	_ ken.SlashCommand            = (*AddSound)(nil)
	_ middlewares.CommandCooldown = (*AddSound)(nil)
)

func (c *AddSound) Name() string {
	return "add-sound"
}

func (c *AddSound) Description() string {
	return "Register your welcome sound from a YouTube video."
}

func (c *AddSound) Version() string {
	return "1.0.0"
}

func (c *AddSound) Type() discordgo.ApplicationCommandType {
	return discordgo.ChatApplicationCommand
}

func (c *AddSound) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "youtube-url",
			Description: "The YouTube video to take the sound from.",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "start-time",
			Description: "Clip start (i.e. `12`, `1:05` or `1:05.500`), defaults to the video start.",
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "end-time",
			Description: "Clip end, defaults to the maximum clip length after the start.",
		},
	}
}

func (c *AddSound) Cooldown() int {
	return 60
}

func (c *AddSound) Run(ctx ken.Context) (err error) {
	if err = ctx.Defer(); err != nil {
		return
	}

	url := ctx.Options().GetByName("youtube-url").StringValue()

	var startRaw, endRaw string
	if v, ok := ctx.Options().GetByNameOptional("start-time"); ok {
		startRaw = v.StringValue()
	}
	if v, ok := ctx.Options().GetByNameOptional("end-time"); ok {
		endRaw = v.StringValue()
	}

	start, err := timeutils.ParseTimestamp(startRaw)
	if err != nil {
		return ctx.FollowUpError(
			fmt.Sprintf("`%s` is not a valid timestamp, use `ss`, `ss.mmm`, `mm:ss` or `mm:ss.mmm`.", startRaw), "").
			Send().Error
	}
	end, err := timeutils.ParseTimestamp(endRaw)
	if err != nil {
		return ctx.FollowUpError(
			fmt.Sprintf("`%s` is not a valid timestamp, use `ss`, `ss.mmm`, `mm:ss` or `mm:ss.mmm`.", endRaw), "").
			Send().Error
	}

	snd := ctx.Get(static.DiSounds).(sounds.Provider)

	err = snd.Register(context.Background(), ctx.User().ID, url, start, end)
	switch {
	case err == nil:
	case errors.Is(err, sounds.ErrInvalidURL):
		return ctx.FollowUpError("That does not look like a YouTube video URL.", "").Send().Error
	case errors.Is(err, sounds.ErrEndBeforeStart):
		return ctx.FollowUpError("The end time must be after the start time.", "").Send().Error
	case errors.Is(err, sounds.ErrRegistrationInFlight):
		return ctx.FollowUpError("You already have a sound registration running, wait for it to finish.", "").Send().Error
	case errors.Is(err, sounds.ErrDownloadTimeout):
		return ctx.FollowUpError("The download took too long and was aborted, try a shorter video.", "").Send().Error
	case errors.Is(err, sounds.ErrDownloadFailed):
		return ctx.FollowUpError("The video could not be downloaded, check the URL and try again.", "").Send().Error
	default:
		return ctx.FollowUpError("Your sound could not be processed, your previous sound is untouched.", "").Send().Error
	}

	return ctx.FollowUpEmbed(&discordgo.MessageEmbed{
		Description: "Your welcome sound has been registered.",
	}).Send().Error
}
