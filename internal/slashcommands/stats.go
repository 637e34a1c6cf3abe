package slashcommands

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
	"github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"
	"github.com/zekrotja/ken"

	"github.com/zekurio/herald/internal/services/database"
	"github.com/zekurio/herald/internal/util/static"
)

const statsTopN = 10

type Stats struct{}

var _ ken.SlashCommand = (*Stats)(nil)

func (c *Stats) Name() string {
	return "stats"
}

func (c *Stats) Description() string {
	return "Show who got greeted the most."
}

func (c *Stats) Version() string {
	return "1.0.0"
}

func (c *Stats) Type() discordgo.ApplicationCommandType {
	return discordgo.ChatApplicationCommand
}

func (c *Stats) Options() []*discordgo.ApplicationCommandOption {
	return nil
}

type playCount struct {
	userID string
	plays  int
}

func (c *Stats) Run(ctx ken.Context) (err error) {
	if err = ctx.Defer(); err != nil {
		return
	}

	db := ctx.Get(static.DiDatabase).(database.Database)

	profiles, err := db.GetProfiles()
	if err != nil {
		return ctx.FollowUpError("The play statistics could not be loaded.", "").Send().Error
	}

	counts := make([]playCount, 0, len(profiles))
	for userID, p := range profiles {
		if p.Plays > 0 {
			counts = append(counts, playCount{userID, p.Plays})
		}
	}

	if len(counts) == 0 {
		return ctx.FollowUpEmbed(&discordgo.MessageEmbed{
			Description: "Nobody has been greeted yet.",
		}).Send().Error
	}

	sort.Slice(counts, func(i, j int) bool {
		return counts[i].plays > counts[j].plays
	})
	if len(counts) > statsTopN {
		counts = counts[:statsTopN]
	}

	s := ctx.GetSession()

	bars := make([]chart.Value, len(counts))
	for i, pc := range counts {
		name := pc.userID
		if u, err := s.User(pc.userID); err == nil {
			name = u.Username
		}
		bars[i] = chart.Value{
			Label: name,
			Value: float64(pc.plays),
		}
	}

	bar := chart.BarChart{
		Width:    1024,
		Height:   512,
		BarWidth: 60,
		Bars:     bars,
		Background: chart.Style{
			FillColor: drawing.ColorTransparent,
		},
	}

	buff := &bytes.Buffer{}
	if err = bar.Render(chart.PNG, buff); err != nil {
		return ctx.FollowUpError("The statistics chart could not be rendered.", "").Send().Error
	}

	if err = ctx.FollowUpEmbed(&discordgo.MessageEmbed{
		Title:       "Welcome sound plays",
		Description: fmt.Sprintf("Top %d most greeted users.", len(counts)),
	}).Send().Error; err != nil {
		return
	}

	_, err = s.ChannelMessageSendComplex(ctx.GetEvent().ChannelID, &discordgo.MessageSend{
		File: &discordgo.File{
			Name:   "welcome_sound_plays.png",
			Reader: buff,
		},
	})

	return
}
