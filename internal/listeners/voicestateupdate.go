package listeners

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/sarulabs/di/v2"

	"github.com/zekurio/herald/internal/services/sessions"
	"github.com/zekurio/herald/internal/util/static"
	"github.com/zekurio/herald/pkg/discordutils"
)

// VoiceStateUpdate translates raw voice state updates into presence
// transitions for the session service. Discord only delivers the new
// state, so the previous one is kept in a local cache.
type VoiceStateUpdate struct {
	sess sessions.Provider

	mu              sync.Mutex
	voiceStateCache map[string]*discordgo.VoiceState
}

func NewVoiceStateUpdate(ctn di.Container) *VoiceStateUpdate {
	return &VoiceStateUpdate{
		sess:            ctn.Get(static.DiSessions).(sessions.Provider),
		voiceStateCache: map[string]*discordgo.VoiceState{},
	}
}

func (v *VoiceStateUpdate) Handler(s *discordgo.Session, e *discordgo.VoiceStateUpdate) {
	newVState := e.VoiceState

	v.mu.Lock()
	oldVState := v.voiceStateCache[e.UserID]
	v.voiceStateCache[e.UserID] = newVState
	v.mu.Unlock()

	oldChannelID := ""
	if oldVState != nil && oldVState.GuildID == e.GuildID {
		oldChannelID = oldVState.ChannelID
	}

	isBot := e.UserID == s.State.User.ID
	if !isBot {
		if m, err := discordutils.GetMember(s, e.GuildID, e.UserID); err == nil {
			isBot = m.User != nil && m.User.Bot
		}
	}

	err := v.sess.HandlePresence(sessions.Event{
		GuildID:      e.GuildID,
		UserID:       e.UserID,
		OldChannelID: oldChannelID,
		NewChannelID: newVState.ChannelID,
		IsBot:        isBot,
	})
	if err != nil {
		log.With(err).Error("Failed to handle voice presence",
			"GuildID", e.GuildID, "UserID", e.UserID, "ChannelID", newVState.ChannelID)
	}
}
