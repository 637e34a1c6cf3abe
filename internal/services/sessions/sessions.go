package sessions

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/zekurio/herald/internal/models"
)

// Handler owns at most one voice session per guild and decides
// when to create, reuse, rebind or tear down connections based
// on observed channel membership. All transport work of a guild
// is serialized through a per-guild lock: joins and disconnects
// suspend, and interleaving them for the same guild can hand a
// released connection to a later event.
type Handler struct {
	tr     Transport
	player Player

	mu       sync.Mutex
	sessions map[string]*session
	guilds   map[string]*sync.Mutex
}

type session struct {
	channelID string
	conn      Connection
}

var _ Provider = (*Handler)(nil)

func NewHandler(tr Transport, player Player) *Handler {
	return &Handler{
		tr:       tr,
		player:   player,
		sessions: map[string]*session{},
		guilds:   map[string]*sync.Mutex{},
	}
}

func (h *Handler) HandlePresence(e Event) error {
	switch Classify(e) {
	case Unchanged:
		return nil

	case Joined:
		if e.IsBot {
			return nil
		}
		return h.greet(e)

	case Left:
		return h.reapIfEmpty(e.GuildID, e.OldChannelID)

	case Moved:
		if !e.IsBot {
			if err := h.greet(e); err != nil {
				return err
			}
		}
		return h.reapIfEmpty(e.GuildID, e.OldChannelID)
	}

	return nil
}

func (h *Handler) Destroy(guildID string) error {
	l := h.guildLock(guildID)
	l.Lock()
	defer l.Unlock()

	h.mu.Lock()
	s, ok := h.sessions[guildID]
	delete(h.sessions, guildID)
	h.mu.Unlock()

	if !ok {
		return nil
	}

	log.Debug("Destroying voice session", "GuildID", guildID, "ChannelID", s.channelID)

	if err := s.conn.Disconnect(); err != nil {
		log.With(err).Warn("Failed to disconnect voice connection", "GuildID", guildID)
	}

	return nil
}

func (h *Handler) Active() []models.VoiceSession {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]models.VoiceSession, 0, len(h.sessions))
	for guildID, s := range h.sessions {
		out = append(out, models.VoiceSession{
			GuildID:   guildID,
			ChannelID: s.channelID,
		})
	}

	return out
}

// greet makes sure a session bound to the event's new channel
// exists and schedules the welcome sound for the arriving user.
func (h *Handler) greet(e Event) error {
	conn, err := h.ensure(e.GuildID, e.NewChannelID)
	if err != nil {
		return err
	}

	h.player.Play(conn, e.UserID)

	return nil
}

// guildLock returns the lock serializing transport work of a guild.
func (h *Handler) guildLock(guildID string) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()

	l, ok := h.guilds[guildID]
	if !ok {
		l = &sync.Mutex{}
		h.guilds[guildID] = l
	}

	return l
}

// ensure resolves the guild session, creating or rebinding the
// connection as needed. A failed join leaves the session table
// untouched. The guild lock is held across the whole sequence:
// the gateway reuses one underlying connection per guild, so a
// second racing join must wait and then reuse the stored session
// instead of wrapping and releasing the same live connection.
func (h *Handler) ensure(guildID, channelID string) (Connection, error) {
	l := h.guildLock(guildID)
	l.Lock()
	defer l.Unlock()

	h.mu.Lock()
	s, ok := h.sessions[guildID]
	h.mu.Unlock()

	if ok {
		if s.channelID == channelID {
			return s.conn, nil
		}

		// The bot follows one channel per guild at a time, so the
		// old connection has to go before a new one is created.
		h.mu.Lock()
		delete(h.sessions, guildID)
		h.mu.Unlock()

		if err := s.conn.Disconnect(); err != nil {
			log.With(err).Warn("Failed to release old voice connection", "GuildID", guildID)
		}
	}

	conn, err := h.tr.Join(guildID, channelID)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.sessions[guildID] = &session{channelID: channelID, conn: conn}
	h.mu.Unlock()

	log.Debug("Voice session bound", "GuildID", guildID, "ChannelID", channelID)

	return conn, nil
}

// reapIfEmpty tears down the guild session when it is bound to the
// given channel and no humans are left in it.
func (h *Handler) reapIfEmpty(guildID, channelID string) error {
	if channelID == "" {
		return nil
	}

	l := h.guildLock(guildID)
	l.Lock()
	defer l.Unlock()

	h.mu.Lock()
	s, ok := h.sessions[guildID]
	h.mu.Unlock()

	if !ok || s.channelID != channelID {
		return nil
	}

	humans, err := h.tr.HumanCount(guildID, channelID)
	if err != nil {
		return err
	}
	if humans > 0 {
		return nil
	}

	h.mu.Lock()
	delete(h.sessions, guildID)
	h.mu.Unlock()

	log.Debug("Channel empty, releasing voice session", "GuildID", guildID, "ChannelID", channelID)

	if err := s.conn.Disconnect(); err != nil {
		log.With(err).Warn("Failed to disconnect voice connection", "GuildID", guildID)
	}

	return nil
}
