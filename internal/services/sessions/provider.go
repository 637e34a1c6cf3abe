package sessions

import (
	"errors"

	"github.com/zekurio/herald/internal/models"
)

// ErrConnectionClosed is returned by Connection.OpusSend once the
// connection was released. The gateway keeps the send channel open
// after a disconnect, so without this signal a writer would block
// forever.
var ErrConnectionClosed = errors.New("voice connection closed")

// Event is a single voice presence transition of a user within
// a guild. Channel IDs are empty when there is no channel on the
// respective side of the transition.
type Event struct {
	GuildID      string
	UserID       string
	OldChannelID string
	NewChannelID string
	IsBot        bool
}

// Kind classifies a presence event.
type Kind int

const (
	// Unchanged covers mute/deaf-only updates, which must not
	// be treated as join or leave.
	Unchanged Kind = iota
	Joined
	Left
	Moved
)

// Classify derives the event kind from the channel transition.
func Classify(e Event) Kind {
	switch {
	case e.OldChannelID == e.NewChannelID:
		return Unchanged
	case e.OldChannelID == "":
		return Joined
	case e.NewChannelID == "":
		return Left
	default:
		return Moved
	}
}

// Connection is the live voice transport connection owned by a
// session. The core never inspects transport internals.
type Connection interface {
	GuildID() string
	ChannelID() string
	Speaking(b bool) error

	// OpusSend queues one opus frame, failing with
	// ErrConnectionClosed once the connection was released.
	OpusSend(frame []byte) error

	Disconnect() error
}

// Transport creates connections and answers occupancy questions.
type Transport interface {
	// Join connects to the given voice channel.
	Join(guildID, channelID string) (Connection, error)

	// HumanCount returns the number of non-bot users currently
	// in the given voice channel.
	HumanCount(guildID, channelID string) (int, error)
}

// Player is called with the session connection whenever a user
// arrival should be greeted.
type Player interface {
	Play(conn Connection, userID string)
}

// Provider is the interface for the voice session lifecycle service.
type Provider interface {
	// HandlePresence applies a presence transition to the guild
	// session table and triggers playback on human arrivals.
	HandlePresence(e Event) error

	// Destroy releases the session of a guild. Destroying an
	// absent session is a no-op.
	Destroy(guildID string) error

	// Active returns the currently held sessions.
	Active() []models.VoiceSession
}
