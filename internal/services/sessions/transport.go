package sessions

import (
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/zekurio/herald/pkg/discordutils"
)

// discordTransport backs Transport with the discordgo voice gateway.
// The session is resolved lazily so the transport can be constructed
// before the gateway connection exists.
type discordTransport struct {
	resolve func() *discordgo.Session
}

func NewDiscordTransport(resolve func() *discordgo.Session) Transport {
	return &discordTransport{resolve: resolve}
}

func (t *discordTransport) Join(guildID, channelID string) (Connection, error) {
	vc, err := t.resolve().ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return nil, err
	}
	return &voiceConn{vc: vc, done: make(chan struct{})}, nil
}

func (t *discordTransport) HumanCount(guildID, channelID string) (int, error) {
	return discordutils.HumanVoiceCount(t.resolve(), guildID, channelID)
}

// voiceConn wraps a gateway voice connection. Disconnect closes the
// done channel so a writer parked on the gateway's never-closed send
// channel gets unblocked.
type voiceConn struct {
	vc   *discordgo.VoiceConnection
	done chan struct{}
	once sync.Once
}

var _ Connection = (*voiceConn)(nil)

func (c *voiceConn) GuildID() string {
	return c.vc.GuildID
}

func (c *voiceConn) ChannelID() string {
	return c.vc.ChannelID
}

func (c *voiceConn) Speaking(b bool) error {
	return c.vc.Speaking(b)
}

func (c *voiceConn) OpusSend(frame []byte) error {
	select {
	case c.vc.OpusSend <- frame:
		return nil
	case <-c.done:
		return ErrConnectionClosed
	}
}

func (c *voiceConn) Disconnect() error {
	c.once.Do(func() { close(c.done) })
	return c.vc.Disconnect()
}
