package playback

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/database/dberr"
	"github.com/zekurio/herald/internal/services/database/jsonfile"
	"github.com/zekurio/herald/internal/services/sessions"
)

type fakeConn struct {
	mu          sync.Mutex
	speaking    []bool
	frames      [][]byte
	disconnects int
	done        chan struct{}

	// closeAfter > 0 makes OpusSend fail once that many frames
	// were accepted, modeling a connection released mid-clip
	closeAfter int
}

func newFakeConn() *fakeConn {
	return &fakeConn{done: make(chan struct{})}
}

func (c *fakeConn) GuildID() string   { return "g1" }
func (c *fakeConn) ChannelID() string { return "c1" }

func (c *fakeConn) Speaking(b bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speaking = append(c.speaking, b)
	if !b {
		close(c.done)
	}
	return nil
}

func (c *fakeConn) OpusSend(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closeAfter > 0 && len(c.frames) >= c.closeAfter {
		return sessions.ErrConnectionClosed
	}
	c.frames = append(c.frames, frame)
	return nil
}

func (c *fakeConn) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnects++
	return nil
}

type fakeSource struct {
	frames  [][]byte
	cleaned bool
}

func (s *fakeSource) OpusFrame() ([]byte, error) {
	if len(s.frames) == 0 {
		return nil, io.EOF
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}

func (s *fakeSource) Cleanup() {
	s.cleaned = true
}

type fakeEncoder struct {
	src    *fakeSource
	path   string
	volume float64
}

func (e *fakeEncoder) Encode(path string, volume float64) (FrameSource, error) {
	e.path = path
	e.volume = volume
	return e.src, nil
}

func testConfig(t *testing.T) models.SoundConfig {
	t.Helper()
	cfg := models.DefaultConfig.Sound
	cfg.PlayDelayMS = 1
	cfg.DefaultClip = filepath.Join(t.TempDir(), "default.m4a")
	require.Nil(t, os.WriteFile(cfg.DefaultClip, []byte("x"), 0644))
	return cfg
}

func TestResolveWithoutProfile(t *testing.T) {
	cfg := testConfig(t)
	db, err := jsonfile.InitJSONFile(filepath.Join(t.TempDir(), "settings.json"))
	require.Nil(t, err)

	h := NewHandler(db, &fakeEncoder{}, cfg)

	path, volume := h.Resolve("u1")
	assert.Equal(t, cfg.DefaultClip, path)
	assert.Equal(t, 1.0, volume)
}

func TestResolveMissingClipFallsBack(t *testing.T) {
	cfg := testConfig(t)
	db, err := jsonfile.InitJSONFile(filepath.Join(t.TempDir(), "settings.json"))
	require.Nil(t, err)
	require.Nil(t, db.SetProfile("u1", models.UserAudioProfile{
		Volume:   0.5,
		ClipPath: filepath.Join(t.TempDir(), "gone.m4a"),
	}))

	h := NewHandler(db, &fakeEncoder{}, cfg)

	path, volume := h.Resolve("u1")
	assert.Equal(t, cfg.DefaultClip, path)
	assert.Equal(t, 0.5, volume)
}

func TestResolveRegisteredClip(t *testing.T) {
	cfg := testConfig(t)
	db, err := jsonfile.InitJSONFile(filepath.Join(t.TempDir(), "settings.json"))
	require.Nil(t, err)

	clip := filepath.Join(t.TempDir(), "u1.m4a")
	require.Nil(t, os.WriteFile(clip, []byte("x"), 0644))
	require.Nil(t, db.SetProfile("u1", models.UserAudioProfile{Volume: 2.0, ClipPath: clip}))

	h := NewHandler(db, &fakeEncoder{}, cfg)

	path, volume := h.Resolve("u1")
	assert.Equal(t, clip, path)
	assert.Equal(t, 2.0, volume)
}

func TestPlayStreamsAllFrames(t *testing.T) {
	cfg := testConfig(t)
	db, err := jsonfile.InitJSONFile(filepath.Join(t.TempDir(), "settings.json"))
	require.Nil(t, err)
	require.Nil(t, db.SetProfile("u1", models.UserAudioProfile{Volume: 0.5}))

	src := &fakeSource{frames: [][]byte{{1}, {2}, {3}}}
	enc := &fakeEncoder{src: src}
	h := NewHandler(db, enc, cfg)

	conn := newFakeConn()
	h.Play(conn, "u1")

	select {
	case <-conn.done:
	case <-time.After(5 * time.Second):
		t.Fatal("playback never finished")
	}

	assert.Equal(t, []bool{true, false}, conn.speaking)
	assert.Equal(t, [][]byte{{1}, {2}, {3}}, conn.frames)
	assert.Equal(t, 0.5, enc.volume)
	assert.True(t, src.cleaned)

	// playback never tears down the connection, that is the
	// lifecycle manager's job
	assert.Equal(t, 0, conn.disconnects)

	p, err := db.GetProfile("u1")
	require.Nil(t, err)
	assert.Equal(t, 1, p.Plays)
}

func TestPlayStopsWhenConnectionReleased(t *testing.T) {
	cfg := testConfig(t)
	db, err := jsonfile.InitJSONFile(filepath.Join(t.TempDir(), "settings.json"))
	require.Nil(t, err)

	src := &fakeSource{frames: [][]byte{{1}, {2}, {3}, {4}}}
	enc := &fakeEncoder{src: src}
	h := NewHandler(db, enc, cfg)

	conn := newFakeConn()
	conn.closeAfter = 1

	h.Play(conn, "u1")

	select {
	case <-conn.done:
	case <-time.After(5 * time.Second):
		t.Fatal("playback goroutine never exited after teardown")
	}

	assert.Equal(t, []bool{true, false}, conn.speaking)
	assert.Equal(t, [][]byte{{1}}, conn.frames)
	assert.True(t, src.cleaned)

	// an interrupted play is not counted
	_, err = db.GetProfile("u1")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}
