package sounds

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/database/dberr"
	"github.com/zekurio/herald/internal/services/database/jsonfile"
)

type fakeDownloader struct {
	valid   bool
	err     error
	started chan struct{}
	blocked chan struct{}
	fetched []string
}

func (d *fakeDownloader) Validate(url string) bool {
	return d.valid
}

func (d *fakeDownloader) Fetch(ctx context.Context, url, dest string) error {
	if d.started != nil {
		close(d.started)
	}
	if d.blocked != nil {
		<-d.blocked
	}
	if d.err != nil {
		return d.err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	d.fetched = append(d.fetched, dest)
	return os.WriteFile(dest, []byte("full audio"), 0644)
}

type fakeTrimmer struct {
	err      error
	start    float64
	duration float64
}

func (t *fakeTrimmer) Trim(ctx context.Context, in, out string, start, duration float64) error {
	if t.err != nil {
		return t.err
	}
	t.start = start
	t.duration = duration
	return os.WriteFile(out, []byte("trimmed"), 0644)
}

func testHandler(t *testing.T, dl *fakeDownloader, tr *fakeTrimmer) (*Handler, *jsonfile.JSONFile) {
	t.Helper()

	cfg := models.DefaultConfig.Sound
	cfg.ClipsDir = t.TempDir()
	cfg.DownloadTimeoutS = 0

	db, err := jsonfile.InitJSONFile(filepath.Join(t.TempDir(), "settings.json"))
	require.Nil(t, err)

	return NewHandler(db, dl, tr, cfg), db
}

func TestRegisterRejectsInvalidURL(t *testing.T) {
	h, db := testHandler(t, &fakeDownloader{valid: false}, &fakeTrimmer{})

	err := h.Register(context.Background(), "u1", "not a url", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = db.GetProfile("u1")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

func TestRegisterRejectsEndBeforeStart(t *testing.T) {
	h, db := testHandler(t, &fakeDownloader{valid: true}, &fakeTrimmer{})

	err := h.Register(context.Background(), "u1", "https://youtu.be/dQw4w9WgXcQ", 12, 5)
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	// equal times would trim a zero-length clip
	err = h.Register(context.Background(), "u1", "https://youtu.be/dQw4w9WgXcQ", 5, 5)
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	_, err = db.GetProfile("u1")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

func TestRegisterCommitsAfterTrim(t *testing.T) {
	dl := &fakeDownloader{valid: true}
	tr := &fakeTrimmer{}
	h, db := testHandler(t, dl, tr)

	err := h.Register(context.Background(), "u1", "https://youtu.be/dQw4w9WgXcQ", 5, 12)
	require.Nil(t, err)

	assert.Equal(t, 5.0, tr.start)
	assert.Equal(t, 7.0, tr.duration)

	p, err := db.GetProfile("u1")
	require.Nil(t, err)
	assert.Equal(t, filepath.Join(h.cfg.ClipsDir, "u1.m4a"), p.ClipPath)
	assert.Equal(t, 1.0, p.Volume)

	// final clip exists, temp artifact is gone
	_, err = os.Stat(p.ClipPath)
	assert.Nil(t, err)
	require.Len(t, dl.fetched, 1)
	_, err = os.Stat(dl.fetched[0])
	assert.True(t, os.IsNotExist(err))
}

func TestRegisterCapsDuration(t *testing.T) {
	dl := &fakeDownloader{valid: true}
	tr := &fakeTrimmer{}
	h, _ := testHandler(t, dl, tr)

	err := h.Register(context.Background(), "u1", "https://youtu.be/dQw4w9WgXcQ", 0, 90)
	require.Nil(t, err)

	assert.Equal(t, float64(h.cfg.MaxClipSeconds), tr.duration)
}

func TestRegisterKeepsExistingVolume(t *testing.T) {
	dl := &fakeDownloader{valid: true}
	h, db := testHandler(t, dl, &fakeTrimmer{})
	require.Nil(t, db.SetProfile("u1", models.UserAudioProfile{Volume: 0.5}))

	err := h.Register(context.Background(), "u1", "https://youtu.be/dQw4w9WgXcQ", 0, 0)
	require.Nil(t, err)

	p, err := db.GetProfile("u1")
	require.Nil(t, err)
	assert.Equal(t, 0.5, p.Volume)
	assert.NotEmpty(t, p.ClipPath)
}

func TestRegisterTrimFailureLeavesStoreUntouched(t *testing.T) {
	dl := &fakeDownloader{valid: true}
	tr := &fakeTrimmer{err: errors.New("encoder exploded")}
	h, db := testHandler(t, dl, tr)

	err := h.Register(context.Background(), "u1", "https://youtu.be/dQw4w9WgXcQ", 0, 0)
	assert.ErrorIs(t, err, ErrTrimFailed)

	_, err = db.GetProfile("u1")
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	// the temp artifact was cleaned up
	entries, err := os.ReadDir(h.cfg.ClipsDir)
	require.Nil(t, err)
	assert.Empty(t, entries)
}

func TestRegisterDownloadFailureLeavesStoreUntouched(t *testing.T) {
	dl := &fakeDownloader{valid: true, err: errors.New("404")}
	h, db := testHandler(t, dl, &fakeTrimmer{})

	err := h.Register(context.Background(), "u1", "https://youtu.be/dQw4w9WgXcQ", 0, 0)
	assert.ErrorIs(t, err, ErrDownloadFailed)

	_, err = db.GetProfile("u1")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

func TestRegisterDownloadTimeout(t *testing.T) {
	dl := &fakeDownloader{valid: true, blocked: make(chan struct{})}
	h, _ := testHandler(t, dl, &fakeTrimmer{})
	h.cfg.DownloadTimeoutS = 1

	go func() {
		time.Sleep(1500 * time.Millisecond)
		close(dl.blocked)
	}()

	err := h.Register(context.Background(), "u1", "https://youtu.be/dQw4w9WgXcQ", 0, 0)
	assert.ErrorIs(t, err, ErrDownloadTimeout)
}

func TestRegisterSecondInFlightRejected(t *testing.T) {
	dl := &fakeDownloader{valid: true, started: make(chan struct{}), blocked: make(chan struct{})}
	h, _ := testHandler(t, dl, &fakeTrimmer{})

	done := make(chan error, 1)
	go func() {
		done <- h.Register(context.Background(), "u1", "https://youtu.be/dQw4w9WgXcQ", 0, 0)
	}()

	<-dl.started
	assert.True(t, h.InFlight("u1"))

	err := h.Register(context.Background(), "u1", "https://youtu.be/dQw4w9WgXcQ", 0, 0)
	assert.ErrorIs(t, err, ErrRegistrationInFlight)

	close(dl.blocked)
	require.Nil(t, <-done)
	assert.False(t, h.InFlight("u1"))
}

func TestCleanupOrphans(t *testing.T) {
	h, _ := testHandler(t, &fakeDownloader{}, &fakeTrimmer{})

	stale := filepath.Join(h.cfg.ClipsDir, "full_u1_abc.m4a")
	fresh := filepath.Join(h.cfg.ClipsDir, "full_u2_def.m4a")
	clip := filepath.Join(h.cfg.ClipsDir, "u3.m4a")
	for _, p := range []string{stale, fresh, clip} {
		require.Nil(t, os.WriteFile(p, []byte("x"), 0644))
	}
	old := time.Now().Add(-2 * time.Hour)
	require.Nil(t, os.Chtimes(stale, old, old))

	h.CleanupOrphans()

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.Nil(t, err)
	_, err = os.Stat(clip)
	assert.Nil(t, err)
}
