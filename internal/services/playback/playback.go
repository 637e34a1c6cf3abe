package playback

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/database"
	"github.com/zekurio/herald/internal/services/database/dberr"
	"github.com/zekurio/herald/internal/services/sessions"
)

// Handler schedules the delayed subscribe-and-play sequence for
// arriving users.
type Handler struct {
	db  database.Database
	enc Encoder
	cfg models.SoundConfig
}

var _ Provider = (*Handler)(nil)

func NewHandler(db database.Database, enc Encoder, cfg models.SoundConfig) *Handler {
	return &Handler{
		db:  db,
		enc: enc,
		cfg: cfg,
	}
}

func (h *Handler) Resolve(userID string) (string, float64) {
	path := h.cfg.DefaultClip
	volume := 1.0

	p, err := h.db.GetProfile(userID)
	if err != nil {
		if !errors.Is(err, dberr.ErrNotFound) {
			log.With(err).Warn("Failed to load profile, using defaults", "UserID", userID)
		}
		return path, volume
	}

	volume = p.Volume
	if p.ClipPath != "" {
		if _, err := os.Stat(p.ClipPath); err == nil {
			path = p.ClipPath
		}
	}

	return path, volume
}

func (h *Handler) Play(conn sessions.Connection, userID string) {
	path, volume := h.Resolve(userID)
	go h.run(conn, userID, path, volume)
}

func (h *Handler) run(conn sessions.Connection, userID, path string, volume float64) {
	// The voice handshake is still settling right after a join,
	// playing immediately swallows the first frames.
	time.Sleep(time.Duration(h.cfg.PlayDelayMS) * time.Millisecond)

	defer func() {
		if err := conn.Speaking(false); err != nil {
			log.With(err).Warn("Failed to clear speaking state", "UserID", userID)
		}
	}()

	if err := conn.Speaking(true); err != nil {
		log.With(err).Error("Failed to set speaking state", "UserID", userID)
		return
	}

	src, err := h.enc.Encode(path, volume)
	if err != nil {
		log.With(err).Error("Failed to encode clip", "UserID", userID, "Path", path)
		return
	}
	defer src.Cleanup()

	for {
		frame, err := src.OpusFrame()
		if err != nil {
			if err != io.EOF {
				log.With(err).Error("Failed reading opus frame", "UserID", userID)
			}
			break
		}
		if err = conn.OpusSend(frame); err != nil {
			// the lifecycle manager released the connection
			// mid-clip, an interrupted play is not counted
			log.Debug("Connection released mid-clip", "UserID", userID)
			return
		}
	}

	log.Debug("Played welcome sound", "UserID", userID, "Path", path, "Volume", volume)

	if err := h.db.AddPlay(userID); err != nil {
		log.With(err).Warn("Failed to count play", "UserID", userID)
	}
}
