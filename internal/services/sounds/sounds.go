package sounds

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rs/xid"

	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/database"
	"github.com/zekurio/herald/internal/services/database/dberr"
)

const (
	tempPrefix = "full_"
	clipExt    = ".m4a"

	// orphanAge is how old a temp artifact must be before the
	// cleanup sweep considers it a crash leftover.
	orphanAge = time.Hour
)

// Handler runs the registration pipeline:
// validating -> downloading -> trimming -> committing.
type Handler struct {
	db  database.Database
	dl  Downloader
	tr  Trimmer
	cfg models.SoundConfig

	mu       sync.Mutex
	inflight map[string]struct{}
}

var _ Provider = (*Handler)(nil)

func NewHandler(db database.Database, dl Downloader, tr Trimmer, cfg models.SoundConfig) *Handler {
	return &Handler{
		db:       db,
		dl:       dl,
		tr:       tr,
		cfg:      cfg,
		inflight: map[string]struct{}{},
	}
}

func (h *Handler) Register(ctx context.Context, userID, url string, start, end float64) error {
	// validating
	if !h.dl.Validate(url) {
		return ErrInvalidURL
	}
	// end == start would trim a zero-length clip
	if end > 0 && end <= start {
		return ErrEndBeforeStart
	}

	if !h.acquire(userID) {
		return ErrRegistrationInFlight
	}
	defer h.release(userID)

	jobID := xid.New().String()
	log.Debug("Registration started", "JobID", jobID, "UserID", userID, "URL", url)

	// downloading
	tmp := filepath.Join(h.cfg.ClipsDir, fmt.Sprintf("%s%s_%s%s", tempPrefix, userID, jobID, clipExt))

	dctx := ctx
	if h.cfg.DownloadTimeoutS > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, time.Duration(h.cfg.DownloadTimeoutS)*time.Second)
		defer cancel()
	}

	if err := h.dl.Fetch(dctx, url, tmp); err != nil {
		h.remove(tmp)
		if errors.Is(dctx.Err(), context.DeadlineExceeded) {
			log.With(err).Error("Registration download timed out", "JobID", jobID, "UserID", userID)
			return ErrDownloadTimeout
		}
		log.With(err).Error("Registration download failed", "JobID", jobID, "UserID", userID)
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	// trimming
	duration := float64(h.cfg.MaxClipSeconds)
	if end > 0 {
		duration = end - start
	}
	if max := float64(h.cfg.MaxClipSeconds); duration > max {
		duration = max
	}

	final := filepath.Join(h.cfg.ClipsDir, userID+clipExt)
	part := final + ".part"

	if err := h.tr.Trim(ctx, tmp, part, start, duration); err != nil {
		h.remove(tmp)
		h.remove(part)
		log.With(err).Error("Registration trim failed", "JobID", jobID, "UserID", userID)
		return fmt.Errorf("%w: %v", ErrTrimFailed, err)
	}

	// the rename keeps a previously registered clip intact if
	// the trim produced nothing useful
	if err := os.Rename(part, final); err != nil {
		h.remove(tmp)
		h.remove(part)
		return fmt.Errorf("%w: %v", ErrTrimFailed, err)
	}

	// committing
	h.remove(tmp)

	p, err := h.db.GetProfile(userID)
	if err != nil {
		if !errors.Is(err, dberr.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrCommitFailed, err)
		}
		p = models.DefaultProfile()
	}
	p.ClipPath = final

	if err := h.db.SetProfile(userID, p); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}

	log.Info("Sound registered", "JobID", jobID, "UserID", userID, "Clip", final, "Duration", duration)

	return nil
}

func (h *Handler) InFlight(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.inflight[userID]
	return ok
}

func (h *Handler) CleanupOrphans() {
	entries, err := os.ReadDir(h.cfg.ClipsDir)
	if err != nil {
		log.With(err).Warn("Failed to read clips dir for cleanup")
		return
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), tempPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < orphanAge {
			continue
		}
		path := filepath.Join(h.cfg.ClipsDir, e.Name())
		if err := os.Remove(path); err != nil {
			log.With(err).Warn("Failed to remove orphaned download", "Path", path)
			continue
		}
		log.Debug("Removed orphaned download", "Path", path)
	}
}

func (h *Handler) acquire(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.inflight[userID]; ok {
		return false
	}
	h.inflight[userID] = struct{}{}
	return true
}

func (h *Handler) release(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.inflight, userID)
}

// remove deletes a pipeline artifact best-effort, a failed delete
// never fails the registration.
func (h *Handler) remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.With(err).Warn("Failed to remove artifact", "Path", path)
	}
}
