package sounds

import (
	"context"
	"errors"
)

var (
	ErrInvalidURL           = errors.New("invalid source url")
	ErrEndBeforeStart       = errors.New("end time before start time")
	ErrRegistrationInFlight = errors.New("registration already in flight")
	ErrDownloadTimeout      = errors.New("download timed out")
	ErrDownloadFailed       = errors.New("download failed")
	ErrTrimFailed           = errors.New("trim failed")
	ErrCommitFailed         = errors.New("commit failed")
)

// Downloader fetches the full audio track of a remote video.
type Downloader interface {
	// Validate reports whether url is a syntactically valid
	// source video URL.
	Validate(url string) bool

	// Fetch downloads the audio track of url to dest.
	Fetch(ctx context.Context, url, dest string) error
}

// Trimmer cuts a section out of a downloaded audio file.
type Trimmer interface {
	Trim(ctx context.Context, in, out string, start, duration float64) error
}

// Provider is the interface for the sound registration service.
type Provider interface {
	// Register runs the full download-then-trim pipeline for a
	// user and commits the resulting clip to their profile. The
	// profile is only touched after the whole sequence succeeded.
	// end <= 0 means no end point was given; a given end must lie
	// strictly after start.
	Register(ctx context.Context, userID, url string, start, end float64) error

	// InFlight reports whether a registration for the user is
	// currently running.
	InFlight(userID string) bool

	// CleanupOrphans removes stale temporary download artifacts
	// left behind by crashed registrations.
	CleanupOrphans()
}
