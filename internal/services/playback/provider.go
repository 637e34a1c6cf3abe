package playback

import "github.com/zekurio/herald/internal/services/sessions"

// FrameSource yields encoded opus frames for one clip.
type FrameSource interface {
	// OpusFrame returns the next frame or io.EOF when the clip
	// is exhausted.
	OpusFrame() ([]byte, error)
	Cleanup()
}

// Encoder builds a FrameSource from a clip file, applying the
// given linear gain.
type Encoder interface {
	Encode(path string, volume float64) (FrameSource, error)
}

// Provider is the interface for the welcome sound playback service.
type Provider interface {
	sessions.Player

	// Resolve returns the clip to play for a user and their
	// volume, falling back to the default clip when no custom
	// clip is registered or its file went missing.
	Resolve(userID string) (path string, volume float64)
}
