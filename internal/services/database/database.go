package database

import (
	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/database/dberr"
	"github.com/zekurio/herald/internal/util/static"
)

// Database is the interface for our settings store
// which is implemented by either jsonfile, postgres or bolt.
type Database interface {
	Close() error

	// Profiles

	// GetProfile returns the stored profile of a user or
	// dberr.ErrNotFound if the user never customized anything.
	GetProfile(userID string) (models.UserAudioProfile, error)

	// SetProfile stores the full profile of a user. The volume
	// is validated, everything else is trusted.
	SetProfile(userID string, p models.UserAudioProfile) error

	// GetProfiles returns a snapshot of all stored profiles.
	GetProfiles() (map[string]models.UserAudioProfile, error)

	// AddPlay increments the welcome play counter of a user,
	// creating a default profile if none exists yet.
	AddPlay(userID string) error
}

// ValidateProfile checks the writable bounds of a profile.
// Stored profiles are trusted at read time, so every driver
// must call this before persisting.
func ValidateProfile(p models.UserAudioProfile) error {
	if p.Volume < static.VolumeMin || p.Volume > static.VolumeMax {
		return dberr.ErrVolumeOutOfRange
	}
	return nil
}
