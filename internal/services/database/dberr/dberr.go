package dberr

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrVolumeOutOfRange = errors.New("volume out of range")
)
