package timeutils

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ParseTimestamp parses a clip timestamp of the form "ss", "ss.mmm",
// "mm:ss" or "mm:ss.mmm" into seconds. An empty string parses to 0.
func ParseTimestamp(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}

	parts := strings.Split(v, ":")

	switch len(parts) {
	case 1:
		secs, err := strconv.ParseFloat(parts[0], 64)
		if err != nil || secs < 0 {
			return 0, ErrInvalidTimestamp
		}
		return secs, nil

	case 2:
		mins, err := strconv.Atoi(parts[0])
		if err != nil || mins < 0 {
			return 0, ErrInvalidTimestamp
		}
		secs, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || secs < 0 || secs >= 60 {
			return 0, ErrInvalidTimestamp
		}
		return float64(mins)*60 + secs, nil

	default:
		return 0, ErrInvalidTimestamp
	}
}
