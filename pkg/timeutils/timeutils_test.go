package timeutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"12", 12},
		{"12.5", 12.5},
		{"0:05", 5},
		{"1:05", 65},
		{"1:05.5", 65.5},
		{"10:00", 600},
	} {
		got, err := ParseTimestamp(tt.in)
		assert.Nil(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	for _, in := range []string{
		"abc",
		"-5",
		"1:75",
		"-1:05",
		"1:2:3",
		"1:abc",
	} {
		_, err := ParseTimestamp(in)
		assert.ErrorIs(t, err, ErrInvalidTimestamp, in)
	}
}
