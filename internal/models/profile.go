package models

// UserAudioProfile holds the per-user welcome sound preferences.
// Profiles are keyed by the immutable user ID, never the display tag.
type UserAudioProfile struct {
	Volume   float64 `json:"volume"`
	ClipPath string  `json:"clipReference,omitempty"`
	Plays    int     `json:"plays,omitempty"`
}

// DefaultProfile returns the profile assumed for users
// that never customized anything.
func DefaultProfile() UserAudioProfile {
	return UserAudioProfile{
		Volume: 1.0,
	}
}

// VoiceSession describes the live binding between a guild and
// the voice channel the bot currently sits in.
type VoiceSession struct {
	GuildID   string `json:"guildId"`
	ChannelID string `json:"channelId"`
}
