package models

var (
	Ok = &Status{200}
)

type Error struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Context string `json:"context,omitempty"`
}

type Status struct {
	Code int `json:"code"`
}

// StatusReport is the payload of the /api/status endpoint.
type StatusReport struct {
	Guilds   int            `json:"guilds"`
	Sessions []VoiceSession `json:"sessions"`
	Profiles int            `json:"profiles"`
}
