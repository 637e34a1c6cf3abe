package embedded

import "embed"

//go:embed migrations
var Migrations embed.FS

var (
	// Release is set to "true" via ldflags for release builds.
	Release = "false"
)
