package models

var DefaultConfig = Config{
	Discord: DiscordConfig{
		Token:      "",
		OwnerID:    "",
		GuildLimit: -1,
	},
	Storage: StorageConfig{
		Driver:       "jsonfile",
		SettingsFile: "user-settings.json",
		BoltFile:     "herald.db",
		Postgres: PostgresConfig{
			Host: "localhost",
			Port: 5432,
		},
	},
	Sound: SoundConfig{
		ClipsDir:         "audio-clips",
		DefaultClip:      "audio-clips/default.m4a",
		PlayDelayMS:      800,
		MaxClipSeconds:   20,
		DownloadTimeoutS: 300,
		YtdlpPath:        "yt-dlp",
		FfmpegPath:       "ffmpeg",
	},
	Webserver: WebserverConfig{
		Enabled: false,
		Addr:    ":8080",
	},
}

type DiscordConfig struct {
	Token      string
	OwnerID    string
	GuildLimit int
}

type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

// StorageConfig selects and configures the settings store backend.
// Driver is one of "jsonfile", "postgres" or "bolt".
type StorageConfig struct {
	Driver       string
	SettingsFile string
	BoltFile     string
	Postgres     PostgresConfig
}

type SoundConfig struct {
	ClipsDir         string
	DefaultClip      string
	PlayDelayMS      int
	MaxClipSeconds   int
	DownloadTimeoutS int
	YtdlpPath        string
	FfmpegPath       string
}

type WebserverConfig struct {
	Enabled bool
	Addr    string
}

type Config struct {
	Discord   DiscordConfig
	Storage   StorageConfig
	Sound     SoundConfig
	Webserver WebserverConfig
}
