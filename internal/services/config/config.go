package config

import (
	"os"

	"github.com/traefik/paerser/env"
	"github.com/traefik/paerser/file"
)

// Parse loads the configuration from the given file, if it exists,
// and applies environment variables with the given prefix on top.
// Missing files are not an error, the defaults carry.
func Parse[T any](cfgFile, envPrefix string, defaultConfig T) (cfg T, err error) {
	cfg = defaultConfig

	if _, err = os.Stat(cfgFile); err == nil {
		if err = file.Decode(cfgFile, &cfg); err != nil {
			return cfg, err
		}
	}

	if err = env.Decode(os.Environ(), envPrefix, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
