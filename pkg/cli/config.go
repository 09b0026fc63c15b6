package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the optional switches read from the environment. Values may
// come from a .env file in the working directory; real environment variables
// win over the file.
type Config struct {
	Timing     bool // per-worker timing lines on stdout
	Stats      bool // size/time/speed summary on stderr
	Preview    bool // show the output image inline in the terminal
	Debug      bool // extra diagnostics on stderr
	AutoUpdate bool // let --check-update replace the binary
}

// Environment variables understood by LoadConfig.
const (
	EnvTiming     = "DPFILTER_TIMING"
	EnvStats      = "DPFILTER_STATS"
	EnvPreview    = "DPFILTER_PREVIEW"
	EnvDebug      = "DPFILTER_DEBUG"
	EnvAutoUpdate = "DPFILTER_AUTO_UPDATE"
)

// LoadConfig loads the given .env files (a missing file is not an error) and
// parses the DPFILTER_* switches.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("loading %s: %w", path, err)
		}
	}
	var cfg Config
	fields := []struct {
		key string
		dst *bool
	}{
		{EnvTiming, &cfg.Timing},
		{EnvStats, &cfg.Stats},
		{EnvPreview, &cfg.Preview},
		{EnvDebug, &cfg.Debug},
		{EnvAutoUpdate, &cfg.AutoUpdate},
	}
	for _, f := range fields {
		v, err := envBool(f.key)
		if err != nil {
			return Config{}, err
		}
		*f.dst = v
	}
	return cfg, nil
}

func envBool(key string) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
	return b, nil
}
