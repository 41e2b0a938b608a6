package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds optional settings loaded from a TOML config file.
// Flags always win over config values; config values win over built-in
// defaults. A missing config file is not an error.
//
// Example:
//
//	direction = "downstream"
//	entries = ["AppComponent"]
//	formats = ["json", "svg"]
//	detailed = true
//	cache_ttl = "48h"
//
//	[server]
//	addr = ":8080"
//	mongo_uri = "mongodb://localhost:27017"
//	redis_addr = "localhost:6379"
type Config struct {
	Direction string   `toml:"direction"`
	Entries   []string `toml:"entries"`
	Formats   []string `toml:"formats"`
	Detailed  bool     `toml:"detailed"`
	NoCache   bool     `toml:"no_cache"`
	CacheTTL  duration `toml:"cache_ttl"`

	Server ServerConfig `toml:"server"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	MongoURI  string `toml:"mongo_uri"`
	RedisAddr string `toml:"redis_addr"`
}

// duration wraps time.Duration so TOML values can be written as "24h".
type duration time.Duration

// value converts the config duration to time.Duration.
func (d duration) value() time.Duration { return time.Duration(d) }

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// LoadConfig reads a config file from path. When path is empty, the
// default location is tried and a missing file yields a zero Config.
// An explicitly given path must exist.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return Config{}, nil
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfigPath returns the XDG config location
// (~/.config/injectograph/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
