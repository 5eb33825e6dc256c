package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/fortress/internal/common"
)

// Config holds runtime settings for the Fortress CLI.
type Config struct {
	// DatabasePath is the SQLite file that survives restarts and holds the
	// persisted session.
	DatabasePath string
	// SessionNamespace prefixes the persisted session keys.
	SessionNamespace string
	// SessionSecret signs session tokens so a tampered session is rejected
	// on restore.
	SessionSecret string
	// SessionTTL bounds how long a persisted session can be restored.
	// Zero means no expiry.
	SessionTTL time.Duration
	// AuthDelay simulates backend latency for login and registration.
	AuthDelay time.Duration
	// SeedFile optionally replaces the embedded demo accounts.
	SeedFile string
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "fortress.db"
	c.SessionNamespace = common.DefaultSessionNamespace
	c.SessionSecret = "fortress-demo-secret"
	c.SessionTTL = 24 * time.Hour
	c.AuthDelay = time.Second
	c.SeedFile = ""
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then the JSON file (if any),
// then command-line flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
