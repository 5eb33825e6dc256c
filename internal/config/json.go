package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fortress/internal/flagx"
	"github.com/dmitrijs2005/fortress/internal/timex"
)

// jsonConfig is a DTO used only for unmarshalling. Pointer fields tell a
// missing key apart from a zero value.
type jsonConfig struct {
	DatabasePath     *string         `json:"database_path"`
	SessionNamespace *string         `json:"session_namespace"`
	SessionSecret    *string         `json:"session_secret"`
	SessionTTL       *timex.Duration `json:"session_ttl"`
	AuthDelay        *timex.Duration `json:"auth_delay"`
	SeedFile         *string         `json:"seed_file"`
	LogLevel         *string         `json:"log_level"`
}

// parseJSON overlays cfg with the JSON file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.SessionNamespace, jc.SessionNamespace)
	setString(&cfg.SessionSecret, jc.SessionSecret)
	setString(&cfg.SeedFile, jc.SeedFile)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.AuthDelay != nil {
		cfg.AuthDelay = jc.AuthDelay.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
