package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		name     string
		args     []string
		expected func() *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-d", "/tmp/s.db", "-k", "k3y", "-t", "60", "-w", "0", "-u", "users.yaml", "-l", "debug"},
			expected: func() *Config {
				c := base()
				c.DatabasePath = "/tmp/s.db"
				c.SessionSecret = "k3y"
				c.SessionTTL = time.Minute
				c.AuthDelay = 0
				c.SeedFile = "users.yaml"
				c.LogLevel = "debug"
				return c
			},
		},
		{
			name:     "unrelated args ignored",
			args:     []string{"-c", "cfg.json", "positional"},
			expected: base,
		},
		{
			name: "explicit zero durations",
			args: []string{"-t", "0", "-w", "0"},
			expected: func() *Config {
				c := base()
				c.SessionTTL = 0
				c.AuthDelay = 0
				return c
			},
		},
		{
			name:    "ttl not a number",
			args:    []string{"-t", "abc"},
			wantErr: true,
		},
		{
			name:    "negative delay",
			args:    []string{"-w", "-5"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected(), cfg))
		})
	}
}

func TestParseFlags_UnsetDurationsKeepPrecision(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.SessionTTL = 1500 * time.Millisecond
	cfg.AuthDelay = 250500 * time.Microsecond

	require.NoError(t, parseFlags(cfg, []string{"-d", "x.db"}))
	assert.Equal(t, 1500*time.Millisecond, cfg.SessionTTL)
	assert.Equal(t, 250500*time.Microsecond, cfg.AuthDelay)
}
