package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/fortress/internal/flagx"
)

var knownFlags = []string{"-d", "-k", "-t", "-w", "-u", "-l"}

// parseFlags populates cfg from the flags listed in the package doc. Values
// already in cfg are the defaults. Unrelated arguments are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("fortress", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the session database")
	fs.StringVar(&cfg.SessionSecret, "k", cfg.SessionSecret, "session token signing secret")
	ttl := fs.Int("t", int(cfg.SessionTTL.Seconds()), "session lifetime (in seconds, 0 = no expiry)")
	delay := fs.Int("w", int(cfg.AuthDelay.Milliseconds()), "simulated auth latency (in milliseconds)")
	fs.StringVar(&cfg.SeedFile, "u", cfg.SeedFile, "YAML file with seed users")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *ttl < 0 || *delay < 0 {
		return errors.New("parse flags: durations must not be negative")
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.SessionTTL = time.Duration(*ttl) * time.Second
		case "w":
			cfg.AuthDelay = time.Duration(*delay) * time.Millisecond
		}
	})
	return nil
}
