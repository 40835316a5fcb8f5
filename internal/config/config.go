// Package config loads application settings from the environment and owns
// the process-wide logger.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr       = ":5000"
	DefaultCORSOrigin = "*"
)

// Settings holds the server-level configuration. Provider settings live in
// llm.Config.
type Settings struct {
	Addr       string
	DBPath     string // "" = resolve with store.DefaultDBPath
	EventLog   bool
	LogLevel   string
	LogFormat  string // "text" or "json"
	CORSOrigin string
}

// LoadDotEnv reads a .env file into the process environment if one exists.
// Variables already set in the environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load %v: %w", present, err)
	}
	return nil
}

// Load builds Settings from environment variables, falling back to
// defaults for unset values.
func Load() (Settings, error) {
	s := Settings{
		Addr:       DefaultAddr,
		EventLog:   true,
		LogLevel:   "info",
		LogFormat:  "text",
		CORSOrigin: DefaultCORSOrigin,
	}

	if v := os.Getenv("EDUAI_ADDR"); v != "" {
		s.Addr = v
	}
	s.DBPath = os.Getenv("EDUAI_DB")
	if v := os.Getenv("EDUAI_EVENT_LOG"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return Settings{}, fmt.Errorf("parse EDUAI_EVENT_LOG: %w", err)
		}
		s.EventLog = on
	}
	if v := os.Getenv("EDUAI_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("EDUAI_LOG_FORMAT"); v != "" {
		if v != "text" && v != "json" {
			return Settings{}, fmt.Errorf("EDUAI_LOG_FORMAT must be text or json, got %q", v)
		}
		s.LogFormat = v
	}
	if v := os.Getenv("EDUAI_CORS_ORIGIN"); v != "" {
		s.CORSOrigin = v
	}

	return s, nil
}
