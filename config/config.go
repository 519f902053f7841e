package config

import (
	"fmt"
	"strings"
	"time"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StorageSupabase = "supabase"
)

// LLM backends
const (
	BackendREST = "rest"
	BackendSDK  = "sdk"
)

// Settings holds the process configuration. The API key is deliberately not
// part of it, see APIKey.
type Settings struct {
	Port            string
	AllowedOrigins  []string
	StorageDriver   string
	DBPath          string
	SupabaseURL     string
	SupabaseKey     string
	LLMBackend      string
	Model           string
	PromptsFile     string
	UpstreamTimeout time.Duration
	LogLevel        string
}

// Load reads Settings from the environment and validates them.
func Load() (*Settings, error) {
	s := &Settings{
		Port:            getEnv("PORT", "8080"),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		StorageDriver:   strings.ToLower(getEnv("STORAGE_DRIVER", StorageSQLite)),
		DBPath:          getEnv("DB_PATH", "./data/edu-copilot.db"),
		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseKey:     getEnv("SUPABASE_KEY", ""),
		LLMBackend:      strings.ToLower(getEnv("LLM_BACKEND", BackendREST)),
		Model:           getEnv("AI_MODEL", "gemini-2.0-flash-exp"),
		PromptsFile:     getEnv("PROMPTS_FILE", ""),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 0),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	if s.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	switch s.StorageDriver {
	case StorageMemory:
	case StorageSQLite:
		if s.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty with the sqlite driver")
		}
	case StorageSupabase:
		if s.SupabaseURL == "" || s.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required with the supabase driver")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", s.StorageDriver)
	}
	switch s.LLMBackend {
	case BackendREST, BackendSDK:
	default:
		return fmt.Errorf("unsupported LLM_BACKEND %q", s.LLMBackend)
	}
	if s.Model == "" {
		return fmt.Errorf("AI_MODEL cannot be empty")
	}
	if s.UpstreamTimeout < 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be >= 0")
	}
	return nil
}
