// Package config provides configuration loading and validation for the server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration groups everything the generation server needs: where
// the state directory lives, which schema and corpus files to load,
// coverage targets, and the external serializer command.
type Configuration struct {
	Host string `koanf:"host" validate:"required"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`

	StateDir         string `koanf:"state_dir" validate:"required"`
	CorpusFile       string `koanf:"corpus_file" validate:"required"`
	MasterSchemaFile string `koanf:"master_schema_file" validate:"required"`

	TargetTotalCases int `koanf:"target_total_cases" validate:"min=1"`
	// GenerationTarget zero means "derive at startup": total minus the
	// number of seed cases.
	GenerationTarget int   `koanf:"generation_target" validate:"min=0"`
	Seed             int64 `koanf:"seed"`

	// CodecCommand is the argv of the external serializer. Empty means
	// the built-in JSON codec.
	CodecCommand []string `koanf:"codec_command"`

	SigningKey string `koanf:"signing_key"`

	RateLimitPerMinute int `koanf:"rate_limit_per_minute" validate:"min=0"`
}

// GetDefaults returns the default configuration values keyed the way
// koanf expects them.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"host":                  "127.0.0.1",
		"port":                  8765,
		"state_dir":             "data/case_state",
		"corpus_file":           "data/seed_cases.jsonl",
		"master_schema_file":    "schemas/succession.schema.json",
		"target_total_cases":    5000,
		"seed":                  42,
		"rate_limit_per_minute": 120,
	}
}

// Load loads configuration from file and environment sources.
// Priority: environment variables > config file > defaults.
func Load(configPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %q: %w", key, err)
		}
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("CASEFORGE_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.GenerationTarget > cfg.TargetTotalCases {
		return nil, fmt.Errorf("config error: generation_target exceeds target_total_cases")
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)
	cfg.CorpusFile = expandHomePath(cfg.CorpusFile)
	cfg.MasterSchemaFile = expandHomePath(cfg.MasterSchemaFile)

	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: CASEFORGE_STATE_DIR -> state_dir
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "CASEFORGE_"))
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
