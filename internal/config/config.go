// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/certprep/internal/llm"
)

// Config is the process configuration.
type Config struct {
	DBPath      string
	HTTPAddr    string
	LogMode     string
	RedisAddr   string
	CORSOrigins []string

	EvalMaxAttempts int
	QuestionCount   int
	GinMode         string

	LLM llm.Config
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		HTTPAddr:        ":8080",
		LogMode:         "dev",
		CORSOrigins:     []string{"*"},
		EvalMaxAttempts: 3,
		QuestionCount:   5,
		GinMode:         "release",
		LLM:             llm.DefaultConfig(),
	}
}

// Load reads envFiles (".env" when none are given) into the environment
// without overriding variables that are already set, then builds the
// config. Missing files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds the config from CERTPREP_* variables.
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.DBPath = os.Getenv("CERTPREP_DB")
	cfg.HTTPAddr = getEnvOrDefault("CERTPREP_HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogMode = getEnvOrDefault("CERTPREP_LOG_MODE", cfg.LogMode)
	cfg.RedisAddr = os.Getenv("CERTPREP_REDIS_ADDR")
	cfg.GinMode = getEnvOrDefault("GIN_MODE", cfg.GinMode)

	if v := os.Getenv("CERTPREP_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	var err error
	if cfg.EvalMaxAttempts, err = getIntOrDefault("CERTPREP_EVAL_MAX_ATTEMPTS", cfg.EvalMaxAttempts); err != nil {
		return Config{}, err
	}
	if cfg.QuestionCount, err = getIntOrDefault("CERTPREP_QUESTION_COUNT", cfg.QuestionCount); err != nil {
		return Config{}, err
	}

	// An unusable LLM setup is reported when a provider is built, not here,
	// so commands that never call the model still work.
	if resolved, err := llm.ResolveConfig(); err == nil {
		cfg.LLM = resolved
	} else {
		cfg.LLM = llm.ConfigFromEnv()
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
