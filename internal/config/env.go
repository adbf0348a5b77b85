package config

import (
	"fmt"
	"os"
	"strconv"
)

// envVarPrefix is the prefix for all gdsinspect environment variables.
const envVarPrefix = "GDSINSPECT_"

// LoadFromEnv applies environment variable overrides to cfg.
func LoadFromEnv(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if v := os.Getenv(envVarPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(envVarPrefix + "FORMAT"); v != "" {
		cfg.Format = OutputFormat(v)
	}
	if v := os.Getenv(envVarPrefix + "COLOR"); v != "" {
		cfg.Color = v
	}
	if err := envInt("JOBS", &cfg.Jobs); err != nil {
		return err
	}
	return envInt("MAX_DEPTH", &cfg.MaxDepth)
}

func envInt(suffix string, dst *int) error {
	name := envVarPrefix + suffix
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid integer for %s: %q", name, v)
	}
	*dst = i
	return nil
}

// ListEnvVars returns the supported environment variables with descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"GDSINSPECT_LOG_LEVEL": "Log level: debug, info, warn or error",
		"GDSINSPECT_FORMAT":    "Output format: text, json or yaml",
		"GDSINSPECT_COLOR":     "Colorize output: auto, always or never",
		"GDSINSPECT_JOBS":      "Number of files processed concurrently (0 = auto)",
		"GDSINSPECT_MAX_DEPTH": "Maximum depth printed by tree (0 = unlimited)",
	}
}
