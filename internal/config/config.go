package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Settings are the process level options, read from the environment and an optional .env file
type Settings struct {
	// Path of a yaml file layered over the engine defaults, empty for none
	ConfigPath string
	// Path of the league preset database, empty disables presets
	DBPath string
	// Listen address of the HTTP boundary, empty serves MCP over stdio
	HTTPAddr string
	// Minimum log level name
	LogLevel string
	// 'c' console, 'f' file, 'b' both
	LogOutput string
	// Log file used by the 'f' and 'b' outputs
	LogFile string
}

// Load reads .env when present, then the LIVEXG_ variables
func Load() *Settings {
	_ = godotenv.Load()

	return &Settings{
		ConfigPath: envStr("LIVEXG_CONFIG", ""),
		DBPath:     envStr("LIVEXG_DB", "livexg.db"),
		HTTPAddr:   envStr("LIVEXG_HTTP_ADDR", ""),
		LogLevel:   envStr("LIVEXG_LOG", "info"),
		LogOutput:  envStr("LIVEXG_LOG_OUTPUT", "f"),
		LogFile:    envStr("LIVEXG_LOG_FILE", "/tmp/livexg.log"),
	}
}

func envStr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
