package config

import "os"

// Config holds all process configuration, read once from the environment at
// startup. The search core never reads globals; it receives what it needs
// from here.
type Config struct {
	ServerName    string // GLOSSD_SERVER_NAME
	ServerVersion string // GLOSSD_SERVER_VERSION
	GlossaryPath  string // GLOSSARY_PATH
	Model         string // GLOSSD_MODEL
	APIKey        string // OPENAI_API_KEY
	BaseURL       string // OPENAI_BASE_URL (optional, for local gateways)
	Watch         bool   // GLOSSD_WATCH: reload when the glossary file changes
	LogFile       string // GLOSSD_LOG_FILE
}

// FromEnv reads the configuration from environment variables, applying
// defaults for anything unset.
func FromEnv() Config {
	return Config{
		ServerName:    getenv("GLOSSD_SERVER_NAME", "glossd"),
		ServerVersion: getenv("GLOSSD_SERVER_VERSION", "0.1.0"),
		GlossaryPath:  getenv("GLOSSARY_PATH", "glossary.yaml"),
		Model:         getenv("GLOSSD_MODEL", "gpt-4o-mini"),
		APIKey:        os.Getenv("OPENAI_API_KEY"),
		BaseURL:       os.Getenv("OPENAI_BASE_URL"),
		Watch:         isTruthy(os.Getenv("GLOSSD_WATCH")),
		LogFile:       getenv("GLOSSD_LOG_FILE", "/tmp/glossd.log"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func isTruthy(v string) bool {
	switch v {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
