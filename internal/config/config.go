package config

import (
	"os"
	"strconv"
	"time"
)

// Config clinicdesk client configuration.
type Config struct {
	API struct {
		BaseURL  string
		Timeout  time.Duration
		Token    string // pre-issued bearer token, optional
		Username string // when set, a login is performed at startup
		Password string
	}
	Log struct {
		Level  string
		Format string
	}
	Export struct {
		Dir       string
		PatientID string // when set, the startup flow exports this patient's grid
	}
}

func Load() *Config {
	cfg := &Config{}

	cfg.API.BaseURL = getEnv("CLINIC_API_URL", "http://localhost:8080")
	cfg.API.Timeout = time.Duration(parseInt(getEnv("CLINIC_API_TIMEOUT_SECONDS", "30"), 30)) * time.Second
	cfg.API.Token = getEnv("CLINIC_API_TOKEN", "")
	cfg.API.Username = getEnv("CLINIC_API_USERNAME", "")
	cfg.API.Password = getEnv("CLINIC_API_PASSWORD", "")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Export.Dir = getEnv("CLINIC_EXPORT_DIR", ".")
	cfg.Export.PatientID = getEnv("CLINIC_EXPORT_PATIENT", "")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
