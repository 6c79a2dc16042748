package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const stateDirName = ".hover_reader"

type Config struct {
	StartURL       string
	Headless       bool
	SlowMoMs       float64
	ViewportWidth  int
	ViewportHeight int
	StickyHover    bool
	ScanRoot       string
	StateDir       string
	LogLevel       logrus.Level
}

// Load - reads configuration from .env (optional) and the environment
func Load() (*Config, error) {
	envPaths := []string{".env"}
	if execPath, err := os.Executable(); err == nil {
		envPaths = append(envPaths, filepath.Join(filepath.Dir(execPath), ".env"))
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, err
			}
			break
		}
	}

	level, err := logrus.ParseLevel(getEnvWithDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	stateDir := os.Getenv("HOVER_READER_STATE_DIR")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		stateDir = filepath.Join(homeDir, stateDirName)
	}

	return &Config{
		StartURL:       os.Getenv("START_URL"),
		Headless:       getBool("BROWSER_HEADLESS", false),
		SlowMoMs:       getFloat("BROWSER_SLOWMO_MS", 0),
		ViewportWidth:  getInt("VIEWPORT_WIDTH", 1280),
		ViewportHeight: getInt("VIEWPORT_HEIGHT", 720),
		StickyHover:    getBool("HOVER_STICKY", false),
		ScanRoot:       os.Getenv("SCAN_ROOT"),
		StateDir:       stateDir,
		LogLevel:       level,
	}, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64); err == nil && v >= 0 {
		return v
	}
	return defaultValue
}
