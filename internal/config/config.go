// ABOUTME: Configuration loader for the hackctl client
// ABOUTME: Reads .env and environment variables, then derives the backend base URL

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/saarthix/hackctl/internal/store"
)

// DefaultAPIURL is used when neither an API URL nor an app URL is configured
const DefaultAPIURL = "http://localhost:8080"

type Config struct {
	// Backend
	APIURL   string        // resolved backend base URL
	AppURL   string        // URL the web front end is served from (optional)
	BasePath string        // route prefix the app is mounted under, "/" at the root
	Timeout  time.Duration // per-request timeout (default 30s)

	// Local state
	ConfigDir    string // where the token store and debug log live
	StoreBackend string // file or sqlite (default file)
}

// Load reads .env files (missing files are ignored) and the environment.
// Variables already set in the environment win over .env values.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		AppURL:       os.Getenv("HACKCTL_APP_URL"),
		Timeout:      time.Duration(getEnvInt("HACKCTL_TIMEOUT", 30)) * time.Second,
		ConfigDir:    getEnv("HACKCTL_CONFIG_DIR", store.DefaultConfigDir()),
		StoreBackend: getEnv("HACKCTL_STORE", store.BackendFile),
	}

	cfg.APIURL = os.Getenv("HACKCTL_API_URL")
	if cfg.APIURL == "" {
		cfg.APIURL = ResolveBaseURL(cfg.AppURL)
	}
	cfg.APIURL = strings.TrimRight(ensureScheme(cfg.APIURL), "/")

	cfg.BasePath = getEnv("HACKCTL_BASENAME", DeriveBasePath(cfg.AppURL))

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("HACKCTL_TIMEOUT must be positive")
	}
	if cfg.StoreBackend != store.BackendFile && cfg.StoreBackend != store.BackendSQLite {
		return nil, fmt.Errorf("HACKCTL_STORE must be %s or %s, got %q", store.BackendFile, store.BackendSQLite, cfg.StoreBackend)
	}
	if cfg.ConfigDir == "" {
		return nil, fmt.Errorf("cannot determine config directory; set HACKCTL_CONFIG_DIR")
	}

	return cfg, nil
}

// loadDotEnv loads ./.env and then the config directory's .env
func loadDotEnv() {
	paths := []string{".env"}
	if dir := os.Getenv("HACKCTL_CONFIG_DIR"); dir != "" {
		paths = append(paths, filepath.Join(dir, ".env"))
	} else if dir := store.DefaultConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, ".env"))
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("Ignoring unreadable env file", "path", p, "error", err)
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// ensureScheme adds http:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}
