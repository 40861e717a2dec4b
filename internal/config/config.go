package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries every collaborator-level setting. Nothing in here is
// consulted by the analysis core after construction.
type Config struct {
	Addr string

	MaxUploadBytes int64
	MinImageSide   int
	MaxProcessSide int

	// AllowDebug lets clients request the raw feature dump in responses.
	AllowDebug bool
	// SimulatedConfidence reproduces the first revision's randomized
	// confidence. Off by default.
	SimulatedConfidence bool

	// Development switches logging to the console encoder.
	Development bool

	// JWTSecret enables bearer authentication on the analysis route when
	// non-empty.
	JWTSecret   string
	JWTAudience string

	// CORSOrigins defaults to allow-all, matching the original deployment.
	CORSOrigins []string
}

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:                getEnv("LISTEN_ADDR", ":8080"),
		MaxUploadBytes:      int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		MinImageSide:        getEnvInt("MIN_IMAGE_SIDE", 50),
		MaxProcessSide:      getEnvInt("MAX_PROCESS_SIDE", 1024),
		AllowDebug:          getEnvBool("ALLOW_DEBUG", true),
		SimulatedConfidence: getEnvBool("SIMULATED_CONFIDENCE", false),
		Development:         getEnvBool("DEVELOPMENT", false),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTAudience:         os.Getenv("JWT_AUDIENCE"),
		CORSOrigins:         getEnvList("CORS_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}
