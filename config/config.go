package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via the environment.
type AppConfig struct {
	AppEnv  string
	AppPort string
	AppHost string

	JWTSecret string

	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectBase  string
	FrontendURL        string

	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	RateLimitPerMinute int
	AllowedOrigins     []string

	UploadDir       string
	UploadMaxSizeMB int

	GinMode string
	GinPath string

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load reads configuration from the environment. It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	// .env is optional and never overrides already-exported variables.
	_ = godotenv.Load()

	cfg = AppConfig{
		AppEnv:  getEnv("APP_ENV", "development"),
		AppPort: getEnv("APP_PORT", "8080"),
		AppHost: getEnv("APP_HOST", "0.0.0.0"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		DatabaseURI: os.Getenv("DATABASE_URI"),
		DBHost:      getEnv("DB_HOST", "127.0.0.1"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "pronet"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		OAuthRedirectBase:  getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     intEnv("REDIS_PORT", 6379),
		RedisDB:       intEnv("REDIS_DB", 0),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		RateLimitPerMinute: intEnv("RATE_LIMIT_PER_MINUTE", 60),
		AllowedOrigins:     listEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),

		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		UploadMaxSizeMB: intEnv("UPLOAD_MAX_SIZE_MB", 50),

		GinMode: getEnv("GIN_MODE", "release"),
		GinPath: getEnv("GIN_LOG_PATH", "logs/gin.log"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogPath:       getEnv("LOG_PATH", "logs/pronet.log"),
		LogMaxSizeMB:  intEnv("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: intEnv("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: intEnv("LOG_MAX_AGE_DAYS", 7),
		LogCompress:   boolEnv("LOG_COMPRESS", false),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// IsProduction reports whether the app runs with production settings.
func (c AppConfig) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func intEnv(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("invalid integer value for %s: %v", key, err)
	}
	return i
}

func boolEnv(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

func listEnv(key string, defaults []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaults
	}
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return defaults
	}
	return items
}
