package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	Env        string
	Location   *time.Location
	LateCutoff string // HH:MM; check-ins strictly after it are late

	StoreDriver string
	SQLitePath  string
	PostgresDSN string
	MongoURI    string
	MongoDB     string

	BlobDriver      string
	BlobFSRoot      string
	BlobS3Bucket    string
	BlobS3Region    string
	BlobS3Endpoint  string
	BlobS3PathStyle bool
	BlobS3AccessKey string
	BlobS3SecretKey string

	JWTSecret string
	JWTTTL    time.Duration

	DefaultLocale       string
	SeedDemoData        bool
	AttendanceCloseCron string

	MattermostURL       string
	MattermostBotToken  string
	MattermostChannelID string
}

// Load reads configuration from the environment, after loading .env if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	tzName := getEnv("TZ_NAME", "Asia/Seoul")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", tzName, err)
	}
	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("parse JWT_TTL: %w", err)
	}

	cfg := &Config{
		Port:       getEnv("PORT", "3000"),
		Env:        getEnv("ENV", "development"),
		Location:   loc,
		LateCutoff: getEnv("LATE_CUTOFF", "09:00"),

		StoreDriver: getEnv("STORE_DRIVER", "memory"),
		SQLitePath:  getEnv("SQLITE_PATH", "data/hr-portal.db"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),
		MongoURI:    getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGODB_DATABASE", "hr_portal"),

		BlobDriver:      getEnv("BLOB_DRIVER", "memory"),
		BlobFSRoot:      getEnv("BLOB_FS_ROOT", "data/blobs"),
		BlobS3Bucket:    getEnv("BLOB_S3_BUCKET", ""),
		BlobS3Region:    getEnv("BLOB_S3_REGION", "us-east-1"),
		BlobS3Endpoint:  getEnv("BLOB_S3_ENDPOINT", ""),
		BlobS3PathStyle: getBool("BLOB_S3_PATH_STYLE", false),
		BlobS3AccessKey: getEnv("BLOB_S3_ACCESS_KEY_ID", ""),
		BlobS3SecretKey: getEnv("BLOB_S3_SECRET_ACCESS_KEY", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    ttl,

		DefaultLocale:       getEnv("DEFAULT_LOCALE", "ko"),
		SeedDemoData:        getBool("SEED_DEMO_DATA", false),
		AttendanceCloseCron: getEnv("ATTENDANCE_CLOSE_CRON", "0 55 23 * * 1-5"),

		MattermostURL:       strings.TrimRight(getEnv("MATTERMOST_URL", ""), "/"),
		MattermostBotToken:  getEnv("MATTERMOST_BOT_TOKEN", ""),
		MattermostChannelID: getEnv("MATTERMOST_CHANNEL_ID", ""),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret"
		log.Printf("config: JWT_SECRET not set, using development secret")
	}
	return cfg, nil
}

// NotificationsEnabled reports whether Mattermost notifications are configured.
func (c *Config) NotificationsEnabled() bool {
	return c.MattermostURL != "" && c.MattermostBotToken != "" && c.MattermostChannelID != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return v
}
