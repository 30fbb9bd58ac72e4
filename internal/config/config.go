package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port      string
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Auth
	AdminPassword     string
	JWTSecret         string
	SessionTTLMinutes string // minutes

	// Roster persistence
	StoreDriver string // memory | file | postgres | redis | s3
	StoreKey    string
	DataDir     string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    string

	NoticeTTLSeconds string

	SubjectsFile string
	Subjects     []string
}

// Load reads the environment. Call godotenv.Load first if a .env file should
// be honoured.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getenv("PORT", "8080"),
		AppEnv:            getenv("APP_ENV", "development"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogFormat:         getenv("LOG_FORMAT", "json"),
		AdminPassword:     getenv("ADMIN_PASSWORD", "12345678910"),
		JWTSecret:         getenv("JWT_SECRET", "supersecret_change_me"),
		SessionTTLMinutes: getenv("SESSION_TTL_MINUTES", "120"),
		StoreDriver:       getenv("STORE_DRIVER", "file"),
		StoreKey:          getenv("STORE_KEY", "studentData"),
		DataDir:           getenv("DATA_DIR", "./data"),
		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBUser:            getenv("DB_USER", "postgres"),
		DBPassword:        getenv("DB_PASSWORD", "postgres"),
		DBName:            getenv("DB_NAME", "evaluasi_db"),
		DBSSLMode:         getenv("DB_SSLMODE", "disable"),
		RedisAddr:         getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getenv("REDIS_PASSWORD", ""),
		RedisDB:           getenv("REDIS_DB", "0"),
		S3Endpoint:        getenv("S3_ENDPOINT", ""),
		S3Region:          getenv("S3_REGION", "us-east-1"),
		S3Bucket:          getenv("S3_BUCKET", "evaluasi"),
		S3AccessKey:       getenv("S3_ACCESS_KEY", ""),
		S3SecretKey:       getenv("S3_SECRET_KEY", ""),
		S3UseSSL:          getenv("S3_USE_SSL", "true"),
		NoticeTTLSeconds:  getenv("NOTICE_TTL_SECONDS", "3"),
		SubjectsFile:      getenv("SUBJECTS_FILE", ""),
	}

	subjects, err := LoadSubjects(cfg.SubjectsFile)
	if err != nil {
		return nil, err
	}
	cfg.Subjects = subjects
	return cfg, nil
}

// SessionTTL falls back to two hours on a malformed value.
func (c *Config) SessionTTL() time.Duration {
	d, err := time.ParseDuration(c.SessionTTLMinutes + "m")
	if err != nil || d <= 0 {
		return 120 * time.Minute
	}
	return d
}

func (c *Config) NoticeTTL() time.Duration {
	d, err := time.ParseDuration(c.NoticeTTLSeconds + "s")
	if err != nil || d <= 0 {
		return 3 * time.Second
	}
	return d
}

func (c *Config) RedisDBIndex() int {
	n, err := strconv.Atoi(c.RedisDB)
	if err != nil {
		return 0
	}
	return n
}

func (c *Config) S3SSL() bool {
	b, err := strconv.ParseBool(c.S3UseSSL)
	if err != nil {
		return true
	}
	return b
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
