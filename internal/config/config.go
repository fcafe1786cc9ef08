package config

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	pkgconfig "github.com/Skotchmaster/snake_catalogue/pkg/config"
)

const DefaultAccessTokenTTL = 30 * time.Minute

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string
}

func (c S3Config) Enabled() bool { return c.Endpoint != "" && c.Bucket != "" }

type ESConfig struct {
	URL      string
	User     string
	Password string
	Index    string
}

func (c ESConfig) Enabled() bool { return c.URL != "" }

type Config struct {
	Port           string
	LogLevel       string
	DBDriver       string
	DatabaseURL    string
	JWTSecret      []byte
	AccessTokenTTL time.Duration
	BcryptCost     int
	AllowOrigins   []string
	ForceHTTPS     bool
	KafkaBrokers   []string
	S3             S3Config
	ES             ESConfig
}

// Load reads .env when present and then the process environment.
// A missing JWT_SECRET or DATABASE_URL is an error.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("cannot read .env, using process environment", "error", err)
	}
	return fromEnv()
}

// LoadDatabase reads only the database settings, for tools that do not
// serve HTTP.
func LoadDatabase() (driver, dsn string, err error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("cannot read .env, using process environment", "error", err)
	}
	driver = pkgconfig.EnvDefault("DB_DRIVER", "postgres")
	dsn = os.Getenv("DATABASE_URL")
	if err := pkgconfig.Require(dsn, "DATABASE_URL"); err != nil {
		return "", "", err
	}
	return driver, dsn, nil
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port:           pkgconfig.EnvDefault("SERVER_PORT", "8080"),
		LogLevel:       pkgconfig.EnvDefault("LOG_LEVEL", "info"),
		DBDriver:       pkgconfig.EnvDefault("DB_DRIVER", "postgres"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		AccessTokenTTL: pkgconfig.EnvDurationDefault("ACCESS_TOKEN_TTL", DefaultAccessTokenTTL),
		BcryptCost:     pkgconfig.EnvIntDefault("BCRYPT_COST", 0),
		AllowOrigins:   pkgconfig.CSV(pkgconfig.EnvDefault("CORS_ALLOW_ORIGINS", "*")),
		ForceHTTPS:     pkgconfig.EnvBoolDefault("FORCE_HTTPS", false),
		KafkaBrokers:   pkgconfig.CSV(os.Getenv("KAFKA_BROKERS")),
		S3: S3Config{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    pkgconfig.EnvDefault("S3_REGION", "us-east-1"),
			Bucket:    os.Getenv("S3_BUCKET"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			PublicURL: os.Getenv("S3_PUBLIC_URL"),
		},
		ES: ESConfig{
			URL:      os.Getenv("ES_URL"),
			User:     os.Getenv("ES_USER"),
			Password: os.Getenv("ES_PASSWORD"),
			Index:    pkgconfig.EnvDefault("ES_INDEX", "snakes"),
		},
	}

	if err := pkgconfig.RequireBytes(cfg.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := pkgconfig.Require(cfg.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}
	if cfg.S3.PublicURL == "" {
		cfg.S3.PublicURL = cfg.S3.Endpoint
	}
	return cfg, nil
}
