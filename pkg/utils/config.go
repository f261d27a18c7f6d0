package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	JWT       JWTConfig
	Google    GoogleConfig
	Redis     RedisConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Pricing   PricingConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	CORSOrigins []string
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

type DatabaseConfig struct {
	Driver         string // "postgres" or "mongo"
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	SSLMode        string
	MaxConns       int32
	MigrateOnStart bool
}

type MongoConfig struct {
	URI      string
	Database string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type GoogleConfig struct {
	ClientID string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type StorageConfig struct {
	Driver      string // "local" or "s3"
	LocalRoot   string
	URL         string
	MaxUploadMB int64
	S3          S3Config
}

type S3Config struct {
	Bucket   string
	Region   string
	Key      string
	Secret   string
	Endpoint string
	URL      string
}

type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

// PricingConfig holds the per-service booking surcharge table.
type PricingConfig struct {
	Food           float64
	Accommodation  float64
	Transportation float64
	GuidedTours    float64
}

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// LoadConfig reads an optional .env file, then lets environment variables override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	setDefaults(v)

	if _, err := os.Stat(".env"); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	v.AutomaticEnv()

	return buildConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "travel-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("CORS_ORIGINS", "*")

	v.SetDefault("SERVER_READ_HEADER_TIMEOUT_SECONDS", 5)
	v.SetDefault("SERVER_READ_TIMEOUT_SECONDS", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT_SECONDS", 30)
	v.SetDefault("SERVER_IDLE_TIMEOUT_SECONDS", 60)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("MIGRATE_ON_START", false)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "travel_booking")

	v.SetDefault("JWT_EXPIRY_HOURS", 24)

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL_SECONDS", 300)

	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_LOCAL_ROOT", "uploads")
	v.SetDefault("STORAGE_URL", "/uploads")
	v.SetDefault("UPLOAD_MAX_MB", 5)
	v.SetDefault("S3_REGION", "us-east-1")

	v.SetDefault("AUTH_RATE_PER_SECOND", 5)
	v.SetDefault("AUTH_RATE_BURST", 10)

	v.SetDefault("SURCHARGE_FOOD", 500)
	v.SetDefault("SURCHARGE_ACCOMMODATION", 500)
	v.SetDefault("SURCHARGE_TRANSPORTATION", 500)
	v.SetDefault("SURCHARGE_GUIDED_TOURS", 500)
}

func buildConfig(v *viper.Viper) (*Config, error) {
	seconds := func(key string) time.Duration {
		return time.Duration(v.GetInt(key)) * time.Second
	}

	config := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Port:        v.GetString("PORT"),
			Debug:       v.GetBool("DEBUG"),
			LogPath:     v.GetString("LOG_PATH"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Server: ServerConfig{
			ReadHeaderTimeout: seconds("SERVER_READ_HEADER_TIMEOUT_SECONDS"),
			ReadTimeout:       seconds("SERVER_READ_TIMEOUT_SECONDS"),
			WriteTimeout:      seconds("SERVER_WRITE_TIMEOUT_SECONDS"),
			IdleTimeout:       seconds("SERVER_IDLE_TIMEOUT_SECONDS"),
			ShutdownTimeout:   seconds("SHUTDOWN_TIMEOUT_SECONDS"),
		},
		Database: DatabaseConfig{
			Driver:         strings.ToLower(v.GetString("DB_DRIVER")),
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			Name:           v.GetString("DB_NAME"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASS"),
			SSLMode:        v.GetString("DB_SSLMODE"),
			MaxConns:       v.GetInt32("DB_MAX_CONNS"),
			MigrateOnStart: v.GetBool("MIGRATE_ON_START"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DB"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Google: GoogleConfig{
			ClientID: v.GetString("GOOGLE_CLIENT_ID"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      seconds("CACHE_TTL_SECONDS"),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
			LocalRoot:   v.GetString("STORAGE_LOCAL_ROOT"),
			URL:         v.GetString("STORAGE_URL"),
			MaxUploadMB: v.GetInt64("UPLOAD_MAX_MB"),
			S3: S3Config{
				Bucket:   v.GetString("S3_BUCKET"),
				Region:   v.GetString("S3_REGION"),
				Key:      v.GetString("S3_KEY"),
				Secret:   v.GetString("S3_SECRET"),
				Endpoint: v.GetString("S3_ENDPOINT"),
				URL:      v.GetString("S3_URL"),
			},
		},
		RateLimit: RateLimitConfig{
			PerSecond: v.GetFloat64("AUTH_RATE_PER_SECOND"),
			Burst:     v.GetInt("AUTH_RATE_BURST"),
		},
		Pricing: PricingConfig{
			Food:           v.GetFloat64("SURCHARGE_FOOD"),
			Accommodation:  v.GetFloat64("SURCHARGE_ACCOMMODATION"),
			Transportation: v.GetFloat64("SURCHARGE_TRANSPORTATION"),
			GuidedTours:    v.GetFloat64("SURCHARGE_GUIDED_TOURS"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
