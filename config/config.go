package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	TokenTTLMinutes   int    `mapstructure:"TOKEN_TTL_MINUTES"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	// TrustedProxies is a comma-separated list of proxy IPs/CIDRs allowed to
	// set X-Forwarded-For. Empty trusts none.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking lock backend: "local" (single instance) or "redis".
	BookingLock           string `mapstructure:"BOOKING_LOCK"`
	BookingLockTTLSeconds int    `mapstructure:"BOOKING_LOCK_TTL_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if AppConfig.JWTSecret == "" {
		if IsProduction() {
			log.Fatal("JWT_SECRET is required in production")
		}
		log.Println("JWT_SECRET not set, using an insecure development secret")
		AppConfig.JWTSecret = "unisched-dev-secret"
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "unisched")
	v.SetDefault("ENV", "development")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL_MINUTES", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("TRUSTED_PROXIES", []string{})
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_AUTH_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("BOOKING_LOCK", "local")
	v.SetDefault("BOOKING_LOCK_TTL_SECONDS", 10)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// TokenTTL is the lifetime of issued access tokens.
func TokenTTL() time.Duration {
	if AppConfig.TokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(AppConfig.TokenTTLMinutes) * time.Minute
}

// BookingLockTTL bounds how long a distributed room lock may be held.
func BookingLockTTL() time.Duration {
	if AppConfig.BookingLockTTLSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(AppConfig.BookingLockTTLSeconds) * time.Second
}
