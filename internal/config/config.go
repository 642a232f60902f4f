package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort       string
	PostgresDSN    string
	JWTSecret      string
	GoogleClientID string
	RedisAddr      string
	UploadDir      string
	AccessTokenTTL time.Duration
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnMaxIdle  time.Duration
	DBConnMaxLife  time.Duration
	RequestTimeout time.Duration
}

const envFile = ".env"

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		PostgresDSN:    getEnv("DATABASE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		AccessTokenTTL: getDuration("ACCESS_TOKEN_TTL", time.Hour),
		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:  getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:  getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		secret, err := bootstrapSecret(envFile)
		if err != nil {
			log.Fatalf("failed to bootstrap JWT_SECRET: %v", err)
		}
		cfg.JWTSecret = secret
		log.Println("generated new JWT_SECRET and persisted it to " + envFile)
	}

	return cfg
}

// bootstrapSecret generates a signing secret once and appends it to the env file
// so later process runs keep verifying previously issued tokens.
func bootstrapSecret(path string) (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	secret := hex.EncodeToString(buf)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return "", err
	}
	defer file.Close()
	if _, err := fmt.Fprintf(file, "\nJWT_SECRET=%s\n", secret); err != nil {
		return "", err
	}
	if err := os.Setenv("JWT_SECRET", secret); err != nil {
		return "", err
	}
	return secret, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
