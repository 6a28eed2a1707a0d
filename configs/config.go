package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       int
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBNameTest string
	RedisHost  string
	RedisPort  int
	JWTSecret  string
	TokenTTL   time.Duration
}

func LoadConfig() Config {
	// Load the .env file if present
	if err := godotenv.Load(); err != nil {
		// Only log outside test mode
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	return Config{
		Port:       envInt("PORT", 3004),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envInt("DB_PORT", 5432),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBNameTest: os.Getenv("DB_NAME_TEST"),
		RedisHost:  os.Getenv("REDIS_HOST"),
		RedisPort:  envInt("REDIS_PORT", 6379),
		JWTSecret:  envStr("JWT_SECRET", "secret"),
		TokenTTL:   time.Duration(envInt("TOKEN_TTL_MINUTES", 60)) * time.Minute,
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
