package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MustafaTaha09/Complaint-System/internal/models"
)

type Config struct {
	HTTP_ADDR string
	LOG_LEVEL string

	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string

	KAFKA_ADDRESS string

	JWT_PRIVATE_KEY_PATH      string
	JWT_PUBLIC_KEY_PATH       string
	JWT_EXPIRATION_MS         int64
	JWT_REFRESH_EXPIRATION_MS int64
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_ADDR:                 getDefault("HTTP_ADDR", ":8080"),
		LOG_LEVEL:                 getDefault("LOG_LEVEL", "info"),
		DB_HOST:                   os.Getenv("DB_HOST"),
		DB_PORT:                   os.Getenv("DB_PORT"),
		DB_USER:                   os.Getenv("DB_USER"),
		DB_PASSWORD:               os.Getenv("DB_PASSWORD"),
		DB_NAME:                   os.Getenv("DB_NAME"),
		ES_URL:                    os.Getenv("ES_URL"),
		ES_USER:                   os.Getenv("ES_USER"),
		ES_PASSWORD:               os.Getenv("ES_PASSWORD"),
		KAFKA_ADDRESS:             os.Getenv("KAFKA_ADDRESS"),
		JWT_PRIVATE_KEY_PATH:      os.Getenv("JWT_PRIVATE_KEY_PATH"),
		JWT_PUBLIC_KEY_PATH:       os.Getenv("JWT_PUBLIC_KEY_PATH"),
		JWT_EXPIRATION_MS:         getMillis("JWT_EXPIRATION_MS", 15*60*1000),
		JWT_REFRESH_EXPIRATION_MS: getMillis("JWT_REFRESH_EXPIRATION_MS", 7*24*60*60*1000),
	}

	if config.JWT_REFRESH_EXPIRATION_MS <= config.JWT_EXPIRATION_MS {
		return nil, fmt.Errorf("JWT_REFRESH_EXPIRATION_MS must be greater than JWT_EXPIRATION_MS")
	}

	return config, nil
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWT_EXPIRATION_MS) * time.Millisecond
}

func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.JWT_REFRESH_EXPIRATION_MS) * time.Millisecond
}

func getDefault(env, def string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

func getMillis(env string, def int64) int64 {
	v := os.Getenv(env)
	if v == "" {
		return def
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil || ms <= 0 {
		log.Fatalf("invalid %s: %q", env, v)
	}
	return ms
}

func InitDB(c *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(
		&models.Role{},
		&models.Department{},
		&models.User{},
		&models.RefreshToken{},
		&models.TicketStatus{},
		&models.Ticket{},
		&models.Comment{},
		&models.TicketAssignment{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}
