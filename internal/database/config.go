package database

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"fintrack/internal/logger"
)

// Config holds database connection settings.
type Config struct {
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxIdleConns int
	MaxOpenConns int
}

// NewConfig loads database settings from the environment, reading a .env
// file first when one exists.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug("no .env file found, using environment variables")
	}

	return &Config{
		Host:         getEnv("DB_HOST", "localhost"),
		Port:         getEnv("DB_PORT", "5432"),
		User:         getEnv("DB_USER", "fintrack"),
		Password:     getEnv("DB_PASSWORD", "fintrack"),
		DBName:       getEnv("DB_NAME", "fintrack"),
		SSLMode:      getEnv("DB_SSLMODE", "disable"),
		MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 10),
		MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 100),
	}, nil
}

// DSN returns the keyword/value PostgreSQL connection string used by GORM.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the postgres:// connection URL used by golang-migrate.
func (c *Config) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
