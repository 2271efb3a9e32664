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
	Server   ServerConfig
	Database DatabaseConfig
	Rubric   RubricConfig
	Client   ClientConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	BodyLimit   int
	CORSOrigins string
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SQLitePath string
}

type RubricConfig struct {
	Source          string
	Path            string
	Name            string
	RefreshInterval time.Duration
}

type ClientConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	RubricSourceStatic   = "static"
	RubricSourceFile     = "file"
	RubricSourceDatabase = "database"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "5000"),
			Env:         getEnv("ENV", "development"),
			BodyLimit:   getEnvAsInt("BODY_LIMIT", 1048576),
			CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "postgres"),
			DBName:     getEnv("DB_NAME", "flwts_grader"),
			SQLitePath: getEnv("SQLITE_PATH", "./flwts_grader.db"),
		},
		Rubric: RubricConfig{
			Source:          strings.ToLower(getEnv("RUBRIC_SOURCE", RubricSourceStatic)),
			Path:            getEnv("RUBRIC_PATH", "./rubrics/french_test_one.json"),
			Name:            getEnv("RUBRIC_NAME", "french-test-one"),
			RefreshInterval: getEnvAsDuration("RUBRIC_REFRESH_INTERVAL", "0s"),
		},
		Client: ClientConfig{
			BaseURL:           getEnv("GRADER_BASE_URL", "http://127.0.0.1:5000/v1"),
			Timeout:           getEnvAsDuration("CLIENT_TIMEOUT", "30s"),
			RetryMaxAttempts:  getEnvAsInt("RETRY_MAX_ATTEMPTS", 1),
			RetryInitialDelay: getEnvAsDuration("RETRY_INITIAL_DELAY", "2s"),
		},
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.Rubric.Source {
	case RubricSourceStatic:
	case RubricSourceFile:
		if c.Rubric.Path == "" {
			return fmt.Errorf("RUBRIC_PATH is required when RUBRIC_SOURCE=file")
		}
	case RubricSourceDatabase:
		if c.Rubric.Name == "" {
			return fmt.Errorf("RUBRIC_NAME is required when RUBRIC_SOURCE=database")
		}
		if c.Database.Driver != DriverPostgres && c.Database.Driver != DriverSQLite {
			return fmt.Errorf("unsupported DB_DRIVER: %s", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported RUBRIC_SOURCE: %s", c.Rubric.Source)
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == DriverSQLite {
		return c.Database.SQLitePath
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
