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
	Gemini   GeminiConfig
	Ollama   OllamaConfig
	LLM      LLMConfig
	Storage  StorageConfig
	Upload   UploadConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	StaticDir string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OllamaConfig struct {
	Host  string
	Model string
}

type LLMConfig struct {
	Provider      string
	MaxRetries    int
	DefaultFields []string
}

type StorageConfig struct {
	Driver           string
	UploadPath       string
	MaxFileSize      int64
	AllowedFileTypes []string
	S3               S3Config
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// UploadConfig drives the uploader client.
type UploadConfig struct {
	Endpoint        string
	ResponseShape   string
	Simulate        bool
	SimulationDelay time.Duration
	EscapePolicy    string
	OutputPath      string
	TriggerLabel    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "8000"),
			Env:       getEnv("ENV", "development"),
			StaticDir: getEnv("STATIC_DIR", "./static"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "cv_parser"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Ollama: OllamaConfig{
			Host:  getEnv("OLLAMA_HOST", "http://localhost:11434/api/generate"),
			Model: getEnv("OLLAMA_MODEL", "gemma3:1b"),
		},
		LLM: LLMConfig{
			Provider:      getEnv("LLM_PROVIDER", "ollama"),
			MaxRetries:    getEnvAsInt("LLM_MAX_RETRIES", 3),
			DefaultFields: getEnvAsList("EXTRACT_FIELDS", "name,email,skills,experience,education"),
		},
		Storage: StorageConfig{
			Driver:           getEnv("STORAGE_DRIVER", "local"),
			UploadPath:       getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize:      getEnvAsInt64("MAX_FILE_SIZE", 5*1024*1024),
			AllowedFileTypes: getEnvAsList("ALLOWED_FILE_TYPES", "pdf,docx,txt"),
			S3: S3Config{
				Bucket:    getEnv("S3_BUCKET", ""),
				Region:    getEnv("S3_REGION", "auto"),
				Endpoint:  getEnv("S3_ENDPOINT", ""),
				AccessKey: getEnv("S3_ACCESS_KEY", ""),
				SecretKey: getEnv("S3_SECRET_KEY", ""),
			},
		},
		Upload: UploadConfig{
			Endpoint:        getEnv("UPLOAD_ENDPOINT", "http://localhost:8000/parse-cv"),
			ResponseShape:   getEnv("UPLOAD_RESPONSE_SHAPE", "enveloped"),
			Simulate:        getEnvAsBool("UPLOAD_SIMULATE", false),
			SimulationDelay: getEnvAsDuration("UPLOAD_SIMULATION_DELAY", "1s"),
			EscapePolicy:    getEnv("UPLOAD_ESCAPE_POLICY", "escape"),
			OutputPath:      getEnv("UPLOAD_OUTPUT", "info-cv.html"),
			TriggerLabel:    getEnv("UPLOAD_TRIGGER_LABEL", "Upload"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
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

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string, defaultValue string) []string {
	var items []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			items = append(items, item)
		}
	}
	return items
}
