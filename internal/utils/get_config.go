package utils

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server
	AppURL  string `yaml:"APP_URL"`
	AppPort string `yaml:"APP_PORT"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Auth
	JWTSecret string `yaml:"JWT_SECRET"`
	AdminKey  string `yaml:"ADMIN_KEY"`

	// Paystack configuration
	PaystackSecretKey string `yaml:"PAYSTACK_SECRET_KEY"`
	PaystackBaseURL   string `yaml:"PAYSTACK_BASE_URL"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
}

var config Config

// LoadConfig reads config.yaml, then lets .env entries override it so
// deployments can keep secrets out of the yaml file.
func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	_ = godotenv.Load()

	overrideFromEnv("APP_URL", &config.AppURL)
	overrideFromEnv("APP_PORT", &config.AppPort)
	overrideFromEnv("DB_USER", &config.DBUser)
	overrideFromEnv("DB_NAME", &config.DBName)
	overrideFromEnv("DB_PASSWORD", &config.DBPassword)
	overrideFromEnv("DB_PORT", &config.DBPort)
	overrideFromEnv("DB_HOST", &config.DBHost)
	overrideFromEnv("JWT_SECRET", &config.JWTSecret)
	overrideFromEnv("ADMIN_KEY", &config.AdminKey)
	overrideFromEnv("PAYSTACK_SECRET_KEY", &config.PaystackSecretKey)
	overrideFromEnv("PAYSTACK_BASE_URL", &config.PaystackBaseURL)
	overrideFromEnv("SMTP_HOST", &config.SMTPHost)
	overrideFromEnv("SMTP_PORT", &config.SMTPPort)
	overrideFromEnv("SMTP_SENDER_NAME", &config.SMTPSenderName)
	overrideFromEnv("SMTP_AUTH_EMAIL", &config.SMTPAuthEmail)
	overrideFromEnv("SMTP_AUTH_PASSWORD", &config.SMTPAuthPassword)

	os.Setenv("JWT_SECRET", config.JWTSecret)
}

func overrideFromEnv(key string, target *string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func GetConfig(key string) string {
	switch key {
	case "APP_URL":
		return config.AppURL
	case "APP_PORT":
		return config.AppPort
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "ADMIN_KEY":
		return config.AdminKey
	case "PAYSTACK_SECRET_KEY":
		return config.PaystackSecretKey
	case "PAYSTACK_BASE_URL":
		return config.PaystackBaseURL
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	default:
		return ""
	}
}
