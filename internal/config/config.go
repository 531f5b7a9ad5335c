package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv  string
	AppPort string

	// Cart persistence
	CartStorage    string
	CartStorageKey string
	CartDataDir    string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string

	CatalogPath string

	// Order hand-off
	WhatsAppNumber    string
	Handoff           string
	BankAccountNumber string
	BankAccountName   string
	BankName          string
	BankBranch        string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:  getEnv("APP_ENV", "development"),
		AppPort: getEnv("APP_PORT", "8080"),

		CartStorage:    getEnv("CART_STORAGE", "file"),
		CartStorageKey: getEnv("CART_STORAGE_KEY", "dsCreationsCart"),
		CartDataDir:    getEnv("CART_DATA_DIR", ".storefront"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		CatalogPath: getEnv("CATALOG_PATH", "catalog.yaml"),

		WhatsAppNumber:    getEnv("WHATSAPP_NUMBER", "94703600072"),
		Handoff:           getEnv("HANDOFF", "log"),
		BankAccountNumber: getEnv("BANK_ACCOUNT_NUMBER", "217200140028669"),
		BankAccountName:   getEnv("BANK_ACCOUNT_NAME", "D T T Edirisingha"),
		BankName:          getEnv("BANK_NAME", "Peoples Bank"),
		BankBranch:        getEnv("BANK_BRANCH", "Mahara"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
