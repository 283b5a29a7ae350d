package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	RedisAddr  string
	UploadDir  string
	APIBaseURL string
	UserID     string
}

func LoadConfig() Config {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	return Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		UploadDir:  os.Getenv("UPLOAD_DIR"),
		APIBaseURL: os.Getenv("API_BASE_URL"),
		UserID:     os.Getenv("USER_ID"),
	}
}
