package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUrl     string
	Port      string
	JWTSecret string
	Env       string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, falling back to environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	return Config{
		DBUrl:     os.Getenv("DB_URL"),
		Port:      port,
		JWTSecret: os.Getenv("JWT_SECRET"),
		Env:       env,
	}
}

// IsProduction gates how much error detail leaves the server.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
