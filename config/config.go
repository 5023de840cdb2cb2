package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv pulls a local .env into the process environment when present.
// Missing file is fine, production reads real env vars.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		log.Println(".env loaded")
	}
}
