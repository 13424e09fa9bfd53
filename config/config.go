package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var once sync.Once

// Config reads a key from the environment, loading .env on first use.
func Config(key string) string {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file found, using environment")
		}
	})
	return os.Getenv(key)
}
