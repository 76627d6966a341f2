package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadDotenvOnce sync.Once

// osGetenv reads an environment variable, loading .env once beforehand.
func osGetenv(key string) string {
	loadDotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
	return os.Getenv(key)
}
