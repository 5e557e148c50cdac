package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotenv loads the first .env file found. Variables already set in the
// environment win over the file.
func LoadDotenv(paths ...string) (string, bool) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err == nil {
			return p, true
		}
	}
	return "", false
}
