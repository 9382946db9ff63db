package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, it loads from ".env" in the current directory and a
// missing file is not an error. An explicitly named file must exist.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); os.IsNotExist(err) {
			return nil
		}
		path = ".env"
	}
	return godotenv.Load(path)
}
