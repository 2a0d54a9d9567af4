package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads the dotenv files that exist, in order. Variables already in
// the environment win. It returns how many files were loaded.
func LoadEnv(envFiles ...string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}
