package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

func loadDotEnvIfPresent(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := loadDotEnv(path); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", path, err)
	}
}

// loadDotEnv sets KEY=VALUE pairs from path. Variables already present in
// the environment win.
func loadDotEnv(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return scanner.Err()
}
