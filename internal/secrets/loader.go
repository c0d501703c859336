// Package secrets resolves provider tokens and API keys from configuration.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a secret value comes from. File takes precedence
// over Value when both are set.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret provided via configuration or flags.
	Value string
	// File points to a file containing the secret.
	File string
}

func (s Source) name() string {
	if n := strings.TrimSpace(s.Name); n != "" {
		return n
	}
	return "secret"
}

// Load resolves the secret. The returned value is always trimmed and never
// empty.
func Load(src Source) (string, error) {
	if file := strings.TrimSpace(src.File); file != "" {
		return loadFile(src.name(), file)
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	return "", fmt.Errorf("%s is not configured", src.name())
}

func loadFile(name, file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("%s file %q is empty", name, file)
	}

	return secret, nil
}
