// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the
// key name and the file contents (trimmed) are the value.
//
// The only key file the pipeline uses is gemini-api-key. The key is held
// in memory for the session and never written back to disk.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GeminiKeyName is the secrets file holding the generative-language API key.
const GeminiKeyName = "gemini-api-key"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory or missing files are not errors; Load
// returns an empty map. Unreadable files produce a warning on stderr but
// do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// ResolveAPIKey returns the generative-language API key: the override if
// non-empty (flag or environment), otherwise the gemini-api-key secret.
// An empty result means no key was supplied anywhere.
func ResolveAPIKey(loaded map[string]string, override string) string {
	if override != "" {
		return override
	}
	return loaded[GeminiKeyName]
}
