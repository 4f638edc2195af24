// Package session persists the login response between runs.
//
// The server's session object is opaque to mallboard: it is stored verbatim
// as returned by POST /api/auth/login and never interpreted beyond checking
// that something is present.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultSessionPath = "~/.config/mallboard/session.json"

// DefaultPath returns the default session file path.
func DefaultPath() string {
	return defaultSessionPath
}

// Save writes the opaque session object verbatim, creating directories as
// needed. The file is user-only since the payload may carry a token.
func Save(path string, raw json.RawMessage) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(resolved, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load returns the stored session bytes and whether a session is present.
// Read failures are treated as "no session" so startup never blocks on a
// corrupt or missing file.
func Load(path string) (json.RawMessage, bool) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, false
	}
	raw, err := os.ReadFile(resolved)
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	return json.RawMessage(raw), true
}

// Clear removes the stored session. Missing files are not an error.
func Clear(path string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSessionPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
