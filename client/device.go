// ABOUTME: Stable device identifier for token grants
// ABOUTME: Generated once with uuid and persisted under the user config dir

package client

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// loadDeviceID returns the persisted device ID, creating one on first
// use. The backend ties refresh tokens to a device; a stable ID keeps a
// machine's sessions on one device record. Falls back to an ephemeral
// ID when the file cannot be written.
func loadDeviceID(path string) string {
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if id := strings.TrimSpace(string(data)); id != "" {
				return id
			}
		}
	}

	id := uuid.NewString()
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err == nil {
			_ = os.WriteFile(path, []byte(id+"\n"), 0o600)
		}
	}
	return id
}
