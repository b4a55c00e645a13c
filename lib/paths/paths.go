// Package paths resolves the platform-appropriate base directory for an
// application's store. It is consumed at store-construction time only.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDirectory returns the per-user directory where the application
// identified by appID should keep its store, creating it if necessary.
// The location follows the platform conventions of os.UserConfigDir
// (e.g. $XDG_CONFIG_HOME/<appID> on Linux).
func DefaultDirectory(appID string) (string, error) {
	if appID == "" {
		return "", fmt.Errorf("application identifier must not be empty")
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user config directory: %w", err)
	}

	dir := filepath.Join(base, appID)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("cannot create application directory %s: %w", dir, err)
	}

	return dir, nil
}
