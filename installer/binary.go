// Package installer sets up ringring on a machine: the binary itself, the
// Claude Code hook entries, and downloadable theme packages.
package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// InstallBinary copies the running executable to destDir/ringring with
// executable permissions, creating destDir if needed.
func InstallBinary(destDir string) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate running executable: %w", err)
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", destDir, err)
	}

	dest := filepath.Join(destDir, "ringring")
	src, err := os.Open(exe)
	if err != nil {
		return "", fmt.Errorf("failed to open executable: %w", err)
	}
	defer src.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("failed to copy binary: %w", err)
	}
	return dest, nil
}
