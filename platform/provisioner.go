package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// Provisioner owns the stored network credentials.
type Provisioner interface {
	// Reset erases the stored credentials so the device comes up
	// unprovisioned after the next restart.
	Reset() error
}

// FileProvisioner keeps the credentials in a single file.
type FileProvisioner struct {
	Path string
}

func (p FileProvisioner) Reset() error {
	if p.Path == "" {
		slog.Warn("No credentials file configured, nothing to reset")
		return nil
	}
	if err := os.Remove(p.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("can't erase credentials %s: %w", p.Path, err)
	}
	slog.Info("Network credentials erased", "file", p.Path)
	return nil
}
