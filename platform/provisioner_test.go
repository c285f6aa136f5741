package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProvisioner_Reset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wifi.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ssid":"home"}`), 0o600))

	p := FileProvisioner{Path: path}
	require.NoError(t, p.Reset())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "credentials file is gone")

	assert.NoError(t, p.Reset(), "resetting twice is fine")
	assert.NoError(t, FileProvisioner{}.Reset(), "no file configured")
}

func TestFileProvisioner_ResetFails(t *testing.T) {
	dir := t.TempDir()
	// a non empty directory can't be removed with os.Remove
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x"), nil, 0o600))
	assert.Error(t, FileProvisioner{Path: dir}.Reset())
}
