package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	path := writeTempConfig(t, `
server_project: coordinator-project
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "coordinator-project", cfg.ServerProject)
	assert.Equal(t, "us-central1", cfg.Region)
	assert.Equal(t, "us-central1-a", cfg.Zone)
	assert.Equal(t, "ubuntu-os-cloud", cfg.BootImageProject)
	assert.Equal(t, "ubuntu-2204-lts", cfg.BootImageFamily)
	assert.Equal(t, "e2-highmem", cfg.MachineSeries)
}

func TestLoadFile_ExplicitValues(t *testing.T) {
	path := writeTempConfig(t, `
server_project: coordinator-project
region: europe-west1
zone: europe-west1-b
boot_image_family: ubuntu-2404-lts
machine_series: n2-highmem
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "europe-west1", cfg.Region)
	assert.Equal(t, "europe-west1-b", cfg.Zone)
	assert.Equal(t, "ubuntu-2404-lts", cfg.BootImageFamily)
	assert.Equal(t, "n2-highmem", cfg.MachineSeries)
}

func TestLoadFile_MissingServerProject(t *testing.T) {
	path := writeTempConfig(t, `
region: us-central1
`)

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "server_project: [unterminated")
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadTimeouts_Defaults(t *testing.T) {
	timeouts := LoadTimeouts()

	assert.Equal(t, 10*time.Minute, timeouts.Operation)
	assert.Equal(t, 1*time.Second, timeouts.OperationPoll)
	assert.Equal(t, 3, timeouts.SubnetCreateAttempts)
	assert.Equal(t, 30*time.Second, timeouts.SubnetCreateDelay)
	assert.Equal(t, 3, timeouts.PeeringAttempts)
	assert.Equal(t, 10*time.Second, timeouts.PeeringDelay)
	assert.Equal(t, 30, timeouts.SubnetDeleteConfirmAttempts)
	assert.Equal(t, 2*time.Second, timeouts.SubnetDeleteConfirmInterval)
}

func TestLoadTimeouts_EnvOverride(t *testing.T) {
	t.Setenv("GENOMIX_TIMEOUT_OPERATION", "90s")
	t.Setenv("GENOMIX_PEERING_ATTEMPTS", "7")

	timeouts := LoadTimeouts()

	assert.Equal(t, 90*time.Second, timeouts.Operation)
	assert.Equal(t, 7, timeouts.PeeringAttempts)
}

func TestLoadTimeouts_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("GENOMIX_TIMEOUT_OPERATION", "not-a-duration")
	t.Setenv("GENOMIX_PEERING_ATTEMPTS", "many")

	timeouts := LoadTimeouts()

	assert.Equal(t, 10*time.Minute, timeouts.Operation)
	assert.Equal(t, 3, timeouts.PeeringAttempts)
}
