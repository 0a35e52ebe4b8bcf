package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowseCmd_Exists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "browse" {
			found = true
			break
		}
	}
	assert.True(t, found, "browse command should be registered")
}

func TestBrowseCmd_HelpOutput(t *testing.T) {
	out, err := execute("browse", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "interactive terminal browser")
	assert.Contains(t, out, "Controls:")
}

func TestBrowseCmd_NotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	slideLibrary = nil

	_, err := execute("browse")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "slide library not configured")
}
