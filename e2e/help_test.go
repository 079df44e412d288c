//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpFlag(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// Not through a PTY since it exits right away
	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "Help should exit cleanly")

	output := string(out)
	require.Contains(t, output, "-config")
	require.Contains(t, output, "-catalog")
	require.Contains(t, output, "TOML")
}
