package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runRHC(t, binaryPath, home, "login", "--role", "patient", "--phone", "9876543210", "--code", "4321")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runRHC(t, binaryPath, home, "book", "--doctor", "DOC002", "--date", "day-after", "--time", "14:30")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Booking Confirmed!")

	stdout, stderr, err = runRHC(t, binaryPath, home, "bookings")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Dr. Harpreet Singh")

	_, stderr, err = runRHC(t, binaryPath, home, "logout")
	require.NoError(t, err, "stderr: %s", stderr)

	_, _, err = runRHC(t, binaryPath, home, "bookings")
	require.Error(t, err)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "rhc-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/rhc")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build rhc binary: %s", string(output))
	return binaryPath
}

func runRHC(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
