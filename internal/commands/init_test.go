package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "finpulse-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "finpulse")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/finpulse")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runFinpulse(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, err := runFinpulse(t, "init", dir, "--name", "Asha Rao")
	require.NoError(t, err, "init failed: %s", out)
	assert.Contains(t, out, "Initialized finpulse workspace")

	expectedDirs := []string{
		"import",
		filepath.Join("import", "processed"),
		"logs",
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runFinpulse(t, "init", dir, "--name", "Asha Rao")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "finpulse.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Asha Rao")
	assert.Contains(t, contents, "occupation: freelancer")
	assert.Contains(t, contents, "year_start: 04-01")
	assert.Contains(t, contents, "regime: new")
}

func TestInit_GoalsFile(t *testing.T) {
	dir := t.TempDir()
	_, err := runFinpulse(t, "init", dir, "--name", "Asha Rao")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "goals.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "goals: []")
}

func TestInit_AuditLog(t *testing.T) {
	dir := t.TempDir()
	_, err := runFinpulse(t, "init", dir, "--name", "Asha Rao")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "logs", "audit.csv"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "timestamp,actor,action,details,ref")
	assert.Contains(t, contents, "cli,init")
}

func TestInit_NoLedgerUntilFirstTxn(t *testing.T) {
	dir := t.TempDir()
	_, err := runFinpulse(t, "init", dir, "--name", "Asha Rao")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "ledger.csv"))
	assert.True(t, os.IsNotExist(err), "ledger is created lazily")
}

func TestInit_RequiresName(t *testing.T) {
	dir := t.TempDir()
	_, err := runFinpulse(t, "init", dir)
	require.Error(t, err, "init without --name should fail")
}

func TestInit_CustomOccupation(t *testing.T) {
	dir := t.TempDir()
	_, err := runFinpulse(t, "init", dir, "--name", "Asha Rao", "--occupation", "consultant")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "finpulse.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "occupation: consultant")
}
