//go:build basic

package integration

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCadenceEndToEnd runs the full import workflow against a fresh SQLite
// store: import, duplicate detection, insights, contacts and tasks.
func TestCadenceEndToEnd(t *testing.T) {
	workDir := t.TempDir()
	dbPath := filepath.Join(workDir, "cadence.db")
	exportPath := writeSampleExport(t, workDir)

	storeArgs := []string{"--store-backend", "sqlite", "--store-db-connect", dbPath}

	// First import commits both events
	output, err := runCadenceCommand(t, workDir, append([]string{"import", exportPath}, storeArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "Imported 2 of 2 events")
	assert.Contains(t, output, "1:1 with Jane")

	// A dry-run of the same file skips everything and writes nothing
	output, err = runCadenceCommand(t, workDir, append([]string{"import", exportPath, "--dry-run"}, storeArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "Would import 0 of 2 events (skipped: 2, failed: 0)")

	// Store status reflects the committed import
	output, err = runCadenceCommand(t, workDir, append([]string{"store", "status"}, storeArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "sqlite")

	// Contacts and tasks round-trip through the CLI
	_, err = runCadenceCommand(t, workDir, append([]string{"contacts", "add", "--name", "Jane Doe", "--email", "jane@example.com"}, storeArgs...)...)
	require.NoError(t, err)
	output, err = runCadenceCommand(t, workDir, append([]string{"contacts", "list"}, storeArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "Jane Doe")

	// Insights render for the populated store
	output, err = runCadenceCommand(t, workDir, append([]string{"insights"}, storeArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "People: 1")
}

// TestCadenceInsightsJSON verifies the JSON output mode produces a parseable
// snapshot without any header noise.
func TestCadenceInsightsJSON(t *testing.T) {
	workDir := t.TempDir()
	dbPath := filepath.Join(workDir, "cadence.db")
	exportPath := writeSampleExport(t, workDir)

	storeArgs := []string{"--store-backend", "sqlite", "--store-db-connect", dbPath}

	_, err := runCadenceCommand(t, workDir, append([]string{"import", exportPath}, storeArgs...)...)
	require.NoError(t, err)

	output, err := runCadenceCommand(t, workDir, append([]string{"insights", "--output", "json"}, storeArgs...)...)
	require.NoError(t, err)

	var snapshot map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &snapshot))
	assert.Contains(t, snapshot, "generated_at")
	assert.Contains(t, snapshot, "weekly_meeting_counts")
}

// TestCadenceVersion checks that version output includes build metadata.
func TestCadenceVersion(t *testing.T) {
	output, err := runCadenceCommand(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, output, "cadence CLI")
	assert.Contains(t, output, "Version:")
}

// TestCadenceImportMissingInput ensures a clear error for a bad input path.
func TestCadenceImportMissingInput(t *testing.T) {
	workDir := t.TempDir()
	dbPath := filepath.Join(workDir, "cadence.db")

	output, err := runCadenceCommand(t, workDir,
		"import", filepath.Join(workDir, "does-not-exist.json"),
		"--store-backend", "sqlite", "--store-db-connect", dbPath)
	require.Error(t, err)
	assert.Contains(t, output, "does-not-exist.json")
}
