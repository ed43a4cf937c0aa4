//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestCadenceWithMySQL tests the cadence CLI with a MySQL backend.
func TestCadenceWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "cadence",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/cadence?parseTime=true", host, port.Port())

	runStoreWorkflow(t, "mysql", connStr)
}

// TestCadenceWithPostgres tests the cadence CLI with a PostgreSQL backend.
func TestCadenceWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	runStoreWorkflow(t, "postgresql", connStr)
}

// runStoreWorkflow exercises the store lifecycle against the given backend:
// clear, import a sample export, check status, add a contact and read insights.
func runStoreWorkflow(t *testing.T, backend, connStr string) {
	t.Helper()

	// Set environment variables
	_ = os.Setenv("CADENCE_STORE_BACKEND", backend)
	_ = os.Setenv("CADENCE_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("CADENCE_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("CADENCE_STORE_DB_CONNECT") }()

	workDir := t.TempDir()
	exportPath := writeSampleExport(t, workDir)

	// Start from a clean slate
	_, err := runCadenceCommand(t, workDir, "store", "clear")
	require.NoError(t, err)

	// Import the sample export
	output, err := runCadenceCommand(t, workDir, "import", exportPath)
	require.NoError(t, err)
	require.Contains(t, output, "Imported 2 of 2 events")

	// A second import of the same file should skip the duplicates
	output, err = runCadenceCommand(t, workDir, "import", exportPath)
	require.NoError(t, err)
	require.Contains(t, output, "skipped: 2")

	// Check store status
	output, err = runCadenceCommand(t, workDir, "store", "status")
	require.NoError(t, err)
	require.Contains(t, output, backend)

	// Add a contact and read it back
	_, err = runCadenceCommand(t, workDir, "contacts", "add", "--name", "Jane Doe", "--email", "jane@example.com")
	require.NoError(t, err)
	output, err = runCadenceCommand(t, workDir, "contacts", "list")
	require.NoError(t, err)
	require.Contains(t, output, "Jane Doe")

	// Insights should run against the populated store
	_, err = runCadenceCommand(t, workDir, "insights")
	require.NoError(t, err)
}
