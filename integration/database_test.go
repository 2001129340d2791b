//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestIRMetricsWithMySQL tests the irmetrics CLI with a MySQL run store.
func TestIRMetricsWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "irmetrics",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
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

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/irmetrics?parseTime=true", host, port.Port())
	t.Setenv("IRMETRICS_RUN_BACKEND", "mysql")
	t.Setenv("IRMETRICS_RUN_DB_CONNECT", connStr)

	exerciseRunStore(t)
}

// TestIRMetricsWithPostgres tests the irmetrics CLI with a PostgreSQL run store.
func TestIRMetricsWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	t.Setenv("IRMETRICS_RUN_BACKEND", "postgresql")
	t.Setenv("IRMETRICS_RUN_DB_CONNECT", connStr)

	exerciseRunStore(t)
}

// exerciseRunStore drives the run store through the CLI using the backend
// configured in the environment.
func exerciseRunStore(t *testing.T) {
	home := t.TempDir()

	// Start from an empty store
	_, err := runIRMetrics(t, home, "runs", "clear")
	require.NoError(t, err)

	// Schema migrations up to the latest version
	_, err = runIRMetrics(t, home, "runs", "migrate")
	require.NoError(t, err)

	// Score two lists in one run
	out, err := runIRMetrics(t, home, "compute", "-r", "topic1.rel", "-g", "1:2", "topic1.lab", "topic2.lab")
	require.NoError(t, err)
	assert.Equal(t, "1.0000", parseScores(out)["RR"])

	out, err = runIRMetrics(t, home, "runs", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Connected: true")
	assert.Contains(t, out, "Total Runs: 1")
	assert.Contains(t, out, "Total Lists Scored: 2")

	exportBase := t.TempDir() + "/runs"
	_, err = runIRMetrics(t, home, "runs", "export", "--output-file", exportBase)
	require.NoError(t, err)
	assert.FileExists(t, exportBase+".scores.parquet")

	_, err = runIRMetrics(t, home, "runs", "clear")
	require.NoError(t, err)
}
