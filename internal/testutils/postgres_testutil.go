package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/internal/store/postgres"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	PGHost     = "localhost"
	PGUsername = "test_user"
	PGPassword = "test_pass"
	PGName     = "test_db"

	pgImage          = "postgres"
	pgTag            = "14-alpine"
	pgContainerTTL   = 180
	pgStartupTimeout = 60 * time.Second
)

// PGConnString returns the key/value connection string of the test
// database listening on port.
func PGConnString(port int) string {
	return fmt.Sprintf(
		"dbname=%s user=%s password='%s' host=%s port=%d sslmode=disable",
		PGName, PGUsername, PGPassword, PGHost, port,
	)
}

// RunTestPG starts a throwaway postgres container for t and returns the
// mapped port once the server accepts connections. The container is purged
// when t finishes. fsync is disabled, the data does not outlive the test.
func RunTestPG(t *testing.T, logger log.Logger) (int, error) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		return 0, fmt.Errorf("run test pg: create dockertest pool: %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: pgImage,
		Tag:        pgTag,
		Env: []string{
			"POSTGRES_PASSWORD=" + PGPassword,
			"POSTGRES_USER=" + PGUsername,
			"POSTGRES_DB=" + PGName,
		},
		Cmd: []string{"postgres", "-c", "fsync=off", "-c", "full_page_writes=off"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return 0, fmt.Errorf("run test pg: start container: %w", err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("purge test pg container: %v", err)
		}
	})

	if err := resource.Expire(pgContainerTTL); err != nil {
		return 0, fmt.Errorf("run test pg: set expiry: %w", err)
	}

	port, err := strconv.Atoi(resource.GetPort("5432/tcp"))
	if err != nil {
		return 0, fmt.Errorf("run test pg: parse mapped port: %w", err)
	}

	if logger.Level() == "debug" {
		stop, err := streamContainerLogs(pool, resource, logger)
		if err != nil {
			return 0, err
		}
		defer stop()
	}

	pool.MaxWait = pgStartupTimeout
	if err := pool.Retry(func() error {
		db, err := sql.Open("pgx", PGConnString(port))
		if err != nil {
			return err
		}
		defer db.Close()

		return db.Ping()
	}); err != nil {
		return 0, fmt.Errorf("run test pg: wait for server: %w", err)
	}

	return port, nil
}

// streamContainerLogs copies the container output to the logger until the
// returned func is called.
func streamContainerLogs(pool *dockertest.Pool, resource *dockertest.Resource, logger log.Logger) (func(), error) {
	waiter, err := pool.Client.AttachToContainerNonBlocking(docker.AttachToContainerOptions{
		Container:    resource.Container.ID,
		OutputStream: logger.Writer(),
		ErrorStream:  logger.Writer(),
		Stderr:       true,
		Stdout:       true,
		Stream:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("attach to test pg container: %w", err)
	}

	return func() {
		if err := waiter.Close(); err != nil {
			logger.Warn("close test pg container log", "err", err)
		}
		if err := waiter.Wait(); err != nil {
			logger.Warn("wait for test pg container log", "err", err)
		}
	}, nil
}

func RunMigrations(t *testing.T, db *sql.DB) error {
	t.Helper()

	return RunMigrationsWithClient(t, postgres.NewClientWithDB(db))
}

// RunMigrationsWithClient recreates the public schema, applies every
// migration and installs the host tables the search module reads from.
func RunMigrationsWithClient(t *testing.T, pgClient *postgres.Client) error {
	t.Helper()

	queries := []string{
		"DROP SCHEMA public CASCADE",
		"CREATE SCHEMA public",
	}
	if err := pgClient.ExecQueries(context.Background(), queries); err != nil {
		return err
	}

	if _, err := pgClient.Migrate(); err != nil {
		return err
	}

	return pgClient.ExecQueries(context.Background(), hostSchema)
}
