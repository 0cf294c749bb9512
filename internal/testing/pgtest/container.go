// Package pgtest starts a throwaway PostgreSQL for integration tests.
// Every failure degrades to "no database" so the tests that need one skip.
package pgtest

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image          = "postgres:15-alpine"
	startupTimeout = 30 * time.Second
	readyLog       = "database system is ready to accept connections"

	// EnvConnString points the tests at an existing database instead of a container
	EnvConnString = "TEST_DATABASE_URL"
)

// Container is a running database, or an empty one when none could be started
type Container struct {
	ConnString string
	stop       func()
}

// Available reports whether a database is reachable
func (c *Container) Available() bool {
	return c != nil && c.ConnString != ""
}

// Terminate stops the container. Safe on a nil or empty Container.
func (c *Container) Terminate() {
	if c != nil && c.stop != nil {
		c.stop()
	}
}

// Start returns a database for the package's TestMain. It honors
// TEST_DATABASE_URL, otherwise it launches a container. In -short mode it
// returns an empty Container.
func Start(ctx context.Context) (c *Container) {
	c = &Container{}
	if testing.Short() {
		return c
	}
	if url := os.Getenv(EnvConnString); url != "" {
		c.ConnString = url
		return c
	}

	// testcontainers panics when no Docker daemon is present
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "pgtest: docker unavailable: %v\n", r)
			c = &Container{}
		}
	}()

	ctr, err := tcpostgres.Run(ctx, image,
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog(readyLog).WithOccurrence(2).WithStartupTimeout(startupTimeout)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pgtest: start container: %v\n", err)
		return c
	}
	c.stop = func() {
		if err := ctr.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "pgtest: terminate container: %v\n", err)
		}
	}

	conn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "pgtest: connection string: %v\n", err)
		return c
	}
	c.ConnString = conn
	return c
}

// Require skips t unless a database is available
func (c *Container) Require(t testing.TB) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !c.Available() {
		t.Skip("skipping integration test: database not available")
	}
}
