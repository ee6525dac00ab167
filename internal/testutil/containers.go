// Package testutil holds fixtures and throwaway containers shared by tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const containerTTL = 180 // seconds

func dockerPool(t *testing.T) *dockertest.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	pool.MaxWait = 90 * time.Second
	return pool
}

func run(t *testing.T, pool *dockertest.Pool, opts *dockertest.RunOptions) *dockertest.Resource {
	t.Helper()
	resource, err := pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start %s: %v", opts.Repository, err)
	}
	_ = resource.Expire(containerTTL)
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("could not purge %s: %v", opts.Repository, err)
		}
	})
	return resource
}

// StartPostgres runs a disposable Postgres and returns its connection URL.
// The test is skipped when docker is not reachable or -short is set.
func StartPostgres(t *testing.T) string {
	t.Helper()
	pool := dockerPool(t)
	resource := run(t, pool, &dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=clubsphere",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=clubsphere",
		},
	})

	url := fmt.Sprintf("postgres://clubsphere:secret@%s/clubsphere?sslmode=disable", resource.GetHostPort("5432/tcp"))
	if err := pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		p, err := pgxpool.New(ctx, url)
		if err != nil {
			return err
		}
		defer p.Close()
		return p.Ping(ctx)
	}); err != nil {
		t.Fatalf("postgres did not become ready: %v", err)
	}
	return url
}

// StartRedis runs a disposable Redis and returns its URL.
func StartRedis(t *testing.T) string {
	t.Helper()
	pool := dockerPool(t)
	resource := run(t, pool, &dockertest.RunOptions{Repository: "redis", Tag: "7-alpine"})

	url := "redis://" + resource.GetHostPort("6379/tcp") + "/0"
	if err := pool.Retry(func() error {
		opts, err := redis.ParseURL(url)
		if err != nil {
			return err
		}
		client := redis.NewClient(opts)
		defer client.Close()
		return client.Ping(context.Background()).Err()
	}); err != nil {
		t.Fatalf("redis did not become ready: %v", err)
	}
	return url
}
