package pgq_test

import (
	"testing"
	"time"

	"github.com/goto/ticketsearch/pkg/worker/pgq"
	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	cfg := pgq.Config{
		Host:            "dbhost",
		Port:            9876,
		Username:        "user",
		Password:        "pass",
		Name:            "helpdesk",
		ConnMaxLifetime: 5 * time.Minute,
	}

	assert.Equal(t, "dbname=helpdesk user=user password='pass' host=dbhost port=9876 sslmode=disable", cfg.ConnectionString())
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetimeWithJitter())

	cfg.SSLMode = "require"
	assert.Contains(t, cfg.ConnectionString(), "sslmode=require")

	cfg.ConnMaxLifetimeJitter = time.Minute
	lifetime := cfg.ConnMaxLifetimeWithJitter()
	assert.GreaterOrEqual(t, lifetime, 5*time.Minute)
	assert.Less(t, lifetime, 6*time.Minute)
}
