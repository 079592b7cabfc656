package pgq

import (
	"fmt"
	"math/rand"
	"time"
)

// Config points the queue at the database holding jobs_queue and
// dead_jobs. It usually mirrors the search database settings.
type Config struct {
	Host     string `mapstructure:"host" yaml:"host" default:"localhost"`
	Port     int    `mapstructure:"port" yaml:"port" default:"5432"`
	Name     string `mapstructure:"name" yaml:"name" default:"helpdesk"`
	Username string `mapstructure:"username" yaml:"username" default:"root"`
	Password string `mapstructure:"password" yaml:"password" default:""`
	SSLMode  string `mapstructure:"sslmode" yaml:"sslmode" default:"disable"`

	MaxOpenConns          int           `mapstructure:"max_open_conns" yaml:"max_open_conns" default:"5"`
	MaxIdleConns          int           `mapstructure:"max_idle_conns" yaml:"max_idle_conns" default:"2"`
	ConnMaxIdleTime       time.Duration `mapstructure:"conn_max_idle_time" yaml:"conn_max_idle_time" default:"5m"`
	ConnMaxLifetime       time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime" default:"5m"`
	ConnMaxLifetimeJitter time.Duration `mapstructure:"conn_max_lifetime_jitter" yaml:"conn_max_lifetime_jitter" default:"2m"`
}

func (c Config) ConnectionString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"dbname=%s user=%s password='%s' host=%s port=%d sslmode=%s",
		c.Name, c.Username, c.Password, c.Host, c.Port, sslMode,
	)
}

// ConnMaxLifetimeWithJitter spreads connection recycling of several worker
// processes over time.
func (c Config) ConnMaxLifetimeWithJitter() time.Duration {
	if c.ConnMaxLifetimeJitter <= 0 {
		return c.ConnMaxLifetime
	}
	//nolint:gosec
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return c.ConnMaxLifetime + time.Duration(r.Int63n(int64(c.ConnMaxLifetimeJitter)))
}
