package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
dbname = "clinic"

[auth]
jwt_secret = "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, NotificationDriverLog, cfg.Notifications.Driver)
	assert.Equal(t, 10, cfg.Booking.PerPage)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
dbname = "clinic"

[auth]
jwt_secret = "secret"
`)
	t.Setenv("DB_HOST", "postgres.internal")
	t.Setenv("AUTH_JWT_SECRET", "from-env")
	t.Setenv("BOOKING_PER_PAGE", "25")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres.internal", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 25, cfg.Booking.PerPage)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Database.DBName = "clinic"
		cfg.Auth.JWTSecret = "secret"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"no secret", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"no dbname", func(c *Config) { c.Database.DBName = "" }, true},
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }, true},
		{"per page too big", func(c *Config) { c.Booking.PerPage = 101 }, true},
		{"unknown driver", func(c *Config) { c.Notifications.Driver = "pigeon" }, true},
		{"smtp without host", func(c *Config) { c.Notifications.Driver = NotificationDriverSMTP }, true},
		{"redis driver", func(c *Config) { c.Notifications.Driver = NotificationDriverRedis }, false},
		{"webhook without url", func(c *Config) { c.Notifications.Driver = NotificationDriverWebhook }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", DBName: "n"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=n sslmode=disable", d.DSN())
}
