package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load("test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load("v1.2.3")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "v1.2.3", cfg.Version)
	assert.Equal(t, 720, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "techbridge", cfg.Auth.Issuer)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL_MINUTES", "60")
	t.Setenv("PGHOST", "db.internal")

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL_MINUTES", "-5")

	_, err := Load("test")
	require.Error(t, err)
}

func TestDatabaseConfigURL(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "techbridge",
		Password: "pw",
		Database: "techbridge",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://techbridge:pw@localhost:5432/techbridge?sslmode=disable", d.URL())
}
