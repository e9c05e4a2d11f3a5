package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBConfig_DSN(t *testing.T) {
	t.Parallel()

	cfg := DBConfig{
		User:     "testuser",
		Password: "testpass",
		Host:     "localhost",
		Port:     "3306",
		Name:     "testdb",
	}

	expected := "testuser:testpass@tcp(localhost:3306)/testdb?charset=utf8mb4&parseTime=true&loc=Local"
	assert.Equal(t, expected, cfg.DSN())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, time.Hour, cfg.JWT.AccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ConfirmTTL)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DB_USER", "envuser")
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("JWT_ACCESS_TTL", "30m")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "envuser", cfg.DB.User)
	assert.Equal(t, "envhost", cfg.DB.Host)
	assert.Equal(t, "super-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}
