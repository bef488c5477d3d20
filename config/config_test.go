package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nDB_HOST=db.internal\nDB_NAME=healthcare\nJWT_SECRET=s3cret\nJWT_ACCESS_EXPIRY=15m\nBOOKING_SLOT_HOLD_TTL=10s\nREDIS_DB=2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "healthcare", cfg.DB.Name)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 10*time.Second, cfg.Booking.SlotHoldTTL)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.True(t, cfg.DB.MigrateOnBoot)
	assert.Equal(t, time.Hour, cfg.JWT.AccessExpiry)
	assert.Equal(t, 30*time.Second, cfg.Booking.SlotHoldTTL)
}

func TestLoadConfigFrom_EnvironmentWins(t *testing.T) {
	t.Setenv("APP_PORT", "7070")

	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.App.Port)
}

func TestAppConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, AppConfig{}.Location())
	assert.Equal(t, time.UTC, AppConfig{TimeZone: "Not/AZone"}.Location())
	assert.Equal(t, "Asia/Jakarta", AppConfig{TimeZone: "Asia/Jakarta"}.Location().String())
}
