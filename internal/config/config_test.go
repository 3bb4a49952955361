package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimal = `
[database]
host = "db"
dbname = "beauty"
user = "app"
password = "secret"

[catalog_service]
url = "http://catalog:8082"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, domain.DefaultSlotStepMinutes, cfg.Booking.SlotStepMinutes)
	assert.Equal(t, domain.DefaultAdvanceBookingDays, cfg.Booking.AdvanceBookingDays)
	assert.Equal(t, "info", cfg.Logs.Level)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=beauty sslmode=disable", cfg.Database.DSN())
}

func TestLoad_OverridesFromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal+`
[booking]
slot_step_minutes = 15
advance_booking_days = 0
timezone = "Europe/Moscow"

[redis]
addr = "redis:6379"

[kafka]
brokers = ["kafka:9092"]

[logs]
level = "DEBUG"
`))
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Booking.SlotStepMinutes)
	assert.Equal(t, 0, cfg.Booking.AdvanceBookingDays)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, "reservations", cfg.Kafka.Topic)
	assert.Equal(t, "debug", cfg.Logs.Level)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name  string
		extra string
	}{
		{name: "step too small", extra: "[booking]\nslot_step_minutes = 1\n"},
		{name: "negative horizon", extra: "[booking]\nadvance_booking_days = -1\n"},
		{name: "bad metric prefix", extra: "[metrics]\nenabled = true\nservice_name = \"beauty-booking\"\n"},
		{name: "rate limit without burst", extra: "[rate_limit]\nenabled = true\nburst = 0\n"},
		{name: "unknown timezone", extra: "[booking]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "port out of range", extra: "[server]\nhttp_port = 70000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, minimal+tt.extra))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingCatalogURL(t *testing.T) {
	_, err := Load(writeConfig(t, "[database]\nhost = \"db\"\ndbname = \"beauty\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}
