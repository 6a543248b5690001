package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := NewDefaults()
	v.Set("STORAGE_DRIVER", DriverMemory)

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "8888", cfg.AppURI)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, "Asia/Manila", cfg.Location.String())
	assert.Equal(t, 10*time.Minute, cfg.LateThreshold)
	assert.Equal(t, "@every 5m", cfg.SweepInterval)
	assert.Equal(t, 4, cfg.SweepWorkers)
	assert.Equal(t, 2*time.Minute, cfg.SweepLockTTL)
	assert.True(t, cfg.RunWorker)
}

func TestFromViperRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "timezone", key: "TIMEZONE", value: "Mars/Olympus"},
		{name: "late threshold", key: "LATE_THRESHOLD", value: "ten minutes"},
		{name: "negative late threshold", key: "LATE_THRESHOLD", value: "-1m"},
		{name: "lock ttl", key: "SWEEP_LOCK_TTL", value: "0s"},
		{name: "workers", key: "SWEEP_WORKERS", value: 0},
		{name: "driver", key: "STORAGE_DRIVER", value: "cassandra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewDefaults()
			v.Set("STORAGE_DRIVER", DriverMemory)
			v.Set(tt.key, tt.value)

			_, err := FromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestFromViperRequiresConnectionStrings(t *testing.T) {
	v := NewDefaults()
	_, err := FromViper(v)
	assert.ErrorContains(t, err, "MONGO_URI")

	v.Set("STORAGE_DRIVER", DriverPostgres)
	_, err = FromViper(v)
	assert.ErrorContains(t, err, "POSTGRES_DSN")

	v.Set("POSTGRES_DSN", "host=localhost user=attendance dbname=attendance")
	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
}
