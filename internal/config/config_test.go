package config_test

import (
	"testing"
	"time"

	"github.com/library-circulation/go-api-server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-key-must-be-at-least-32-characters-long"

func TestLoad_SQLiteWithLendingDefaults(t *testing.T) {
	// Given: Only the required variables for a sqlite deployment
	t.Setenv("DB_DRIVER", config.DriverSQLite)
	t.Setenv("DB_SQLITE_PATH", "circulation.db")
	t.Setenv("JWT_SECRET", testSecret)

	// When
	cfg, err := config.Load("configtest")

	// Then
	require.NoError(t, err)
	assert.Equal(t, "library-circulation-api", cfg.App.Name)
	assert.Equal(t, 30.0, cfg.Lending.MinReliability)
	assert.Equal(t, 5*time.Second, cfg.Lending.StoreTimeout)
	assert.Equal(t, 12*time.Hour, cfg.Lending.DueWarningWindow)
	assert.Equal(t, 15*time.Minute, cfg.Lending.PasscodeTTL)
	assert.Equal(t, 10*time.Second, cfg.Mail.SendTimeout)
	assert.False(t, cfg.IsMailEnabled())
}

func TestLoad_LendingOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", config.DriverSQLite)
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("LENDING_MIN_RELIABILITY", "45.5")
	t.Setenv("LENDING_STORE_TIMEOUT", "2s")
	t.Setenv("OTP_TTL", "5m")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := config.Load("configtest")

	require.NoError(t, err)
	assert.Equal(t, 45.5, cfg.Lending.MinReliability)
	assert.Equal(t, 2*time.Second, cfg.Lending.StoreTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Lending.PasscodeTTL)
	assert.True(t, cfg.IsMailEnabled())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"oracle without host", map[string]string{"DB_DRIVER": config.DriverOracle}, "Host"},
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}, "mysql"},
		{"threshold above 100", map[string]string{"DB_DRIVER": config.DriverSQLite, "LENDING_MIN_RELIABILITY": "120"}, "LENDING_MIN_RELIABILITY"},
		{"zero store timeout", map[string]string{"DB_DRIVER": config.DriverSQLite, "LENDING_STORE_TIMEOUT": "0s"}, "LENDING_STORE_TIMEOUT"},
		{"zero mail send timeout", map[string]string{"DB_DRIVER": config.DriverSQLite, "MAIL_SEND_TIMEOUT": "0s"}, "MAIL_SEND_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", testSecret)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load("configtest")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
