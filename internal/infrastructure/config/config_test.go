package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"PROJECTLINK_APP_NAME",
	"PROJECTLINK_APP_ENV",
	"PROJECTLINK_APP_PORT",
	"PROJECTLINK_DATABASE_HOST",
	"PROJECTLINK_DATABASE_PORT",
	"PROJECTLINK_DATABASE_USER",
	"PROJECTLINK_DATABASE_PASSWORD",
	"PROJECTLINK_DATABASE_DBNAME",
	"PROJECTLINK_DATABASE_SSLMODE",
	"PROJECTLINK_DATABASE_MAX_OPEN_CONNS",
	"PROJECTLINK_DATABASE_MAX_IDLE_CONNS",
	"PROJECTLINK_TELEMETRY_SAMPLING_RATIO",
	"PROJECTLINK_TELEMETRY_DB_LOG_FULL_SQL",
	"PROJECTLINK_I18N_DEFAULT_LANGUAGE",
	"PROJECTLINK_HTTP_CORS_ALLOW_ORIGINS",
	"PROJECTLINK_TELEMETRY_PROFILING_ENABLED",
	"PROJECTLINK_TELEMETRY_PROFILING_SERVER_ADDRESS",
	"PROJECTLINK_TELEMETRY_PROFILING_TYPES",
	"PROJECTLINK_SWAGGER_ENABLED",
	"PROJECTLINK_SWAGGER_ALLOWED_IPS",
}

// clearConfigEnv unsets every key for the duration of the test
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearConfigEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "projectlink", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "projectlink", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "en", cfg.I18n.DefaultLanguage)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.Contains(t, cfg.HTTP.CORSAllowHeaders, "Accept-Language")
		assert.False(t, cfg.Telemetry.ProfilingEnabled)
		assert.Equal(t, "http://localhost:4040", cfg.Telemetry.ProfilingServerAddress)
		assert.False(t, cfg.Swagger.Enabled)
	})

	t.Run("loads profiling settings", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("PROJECTLINK_TELEMETRY_PROFILING_ENABLED", "true")
		t.Setenv("PROJECTLINK_TELEMETRY_PROFILING_SERVER_ADDRESS", "http://pyroscope:4040")
		t.Setenv("PROJECTLINK_TELEMETRY_PROFILING_TYPES", "cpu mutex")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Telemetry.ProfilingEnabled)
		assert.Equal(t, "http://pyroscope:4040", cfg.Telemetry.ProfilingServerAddress)
		assert.Equal(t, []string{"cpu", "mutex"}, cfg.Telemetry.ProfilingTypes)
	})

	t.Run("loads values from environment variables with PROJECTLINK prefix", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("PROJECTLINK_APP_NAME", "test-app")
		t.Setenv("PROJECTLINK_APP_PORT", "9000")
		t.Setenv("PROJECTLINK_DATABASE_HOST", "testdb.local")
		t.Setenv("PROJECTLINK_DATABASE_PORT", "5433")
		t.Setenv("PROJECTLINK_DATABASE_PASSWORD", "testpass")
		t.Setenv("PROJECTLINK_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("PROJECTLINK_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("PROJECTLINK_I18N_DEFAULT_LANGUAGE", "zh-Hans")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "zh-Hans", cfg.I18n.DefaultLanguage)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("PROJECTLINK_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("PROJECTLINK_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("PROJECTLINK_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("rejects sampling ratio above one", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("PROJECTLINK_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("PROJECTLINK_APP_ENV", "production")
		t.Setenv("PROJECTLINK_DATABASE_PASSWORD", "secure-password")
		t.Setenv("PROJECTLINK_DATABASE_SSLMODE", "require")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		setValidProductionBase(t)
		os.Unsetenv("PROJECTLINK_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("PROJECTLINK_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("rejects full SQL logging in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("PROJECTLINK_TELEMETRY_DB_LOG_FULL_SQL", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db_log_full_sql")
	})

	t.Run("rejects open swagger in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("PROJECTLINK_SWAGGER_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "swagger")
	})

	t.Run("allows swagger behind an IP whitelist in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("PROJECTLINK_SWAGGER_ENABLED", "true")
		t.Setenv("PROJECTLINK_SWAGGER_ALLOWED_IPS", "10.0.0.0/8")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"10.0.0.0/8"}, cfg.Swagger.AllowedIPs)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "/testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}
