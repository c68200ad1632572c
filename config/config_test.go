package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bracelet-customizer/db"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, db.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, PreviewStorageLocal, cfg.PreviewStorage)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.False(t, cfg.IsProduction())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("ENV", "production")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/custom.db")
	t.Setenv("CUSTOMIZATION_RETENTION_DAYS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 7, cfg.RetentionDays)

	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", dsn)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown driver":       {"DB_DRIVER": "mysql"},
		"unknown storage":      {"PREVIEW_STORAGE": "s3"},
		"drive without creds":  {"PREVIEW_STORAGE": "drive", "DRIVE_FOLDER_ID": "folder"},
		"drive without folder": {"PREVIEW_STORAGE": "drive", "GOOGLE_APPLICATION_CREDENTIALS": "creds.json"},
		"zero retention":       {"CUSTOMIZATION_RETENTION_DAYS": "0"},
	}

	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("CUSTOMIZATION_RETENTION_DAYS", "not-an-int")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestDSN(t *testing.T) {
	cfg := Config{DBDriver: db.DriverPostgres, DatabaseURL: "postgres://u:p@localhost/db"}
	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost/db", dsn)

	cfg = Config{DBDriver: db.DriverPostgres, DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "bracelets", DBSSLMode: "disable"}
	dsn, err = cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=bracelets sslmode=disable", dsn)

	_, err = Config{DBDriver: db.DriverPostgres}.DSN()
	assert.Error(t, err)
}
