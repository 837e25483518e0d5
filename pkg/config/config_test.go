package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recruitment-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "recruitment-api", cfg.App.Name)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 30, cfg.JWT.Expiration)
	assert.NotEmpty(t, cfg.JWT.Secret, "development falls back to a local secret")
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.False(t, cfg.SMTP.Enabled())
	assert.Equal(t, "0.0.0.0:8000", cfg.HTTP.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("DB_SLOW_QUERY_MS", "250")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, "HS512", cfg.JWT.Algorithm)
	assert.Equal(t, 15, cfg.JWT.Expiration)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, 250, cfg.DB.SlowQueryMillis)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate_RejectsUnknownAlgorithm(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{Env: config.EnvDevelopment},
		JWT: config.JWTConfig{Secret: "x", Algorithm: "RS256", Expiration: 30},
	}
	assert.Error(t, cfg.Validate())
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := config.DBConfig{
		Host: "db", Port: 5432, User: "app", Password: "p@ss:word",
		DBName: "recruitment", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/recruitment?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", c.ConnectionString())
}

// config.yaml se suma a .env: sus claves pisan las del .env y el resto se conserva.
func TestLoadFrom_ConfigFileLayersOverDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("APP_NAME=from-dotenv\nDB_NAME=dotenv_db\nLOG_LEVEL=error\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("DB_NAME: yaml_db\nDB_PORT: 6543\nLOG_LEVEL: debug\n"), 0o600))
	t.Setenv("APP_ENV", "development")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.App.Name)
	assert.Equal(t, "yaml_db", cfg.DB.DBName)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "warn", cfg.App.LogLevel, "el entorno gana a los archivos")
}

func TestLoadFrom_WithoutFiles(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "recruitment", cfg.DB.DBName)
}

func TestLoadFrom_MalformedConfigFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("DB_NAME: [sin cerrar\n"), 0o600))
	t.Setenv("APP_ENV", "development")

	_, err := config.LoadFrom(dir)
	assert.Error(t, err)
}
