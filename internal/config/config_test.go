package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "invoicing-renderer", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, int64(1<<20), cfg.HTTP.MaxBodySize)
	assert.True(t, cfg.HTTP.SwaggerEnabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.Format)
	assert.Equal(t, "en-US", cfg.Render.Locale)
	assert.Equal(t, language.AmericanEnglish, cfg.Render.LocaleTag())
	assert.Equal(t, "$", cfg.Render.CurrencySymbol)
	assert.True(t, cfg.Render.Compress)
	assert.True(t, cfg.Render.ProfessionalSubline)
	assert.Nil(t, cfg.Render.DecorSeed)
	assert.Equal(t, 1.0, cfg.Render.PreviewScale)
	assert.Equal(t, "none", cfg.Storage.Driver)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Database.Migrate)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
app:
  env: production
http:
  addr: ":9090"
render:
  locale: de-DE
  currency_symbol: "€"
  decor_seed: 42
  professional_subline: false
storage:
  driver: s3
  bucket: invoices
redis:
  enabled: true
  ttl: 1h
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "€", cfg.Render.CurrencySymbol)
	require.NotNil(t, cfg.Render.DecorSeed)
	assert.Equal(t, uint64(42), *cfg.Render.DecorSeed)
	assert.False(t, cfg.Render.ProfessionalSubline)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, "invoices", cfg.Storage.Bucket)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "http:\n  addr: \":9090\"\n")
	t.Setenv("INVOICE_HTTP_ADDR", ":7070")
	t.Setenv("INVOICE_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"s3 without bucket", "storage:\n  driver: s3\n"},
		{"unknown driver", "storage:\n  driver: ftp\n"},
		{"bad locale", "render:\n  locale: \"!!\"\n"},
		{"preview scale", "render:\n  preview_scale: 12\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "invoices", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/invoices?sslmode=disable", db.DSN())
}
