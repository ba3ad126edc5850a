package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("GCP_PROJECT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.AppPort)
	assert.Equal(t, NoteStoreSQLite, cfg.NoteStore)
	assert.Equal(t, SecretBackendSecretsManager, cfg.SecretBackend)
	assert.Equal(t, "app-environment", cfg.SecretEnvironmentName)
	assert.Equal(t, "database-url", cfg.SecretDatabaseURLName)
	assert.Equal(t, "jwt-secret", cfg.SecretJWTName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.True(t, cfg.MetricsEnabled)
	assert.Empty(t, cfg.ProjectID())
}

func TestLoad_Port(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.AppPort)
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("NOTE_STORE", NoteStorePostgres)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_RedisBackendRequiresURL(t *testing.T) {
	t.Setenv("SECRET_BACKEND", SecretBackendRedis)
	t.Setenv("REDIS_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestLoad_UnknownBackends(t *testing.T) {
	t.Run("note store", func(t *testing.T) {
		t.Setenv("NOTE_STORE", "mongo")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("secret backend", func(t *testing.T) {
		t.Setenv("SECRET_BACKEND", "vault")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestConfig_ProjectID(t *testing.T) {
	tests := []struct {
		name    string
		primary string
		legacy  string
		want    string
	}{
		{name: "neither set", want: ""},
		{name: "primary only", primary: "proj-a", want: "proj-a"},
		{name: "legacy only", legacy: "proj-b", want: "proj-b"},
		{name: "primary wins", primary: "proj-a", legacy: "proj-b", want: "proj-a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{GoogleCloudProject: tt.primary, GCPProject: tt.legacy}
			assert.Equal(t, tt.want, cfg.ProjectID())
		})
	}
}

func TestConfig_ProjectIDFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("GCP_PROJECT", "legacy-project")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy-project", cfg.ProjectID())
}

func TestConfig_GetCORSAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " https://a.example.com, ,https://b.example.com "}
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.GetCORSAllowedOrigins())

	cfg.CORSAllowedOrigins = ""
	assert.Nil(t, cfg.GetCORSAllowedOrigins())
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	assert.True(t, cfg.IsDevelopment())

	cfg.AppEnv = "production"
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
}
