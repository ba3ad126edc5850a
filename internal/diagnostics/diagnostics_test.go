package diagnostics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notesapi/notesapi/internal/secret"
	"github.com/notesapi/notesapi/internal/testutil"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	okStore   = pingFunc(func(context.Context) error { return nil })
	downStore = pingFunc(func(context.Context) error { return errors.New("connection refused") })
)

var names = SecretNames{Environment: "app-environment", DatabaseURL: "database-url", JWT: "jwt-secret"}

func seededAccessor(project string) *secret.Accessor {
	backend := testutil.NewSecretBackend().
		Add(project, "app-environment", "staging").
		Add(project, "database-url", "postgres://db").
		Add(project, "jwt-secret", "")
	return secret.NewAccessor(backend, project, nil, zap.NewNop())
}

func TestHealth_Healthy(t *testing.T) {
	checker := NewChecker(okStore, seededAccessor("proj"), names, nil)
	fixed := time.Date(2024, 6, 4, 12, 0, 0, 0, time.UTC)
	checker.now = func() time.Time { return fixed }

	result := checker.Health(context.Background())

	assert.Equal(t, Healthy, result.Condition)
	assert.Empty(t, result.Reason)
	assert.True(t, result.StoreConnected)
	assert.True(t, result.SecretsReached)
	assert.Equal(t, "staging", result.Environment)
	assert.Equal(t, fixed, result.CheckedAt)
}

func TestHealth_SecretStoreDown(t *testing.T) {
	backend := testutil.NewSecretBackend()
	backend.Err = errors.New("unavailable")
	checker := NewChecker(okStore, secret.NewAccessor(backend, "proj", nil, nil), names, nil)

	result := checker.Health(context.Background())

	assert.Equal(t, Degraded, result.Condition)
	assert.False(t, result.SecretsReached)
	assert.True(t, result.StoreConnected)
	assert.Contains(t, result.Reason, "app-environment")
	assert.NotContains(t, result.Reason, "unavailable")
}

func TestHealth_MissingProject(t *testing.T) {
	checker := NewChecker(okStore, seededAccessor(""), names, nil)

	result := checker.Health(context.Background())

	assert.Equal(t, Degraded, result.Condition)
	assert.Equal(t, secret.ErrConfiguration.Error(), result.Reason)
}

func TestHealth_StoreDown(t *testing.T) {
	checker := NewChecker(downStore, seededAccessor("proj"), names, nil)

	result := checker.Health(context.Background())

	assert.Equal(t, Degraded, result.Condition)
	assert.False(t, result.StoreConnected)
	assert.True(t, result.SecretsReached)
	assert.Equal(t, "note store unreachable", result.Reason)
}

func TestConfig_Snapshot(t *testing.T) {
	checker := NewChecker(okStore, seededAccessor("proj"), names, nil)

	result := checker.Config(context.Background())

	require.Equal(t, Healthy, result.Condition)
	assert.Equal(t, "proj", result.ProjectID)
	assert.Equal(t, "staging", result.Environment)
	assert.True(t, result.DatabaseConfigured)
	assert.False(t, result.JWTConfigured, "empty secret is not configured")
	assert.True(t, result.StoreConnected)
}

func TestConfig_SecretMissing(t *testing.T) {
	backend := testutil.NewSecretBackend().Add("proj", "app-environment", "prod")
	checker := NewChecker(okStore, secret.NewAccessor(backend, "proj", nil, nil), names, nil)

	result := checker.Config(context.Background())

	assert.Equal(t, Degraded, result.Condition)
	assert.Contains(t, result.Reason, "database-url")
	assert.Empty(t, result.Environment)
}

func TestConfig_ProjectNotSet(t *testing.T) {
	checker := NewChecker(okStore, seededAccessor(""), names, nil)

	result := checker.Config(context.Background())

	assert.Equal(t, Degraded, result.Condition)
	assert.Equal(t, "Not set", result.ProjectID)
}

func TestCondition_String(t *testing.T) {
	assert.Equal(t, "healthy", Healthy.String())
	assert.Equal(t, "degraded", Degraded.String())
}
