package secret

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/notesapi/notesapi/internal/metrics"
	"github.com/notesapi/notesapi/internal/testutil"
)

func newObservedAccessor(backend Backend, project string) (*Accessor, *observer.ObservedLogs, *metrics.InMemoryRecorder) {
	core, logs := observer.New(zapcore.DebugLevel)
	recorder := metrics.NewInMemory()
	return NewAccessor(backend, project, recorder, zap.New(core)), logs, recorder
}

func TestAccessor_GetSecret(t *testing.T) {
	backend := testutil.NewSecretBackend().
		Add("proj", "jwt-secret", "old").
		Add("proj", "jwt-secret", "s3cr3t-value")
	accessor, logs, recorder := newObservedAccessor(backend, "proj")

	value, err := accessor.GetSecret(context.Background(), "jwt-secret")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t-value", value, "latest version wins")

	entries := logs.FilterMessage("secret resolved").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "jwt-secret", fields["secret"])
	assert.Equal(t, "proj", fields["project"])

	assert.Equal(t, uint64(1), recorder.Snapshot().SecretAccessSuccess)
}

func TestAccessor_NeverLogsValue(t *testing.T) {
	backend := testutil.NewSecretBackend().Add("proj", "database-url", "postgres://user:hunter2@db/app")
	accessor, logs, _ := newObservedAccessor(backend, "proj")

	_, err := accessor.GetSecret(context.Background(), "database-url")
	require.NoError(t, err)

	for _, entry := range logs.All() {
		assert.NotContains(t, entry.Message, "hunter2")
		for _, v := range entry.ContextMap() {
			if s, ok := v.(string); ok {
				assert.NotContains(t, s, "hunter2")
			}
		}
	}
}

func TestAccessor_MissingProject(t *testing.T) {
	backend := testutil.NewSecretBackend().Add("", "jwt-secret", "value")
	accessor, logs, recorder := newObservedAccessor(backend, "")

	_, err := accessor.GetSecret(context.Background(), "jwt-secret")
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.False(t, errors.Is(err, ErrAccess))
	assert.Equal(t, 1, logs.FilterMessage("secret access failed").Len())
	assert.Equal(t, uint64(1), recorder.Snapshot().SecretAccessErrors)
}

func TestAccessor_BackendFailure(t *testing.T) {
	cause := errors.New("permission denied on projects/proj")
	backend := testutil.NewSecretBackend()
	backend.Err = cause
	accessor, logs, recorder := newObservedAccessor(backend, "proj")

	_, err := accessor.GetSecret(context.Background(), "app-environment")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAccess)
	assert.ErrorIs(t, err, cause)

	var accessErr *AccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Equal(t, "app-environment", accessErr.Name)
	assert.NotContains(t, err.Error(), "permission denied", "cause is for logs only")

	entries := logs.FilterMessage("secret access failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "app-environment", entries[0].ContextMap()["secret"])
	assert.Equal(t, uint64(1), recorder.Snapshot().SecretAccessErrors)
}

func TestAccessor_NotFoundCollapsesToAccessError(t *testing.T) {
	accessor, _, _ := newObservedAccessor(testutil.NewSecretBackend(), "proj")

	_, err := accessor.GetSecret(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAccess)
}

func TestAccessor_NilCollaborators(t *testing.T) {
	accessor := NewAccessor(testutil.NewSecretBackend().Add("p", "n", "v"), "p", nil, nil)

	value, err := accessor.GetSecret(context.Background(), "n")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
	assert.Equal(t, "p", accessor.ProjectID())
}
