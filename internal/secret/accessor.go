// Package secret resolves named configuration values from a managed secret store.
package secret

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/notesapi/notesapi/internal/metrics"
)

var (
	// ErrConfiguration means no project id is available to namespace lookups.
	ErrConfiguration = errors.New("secret store project is not configured")
	// ErrAccess is matched by every *AccessError.
	ErrAccess = errors.New("secret access failed")
	// ErrSecretNotFound is returned by backends when no version exists.
	ErrSecretNotFound = errors.New("secret not found")
)

// AccessError reports a failed lookup of a named secret.
// Error() names the secret only; the backend cause is reachable through Unwrap.
type AccessError struct {
	Name string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("failed to access secret %q", e.Name)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// Is reports ErrAccess as a match so callers need not know the concrete type.
func (e *AccessError) Is(target error) bool {
	return target == ErrAccess
}

// Backend reads the latest version of a secret within a project.
type Backend interface {
	AccessLatest(ctx context.Context, project, name string) (string, error)
}

// Accessor resolves secrets by name. Every call is a fresh lookup.
type Accessor struct {
	backend   Backend
	projectID string
	metrics   metrics.Recorder
	logger    *zap.Logger
}

// NewAccessor creates an Accessor. A nil recorder or logger is replaced with a no-op.
func NewAccessor(backend Backend, projectID string, recorder metrics.Recorder, logger *zap.Logger) *Accessor {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Accessor{
		backend:   backend,
		projectID: projectID,
		metrics:   recorder,
		logger:    logger,
	}
}

// ProjectID returns the project the accessor namespaces lookups under.
func (a *Accessor) ProjectID() string {
	return a.projectID
}

// GetSecret returns the latest value of the named secret.
func (a *Accessor) GetSecret(ctx context.Context, name string) (string, error) {
	if a.projectID == "" {
		a.metrics.IncSecretAccess(metrics.StatusError)
		a.logger.Error("secret access failed",
			zap.String("secret", name),
			zap.Error(ErrConfiguration),
		)
		return "", ErrConfiguration
	}

	value, err := a.backend.AccessLatest(ctx, a.projectID, name)
	if err != nil {
		a.metrics.IncSecretAccess(metrics.StatusError)
		a.logger.Error("secret access failed",
			zap.String("secret", name),
			zap.String("project", a.projectID),
			zap.Error(err),
		)
		return "", &AccessError{Name: name, Err: err}
	}

	a.metrics.IncSecretAccess(metrics.StatusSuccess)
	a.logger.Info("secret resolved",
		zap.String("secret", name),
		zap.String("project", a.projectID),
	)
	return value, nil
}

// Pinger is implemented by backends that can report connectivity cheaply.
type Pinger interface {
	Ping(ctx context.Context) error
}
