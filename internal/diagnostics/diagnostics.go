// Package diagnostics probes the service's collaborators for the health and
// configuration endpoints.
//
// Probes never fail: collaborator errors are folded into a Degraded result so
// the endpoints stay reachable while dependencies are down.
package diagnostics

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Service identity reported by the diagnostic endpoints.
const (
	ServiceName = "Notes API"
	Version     = "1.1.0"
)

// projectNotSet is reported when no project id is configured.
const projectNotSet = "Not set"

// Condition tags a probe result.
type Condition int

const (
	Healthy Condition = iota
	Degraded
)

func (c Condition) String() string {
	if c == Healthy {
		return "healthy"
	}
	return "degraded"
}

// Pinger reports whether a collaborator is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SecretSource resolves secrets by name.
type SecretSource interface {
	GetSecret(ctx context.Context, name string) (string, error)
	ProjectID() string
}

// SecretNames are the secrets read by the probes.
type SecretNames struct {
	Environment string
	DatabaseURL string
	JWT         string
}

// HealthResult is the outcome of a health probe.
type HealthResult struct {
	Condition      Condition
	Reason         string // set when Degraded
	StoreConnected bool
	SecretsReached bool
	Environment    string // set when Healthy
	CheckedAt      time.Time
}

// ConfigResult is a configuration snapshot, or the reason one could not be taken.
type ConfigResult struct {
	Condition          Condition
	Reason             string
	ProjectID          string
	Environment        string
	DatabaseConfigured bool
	JWTConfigured      bool
	StoreConnected     bool
}

// Checker runs the diagnostic probes.
type Checker struct {
	store   Pinger
	secrets SecretSource
	names   SecretNames
	logger  *zap.Logger
	now     func() time.Time
}

// NewChecker creates a Checker.
func NewChecker(store Pinger, secrets SecretSource, names SecretNames, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		store:   store,
		secrets: secrets,
		names:   names,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Health pings the note store and resolves the environment secret.
func (c *Checker) Health(ctx context.Context) HealthResult {
	result := HealthResult{
		Condition:      Healthy,
		StoreConnected: c.pingStore(ctx),
		CheckedAt:      c.now(),
	}

	env, err := c.secrets.GetSecret(ctx, c.names.Environment)
	if err != nil {
		c.logger.Error("health check failed", zap.Error(err))
		result.Condition = Degraded
		result.Reason = err.Error()
		return result
	}
	result.SecretsReached = true
	result.Environment = env

	if !result.StoreConnected {
		result.Condition = Degraded
		result.Reason = "note store unreachable"
	}

	return result
}

// Config resolves the configuration secrets. The database URL and JWT secret
// are reported only as configured or not; their values are never returned.
func (c *Checker) Config(ctx context.Context) ConfigResult {
	result := ConfigResult{
		Condition: Healthy,
		ProjectID: c.secrets.ProjectID(),
	}
	if result.ProjectID == "" {
		result.ProjectID = projectNotSet
	}

	env, err := c.secrets.GetSecret(ctx, c.names.Environment)
	if err != nil {
		return c.configFailure(result, err)
	}
	dbURL, err := c.secrets.GetSecret(ctx, c.names.DatabaseURL)
	if err != nil {
		return c.configFailure(result, err)
	}
	jwt, err := c.secrets.GetSecret(ctx, c.names.JWT)
	if err != nil {
		return c.configFailure(result, err)
	}

	result.Environment = env
	result.DatabaseConfigured = dbURL != ""
	result.JWTConfigured = jwt != ""
	result.StoreConnected = c.pingStore(ctx)
	return result
}

func (c *Checker) configFailure(result ConfigResult, err error) ConfigResult {
	c.logger.Error("config snapshot failed", zap.Error(err))
	result.Condition = Degraded
	result.Reason = err.Error()
	return result
}

func (c *Checker) pingStore(ctx context.Context) bool {
	if c.store == nil {
		return false
	}
	if err := c.store.Ping(ctx); err != nil {
		c.logger.Warn("note store ping failed", zap.Error(err))
		return false
	}
	return true
}
