// Package app builds the service from configuration: it opens the note store
// and secret backend, wires services and handlers, and assembles the router.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/notesapi/notesapi/internal/config"
	"github.com/notesapi/notesapi/internal/handler"
	"github.com/notesapi/notesapi/internal/metrics"
	"github.com/notesapi/notesapi/internal/repository"
	"github.com/notesapi/notesapi/internal/secret"
	"github.com/notesapi/notesapi/internal/server"
)

const metricsNamespace = "notes"

// Deps are the collaborators the router is built from.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Store    repository.NoteStore
	Secrets  secret.Backend
	Recorder metrics.Recorder
	// Metrics serves GET /metrics. The route is not registered when nil.
	Metrics *handler.MetricsHandler
}

type component struct {
	name  string
	close func() error
}

// App is a wired service instance.
type App struct {
	router     *chi.Mux
	logger     *zap.Logger
	components []component
}

// New opens every backend selected by cfg and wires the router over them.
// Call Close (or RegisterShutdown) to release the clients.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	var (
		recorder       metrics.Recorder = metrics.NewNoop()
		metricsHandler *handler.MetricsHandler
	)
	if cfg.MetricsEnabled {
		prom := metrics.NewPrometheus(metricsNamespace)
		recorder = prom
		metricsHandler = handler.NewMetricsHandler(prom.Handler())
	}

	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg != nil {
			return *awsCfg, nil
		}
		loaded, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
		}
		awsCfg = &loaded
		return loaded, nil
	}

	store, err := openStore(ctx, cfg, loadAWS)
	if err != nil {
		return nil, fmt.Errorf("open note store: %w", err)
	}
	logger.Info("note store opened", zap.String("backend", cfg.NoteStore))

	backend, closeBackend, err := openSecretBackend(ctx, cfg, loadAWS)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("open secret backend: %w", err)
	}
	logger.Info("secret backend opened", zap.String("backend", cfg.SecretBackend))

	a := Build(Deps{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Secrets:  backend,
		Recorder: recorder,
		Metrics:  metricsHandler,
	})
	a.components = []component{
		{name: "note_store", close: store.Close},
		{name: "secret_backend", close: closeBackend},
	}

	return a, nil
}

// Build wires an App over already-open collaborators. The App does not own
// them; Close is a no-op unless New opened them.
func Build(deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		router: NewRouter(deps),
		logger: logger,
	}
}

// Router returns the HTTP router.
func (a *App) Router() *chi.Mux {
	return a.router
}

// RegisterShutdown hands the owned clients to srv in the order they were
// opened, so they are closed in reverse.
func (a *App) RegisterShutdown(srv *server.Server) {
	for _, c := range a.components {
		closeFn := c.close
		srv.OnShutdown(c.name, func(context.Context) error {
			return closeFn()
		})
	}
}

// Close releases the owned clients in reverse opening order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.components) - 1; i >= 0; i-- {
		if err := a.components[i].close(); err != nil {
			a.logger.Error("close failed", zap.String("component", a.components[i].name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", a.components[i].name, err))
		}
	}
	a.components = nil
	return errors.Join(errs...)
}

func openStore(ctx context.Context, cfg *config.Config, loadAWS func() (aws.Config, error)) (repository.NoteStore, error) {
	switch cfg.NoteStore {
	case config.NoteStorePostgres:
		store, err := repository.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.NoteStoreDynamoDB:
		awsCfg, err := loadAWS()
		if err != nil {
			return nil, err
		}
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.DynamoDBEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
			}
		})
		return repository.NewDynamo(client, cfg.DynamoDBTable), nil

	case config.NoteStoreSQLite:
		store, err := repository.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown note store %q", cfg.NoteStore)
	}
}

func openSecretBackend(ctx context.Context, cfg *config.Config, loadAWS func() (aws.Config, error)) (secret.Backend, func() error, error) {
	switch cfg.SecretBackend {
	case config.SecretBackendRedis:
		backend, err := secret.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return backend, backend.Close, nil

	case config.SecretBackendSecretsManager:
		awsCfg, err := loadAWS()
		if err != nil {
			return nil, nil, err
		}
		backend := secret.NewSecretsManager(secretsmanager.NewFromConfig(awsCfg))
		return backend, func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown secret backend %q", cfg.SecretBackend)
	}
}
