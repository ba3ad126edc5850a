// Package main runs the Notes API as an AWS Lambda behind an API Gateway HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"go.uber.org/zap"

	"github.com/notesapi/notesapi/internal/app"
	"github.com/notesapi/notesapi/internal/config"
	"github.com/notesapi/notesapi/internal/logging"
)

var (
	// chiLambda wraps the chi router for API Gateway v2 events.
	chiLambda *chiadapter.ChiLambdaV2

	logger *zap.Logger

	coldStart = true
)

// init runs during cold start. Clients opened here live for the lifetime of
// the execution environment.
func init() {
	started := time.Now()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err = logging.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	application, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	chiLambda = chiadapter.NewV2(application.Router())

	logger.Info("lambda cold start completed",
		zap.Duration("duration", time.Since(started)),
		zap.String("note_store", cfg.NoteStore),
	)
}

// Handler proxies an API Gateway request through the router.
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	resp, err := chiLambda.ProxyWithContextV2(ctx, req)

	logger.Info("lambda request",
		zap.String("method", req.RequestContext.HTTP.Method),
		zap.String("path", req.RequestContext.HTTP.Path),
		zap.String("aws_request_id", req.RequestContext.RequestID),
		zap.Int("status", resp.StatusCode),
		zap.Bool("cold_start", coldStart),
	)
	coldStart = false

	if err != nil {
		logger.Error("lambda proxy error", zap.Error(err))
	}
	return resp, err
}

func main() {
	lambda.Start(Handler)
}
