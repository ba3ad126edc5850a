package secret

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

const currentStage = "AWSCURRENT"

// SecretsManagerAPI is the subset of the Secrets Manager client used here.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerBackend reads secrets from AWS Secrets Manager.
// Secrets are named "<project>/<name>".
type SecretsManagerBackend struct {
	client SecretsManagerAPI
}

// NewSecretsManager wraps a Secrets Manager client.
func NewSecretsManager(client SecretsManagerAPI) *SecretsManagerBackend {
	return &SecretsManagerBackend{client: client}
}

// AccessLatest returns the current version of the secret.
func (b *SecretsManagerBackend) AccessLatest(ctx context.Context, project, name string) (string, error) {
	out, err := b.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(SecretID(project, name)),
		VersionStage: aws.String(currentStage),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, SecretID(project, name))
		}
		return "", fmt.Errorf("get secret value: %w", err)
	}

	if out.SecretString != nil {
		return *out.SecretString, nil
	}
	if out.SecretBinary != nil {
		return string(out.SecretBinary), nil
	}
	return "", fmt.Errorf("%w: %s has no value", ErrSecretNotFound, SecretID(project, name))
}

// SecretID builds the Secrets Manager id for a project-scoped secret.
func SecretID(project, name string) string {
	return project + "/" + name
}
