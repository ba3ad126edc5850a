package secret

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSecretsManager struct {
	mock.Mock
}

func (m *mockSecretsManager) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*secretsmanager.GetSecretValueOutput)
	return out, args.Error(1)
}

func TestSecretsManagerBackend_String(t *testing.T) {
	client := new(mockSecretsManager)
	client.On("GetSecretValue", mock.Anything, mock.MatchedBy(func(in *secretsmanager.GetSecretValueInput) bool {
		return aws.ToString(in.SecretId) == "proj/jwt-secret" && aws.ToString(in.VersionStage) == "AWSCURRENT"
	})).Return(&secretsmanager.GetSecretValueOutput{SecretString: aws.String("value")}, nil)

	value, err := NewSecretsManager(client).AccessLatest(context.Background(), "proj", "jwt-secret")
	require.NoError(t, err)
	assert.Equal(t, "value", value)
	client.AssertExpectations(t)
}

func TestSecretsManagerBackend_Binary(t *testing.T) {
	client := new(mockSecretsManager)
	client.On("GetSecretValue", mock.Anything, mock.Anything).
		Return(&secretsmanager.GetSecretValueOutput{SecretBinary: []byte("raw")}, nil)

	value, err := NewSecretsManager(client).AccessLatest(context.Background(), "proj", "n")
	require.NoError(t, err)
	assert.Equal(t, "raw", value)
}

func TestSecretsManagerBackend_NotFound(t *testing.T) {
	client := new(mockSecretsManager)
	client.On("GetSecretValue", mock.Anything, mock.Anything).
		Return(nil, &types.ResourceNotFoundException{Message: aws.String("nope")})

	_, err := NewSecretsManager(client).AccessLatest(context.Background(), "proj", "n")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestSecretsManagerBackend_TransportError(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	client := new(mockSecretsManager)
	client.On("GetSecretValue", mock.Anything, mock.Anything).Return(nil, cause)

	_, err := NewSecretsManager(client).AccessLatest(context.Background(), "proj", "n")
	assert.ErrorIs(t, err, cause)
	assert.False(t, errors.Is(err, ErrSecretNotFound))
}

func TestSecretsManagerBackend_Empty(t *testing.T) {
	client := new(mockSecretsManager)
	client.On("GetSecretValue", mock.Anything, mock.Anything).
		Return(&secretsmanager.GetSecretValueOutput{}, nil)

	_, err := NewSecretsManager(client).AccessLatest(context.Background(), "proj", "n")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}
