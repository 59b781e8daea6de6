package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEnvProvider(t *testing.T) {
	env := map[string]string{"INFRAGPT_DB_PASSWORD": "s3cret", "INFRAGPT_EMPTY": ""}
	provider := &EnvProvider{lookupEnv: func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}}

	value, err := provider.GetSecret(context.Background(), DatabasePassword)
	require.NoError(t, err)
	require.Equal(t, "s3cret", value)

	_, err = provider.GetSecret(context.Background(), "empty")
	require.ErrorIs(t, err, ErrSecretEmpty)

	_, err = provider.GetSecret(context.Background(), "other")
	require.ErrorIs(t, err, ErrSecretNotFound)
}

func TestChain(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstFoundWins", func(t *testing.T) {
		chain := Chain{
			StaticProvider{},
			StaticProvider{DatabasePassword: "from-second"},
			StaticProvider{DatabasePassword: "from-third"},
		}

		value, err := chain.GetSecret(ctx, DatabasePassword)
		require.NoError(t, err)
		require.Equal(t, "from-second", value)
	})

	t.Run("ErrorStops", func(t *testing.T) {
		chain := Chain{
			StaticProvider{DatabasePassword: ""},
			StaticProvider{DatabasePassword: "unreachable"},
		}

		_, err := chain.GetSecret(ctx, DatabasePassword)
		require.ErrorIs(t, err, ErrSecretEmpty)
	})

	t.Run("NothingFound", func(t *testing.T) {
		_, err := Chain{StaticProvider{}}.GetSecret(ctx, DatabasePassword)
		require.ErrorIs(t, err, ErrSecretNotFound)
	})
}

func TestPlaceholderProvider(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	provider := NewPlaceholderProvider(zap.New(core))

	value, err := provider.GetSecret(context.Background(), DatabasePassword)
	require.NoError(t, err)
	require.Equal(t, PlaceholderDatabasePassword, value)
	require.Equal(t, 1, logs.Len())

	_, err = provider.GetSecret(context.Background(), "api_key")
	require.ErrorIs(t, err, ErrSecretNotFound)
}

type fakeManager struct {
	output *secretsmanager.GetSecretValueOutput
	err    error
	asked  []string
}

func (f *fakeManager) GetSecretValue(
	ctx context.Context,
	params *secretsmanager.GetSecretValueInput,
	optFns ...func(*secretsmanager.Options),
) (*secretsmanager.GetSecretValueOutput, error) {
	f.asked = append(f.asked, aws.ToString(params.SecretId))
	return f.output, f.err
}

func TestSecretsManagerProvider(t *testing.T) {
	ctx := context.Background()
	ids := map[string]string{DatabasePassword: "infragpt/db"}

	t.Run("String", func(t *testing.T) {
		api := &fakeManager{output: &secretsmanager.GetSecretValueOutput{SecretString: aws.String("pw")}}
		value, err := NewSecretsManagerProvider(api, ids, nil).GetSecret(ctx, DatabasePassword)
		require.NoError(t, err)
		require.Equal(t, "pw", value)
		require.Equal(t, []string{"infragpt/db"}, api.asked)
	})

	t.Run("Binary", func(t *testing.T) {
		api := &fakeManager{output: &secretsmanager.GetSecretValueOutput{SecretBinary: []byte("bin")}}
		value, err := NewSecretsManagerProvider(api, ids, nil).GetSecret(ctx, DatabasePassword)
		require.NoError(t, err)
		require.Equal(t, "bin", value)
	})

	t.Run("Unmapped", func(t *testing.T) {
		api := &fakeManager{}
		_, err := NewSecretsManagerProvider(api, ids, nil).GetSecret(ctx, "api_key")
		require.ErrorIs(t, err, ErrSecretNotFound)
		require.Empty(t, api.asked)
	})

	t.Run("Empty", func(t *testing.T) {
		api := &fakeManager{output: &secretsmanager.GetSecretValueOutput{}}
		_, err := NewSecretsManagerProvider(api, ids, nil).GetSecret(ctx, DatabasePassword)
		require.ErrorIs(t, err, ErrSecretEmpty)
	})

	t.Run("AccessDenied", func(t *testing.T) {
		api := &fakeManager{err: &smithy.GenericAPIError{Code: AccessDeniedException, Message: "nope"}}
		_, err := NewSecretsManagerProvider(api, ids, nil).GetSecret(ctx, DatabasePassword)
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("Missing", func(t *testing.T) {
		api := &fakeManager{err: &smithy.GenericAPIError{Code: ResourceNotFoundException, Message: "gone"}}
		_, err := NewSecretsManagerProvider(api, ids, nil).GetSecret(ctx, DatabasePassword)
		require.Error(t, err)
		require.False(t, errors.Is(err, ErrSecretNotFound))
		require.Contains(t, err.Error(), "does not exist")
	})
}
