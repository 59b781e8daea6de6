package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// AWS error codes
const (
	ResourceNotFoundException = "ResourceNotFoundException"
	AccessDeniedException     = "AccessDeniedException"
)

// ManagerAPI is the subset of the Secrets Manager client used here.
type ManagerAPI interface {
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerProvider resolves secret names to AWS Secrets Manager secret ids.
// Names without a mapping are reported as not found so a Chain can fall through.
type SecretsManagerProvider struct {
	api       ManagerAPI
	secretIds map[string]string
	log       *zap.Logger
}

func NewSecretsManagerProvider(api ManagerAPI, secretIds map[string]string, log *zap.Logger) *SecretsManagerProvider {
	if log == nil {
		log = zap.NewNop()
	}

	return &SecretsManagerProvider{
		api:       api,
		secretIds: secretIds,
		log:       log,
	}
}

// NewSecretsManagerProviderFromConfig builds the provider on top of a loaded AWS config.
func NewSecretsManagerProviderFromConfig(
	cfg aws.Config, secretIds map[string]string, log *zap.Logger) *SecretsManagerProvider {
	return NewSecretsManagerProvider(secretsmanager.NewFromConfig(cfg), secretIds, log)
}

func (p *SecretsManagerProvider) GetSecret(ctx context.Context, name string) (string, error) {
	secretId, ok := p.secretIds[name]
	if !ok || secretId == "" {
		return "", ErrSecretNotFound
	}

	p.log.Debug("retrieving secret", zap.String("name", name), zap.String("secretId", secretId))

	output, err := p.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretId),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case ResourceNotFoundException:
				// configured but missing is an error, not a reason to fall back
				return "", fmt.Errorf("secret %s does not exist: %s", secretId, apiErr.ErrorMessage())
			case AccessDeniedException:
				return "", fmt.Errorf("secret %s: %w", secretId, ErrAccessDenied)
			}
		}
		return "", fmt.Errorf("retrieving secret %s: %w", secretId, err)
	}

	switch {
	case output.SecretString != nil && *output.SecretString != "":
		return *output.SecretString, nil
	case len(output.SecretBinary) > 0:
		return string(output.SecretBinary), nil
	default:
		return "", fmt.Errorf("secret %s: %w", secretId, ErrSecretEmpty)
	}
}
