// Package secrets resolves credentials that end up in generated configuration.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Names of the secrets the generator asks for.
const (
	DatabasePassword = "db_password"
)

// PlaceholderDatabasePassword is used when no provider knows the database password.
// It is only suitable for throwaway demo environments.
const PlaceholderDatabasePassword = "ChangeMe123!"

var (
	ErrSecretNotFound = errors.New("secret not found")
	ErrSecretEmpty    = errors.New("secret value is empty")
	ErrAccessDenied   = errors.New("access denied to secret")
)

// Provider returns the value of a named secret.
type Provider interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// EnvProvider reads secrets from environment variables named INFRAGPT_<NAME>.
type EnvProvider struct {
	lookupEnv func(string) (string, bool)
}

func NewEnvProvider() *EnvProvider {
	return &EnvProvider{lookupEnv: os.LookupEnv}
}

// EnvVarName returns the environment variable consulted for a secret.
func EnvVarName(name string) string {
	return "INFRAGPT_" + strings.ToUpper(name)
}

func (p *EnvProvider) GetSecret(ctx context.Context, name string) (string, error) {
	value, ok := p.lookupEnv(EnvVarName(name))
	if !ok {
		return "", ErrSecretNotFound
	}
	if value == "" {
		return "", ErrSecretEmpty
	}
	return value, nil
}

// StaticProvider serves secrets from a fixed map.
type StaticProvider map[string]string

func (p StaticProvider) GetSecret(ctx context.Context, name string) (string, error) {
	value, ok := p[name]
	if !ok {
		return "", ErrSecretNotFound
	}
	if value == "" {
		return "", ErrSecretEmpty
	}
	return value, nil
}

// Chain asks each provider in turn and returns the first value found.
// Providers reporting ErrSecretNotFound are skipped, any other error stops the lookup.
type Chain []Provider

func (c Chain) GetSecret(ctx context.Context, name string) (string, error) {
	for _, provider := range c {
		value, err := provider.GetSecret(ctx, name)
		if errors.Is(err, ErrSecretNotFound) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("resolving secret %s: %w", name, err)
		}
		return value, nil
	}

	return "", fmt.Errorf("resolving secret %s: %w", name, ErrSecretNotFound)
}

type placeholderProvider struct {
	log *zap.Logger
}

// NewPlaceholderProvider returns a provider that knows only the demo database password and
// logs a warning every time it hands it out.
func NewPlaceholderProvider(log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &placeholderProvider{log: log}
}

func (p *placeholderProvider) GetSecret(ctx context.Context, name string) (string, error) {
	if name != DatabasePassword {
		return "", ErrSecretNotFound
	}

	p.log.Warn("using placeholder database password, set a real one before deploying anything long lived",
		zap.String("env", EnvVarName(name)))

	return PlaceholderDatabasePassword, nil
}
