// Package generator renders an InfrastructureSpec into a Terraform configuration.
package generator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mini-infragpt/infragpt/pkg/infra/document"
	"github.com/mini-infragpt/infragpt/pkg/infraspec"
	"github.com/mini-infragpt/infragpt/pkg/osutil"
	"github.com/mini-infragpt/infragpt/pkg/secrets"
	"go.uber.org/zap"
)

const (
	DefaultOutputDir = "generated-terraform"
	FileName         = "main.tf"
)

// Credentials are the secret values embedded in the document.
type Credentials struct {
	DatabasePassword string
}

// Build assembles the document for spec: the base declarations followed by the database
// declarations when spec.DatabaseNeeded is set. Build is pure.
func Build(spec infraspec.InfrastructureSpec, creds Credentials) *document.Document {
	doc := document.New(baseNodes(spec)...)

	if spec.DatabaseNeeded {
		doc.Append(databaseNodes(spec, creds.DatabasePassword)...)
	}

	return doc
}

// Summary lists what the document for spec creates, one line per resource group.
func Summary(spec infraspec.InfrastructureSpec) []string {
	lines := []string{
		"VPC and Networking",
		"Security Groups",
		fmt.Sprintf("EC2 Instance (%s)", WebInstanceType),
	}
	if spec.DatabaseNeeded {
		lines = append(lines, fmt.Sprintf("RDS Database (%s)", spec.DatabaseType))
	}
	return lines
}

type Generator struct {
	secrets secrets.Provider
	log     *zap.Logger
}

func NewGenerator(secretProvider secrets.Provider, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}

	return &Generator{
		secrets: secretProvider,
		log:     log,
	}
}

// Render resolves credentials and returns the formatted configuration for spec.
// The secret provider is only consulted when a database is requested.
func (g *Generator) Render(ctx context.Context, spec infraspec.InfrastructureSpec) ([]byte, error) {
	var creds Credentials

	if spec.DatabaseNeeded {
		password, err := g.secrets.GetSecret(ctx, secrets.DatabasePassword)
		if err != nil {
			return nil, fmt.Errorf("resolving database credentials: %w", err)
		}
		creds.DatabasePassword = password
	}

	src, err := document.Render(Build(spec, creds))
	if err != nil {
		return nil, fmt.Errorf("rendering configuration: %w", err)
	}

	return src, nil
}

// Generate writes the configuration for spec to <outputDir>/main.tf, replacing any previous content,
// and returns the written path.
func (g *Generator) Generate(ctx context.Context, spec infraspec.InfrastructureSpec, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	src, err := g.Render(ctx, spec)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, FileName)

	// the file may carry the database password
	if err := osutil.WriteFileAtomic(path, src, osutil.PermissionFileOwnerOnly); err != nil {
		return "", fmt.Errorf("writing configuration: %w", err)
	}

	g.log.Debug("generated configuration",
		zap.String("path", path),
		zap.Bool("database", spec.DatabaseNeeded),
		zap.String("appType", string(spec.AppType)),
		zap.Int("bytes", len(src)),
	)

	return path, nil
}
