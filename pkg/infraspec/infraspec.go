// Package infraspec turns a free text request into an InfrastructureSpec using keyword containment.
package infraspec

import (
	"fmt"
	"strings"
)

const (
	DefaultInstanceType = "t2.micro"
	DefaultRegion       = "us-east-1"
)

type DatabaseType string

const (
	DatabasePostgres DatabaseType = "postgres"
	DatabaseMySQL    DatabaseType = "mysql"
	DatabaseNone     DatabaseType = "none"
)

func (d DatabaseType) Valid() bool {
	switch d {
	case DatabasePostgres, DatabaseMySQL, DatabaseNone:
		return true
	}
	return false
}

type AppType string

const (
	AppAPI AppType = "api"
	AppWeb AppType = "web"
)

func (a AppType) Valid() bool {
	return a == AppAPI || a == AppWeb
}

// InfrastructureSpec is the fixed shape record extracted from a request.
type InfrastructureSpec struct {
	InstanceType   string       `json:"instance_type"   yaml:"instance_type"`
	DatabaseNeeded bool         `json:"database_needed" yaml:"database_needed"`
	DatabaseType   DatabaseType `json:"database_type"   yaml:"database_type"`
	Region         string       `json:"region"          yaml:"region"`
	AppType        AppType      `json:"app_type"        yaml:"app_type"`
}

var (
	databaseKeywords = []string{"database", "db", "mysql", "postgres", "postgresql", "sql", "rds"}
	postgresKeywords = []string{"postgres", "postgresql"}
	mysqlKeywords    = []string{"mysql"}
	apiKeywords      = []string{"api", "backend", "rest"}
)

// Extract maps text to an InfrastructureSpec. Matching is case-insensitive substring containment,
// so "feedback" counts as "db" and "interest" as "rest". Extract never fails.
func Extract(text string) InfrastructureSpec {
	lower := strings.ToLower(text)

	spec := InfrastructureSpec{
		InstanceType: DefaultInstanceType,
		Region:       DefaultRegion,
		DatabaseType: DatabaseNone,
		AppType:      AppWeb,
	}

	spec.DatabaseNeeded = containsAny(lower, databaseKeywords)

	switch {
	case containsAny(lower, postgresKeywords):
		spec.DatabaseType = DatabasePostgres
	case containsAny(lower, mysqlKeywords):
		spec.DatabaseType = DatabaseMySQL
	case spec.DatabaseNeeded:
		spec.DatabaseType = DatabasePostgres
	}

	if containsAny(lower, apiKeywords) {
		spec.AppType = AppAPI
	}

	return spec
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// Validate checks the field domains and that DatabaseType is none exactly when no database is needed.
func (s InfrastructureSpec) Validate() error {
	if !s.DatabaseType.Valid() {
		return fmt.Errorf("invalid database_type %q", s.DatabaseType)
	}
	if !s.AppType.Valid() {
		return fmt.Errorf("invalid app_type %q", s.AppType)
	}
	if s.DatabaseNeeded == (s.DatabaseType == DatabaseNone) {
		return fmt.Errorf(
			"database_type %q is inconsistent with database_needed=%t", s.DatabaseType, s.DatabaseNeeded)
	}
	if s.Region == "" {
		return fmt.Errorf("region is required")
	}
	if s.InstanceType == "" {
		return fmt.Errorf("instance_type is required")
	}
	return nil
}
