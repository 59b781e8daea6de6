package infraspec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		request  string
		expected InfrastructureSpec
	}{
		{
			request: "I need a simple web server",
			expected: InfrastructureSpec{
				InstanceType: "t2.micro", DatabaseNeeded: false, DatabaseType: DatabaseNone,
				Region: "us-east-1", AppType: AppWeb,
			},
		},
		{
			request: "Create an API with PostgreSQL database",
			expected: InfrastructureSpec{
				InstanceType: "t2.micro", DatabaseNeeded: true, DatabaseType: DatabasePostgres,
				Region: "us-east-1", AppType: AppAPI,
			},
		},
		{
			request: "Web app with MySQL",
			expected: InfrastructureSpec{
				InstanceType: "t2.micro", DatabaseNeeded: true, DatabaseType: DatabaseMySQL,
				Region: "us-east-1", AppType: AppWeb,
			},
		},
		{
			request: "backend service with an RDS instance",
			expected: InfrastructureSpec{
				InstanceType: "t2.micro", DatabaseNeeded: true, DatabaseType: DatabasePostgres,
				Region: "us-east-1", AppType: AppAPI,
			},
		},
		{
			request: "REST endpoint with mysql and postgres",
			expected: InfrastructureSpec{
				InstanceType: "t2.micro", DatabaseNeeded: true, DatabaseType: DatabasePostgres,
				Region: "us-east-1", AppType: AppAPI,
			},
		},
		{
			request: "",
			expected: InfrastructureSpec{
				InstanceType: "t2.micro", DatabaseNeeded: false, DatabaseType: DatabaseNone,
				Region: "us-east-1", AppType: AppWeb,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.request, func(t *testing.T) {
			require.Equal(t, test.expected, Extract(test.request))
		})
	}
}

func TestExtractSubstringMatches(t *testing.T) {
	// containment, not word matching
	feedback := Extract("a feedback form")
	require.True(t, feedback.DatabaseNeeded)
	require.Equal(t, DatabasePostgres, feedback.DatabaseType)

	require.Equal(t, AppAPI, Extract("a page of interest").AppType)
	require.Equal(t, AppAPI, Extract("a rapid prototype").AppType)
}

func TestExtractInvariants(t *testing.T) {
	requests := []string{
		"I need a simple web server",
		"Create an API with PostgreSQL database",
		"Web app with MySQL",
		"MYSQL",
		"SQL",
		"static site",
		"Backend with a DB",
		"postgresql",
		"🚀 rocket",
	}

	for _, request := range requests {
		spec := Extract(request)
		require.NoError(t, spec.Validate(), request)
		require.Equal(t, spec, Extract(request), "extract must be deterministic")
		require.Equal(t, spec, Extract(strings.ToUpper(request)), "extract must ignore case")
		require.Equal(t, DefaultInstanceType, spec.InstanceType)
		require.Equal(t, DefaultRegion, spec.Region)
	}
}

func TestValidate(t *testing.T) {
	valid := Extract("api with mysql")
	require.NoError(t, valid.Validate())

	inconsistent := valid
	inconsistent.DatabaseNeeded = false
	require.ErrorContains(t, inconsistent.Validate(), "inconsistent")

	noDb := Extract("web")
	noDb.DatabaseType = DatabaseMySQL
	require.Error(t, noDb.Validate())

	badApp := valid
	badApp.AppType = "worker"
	require.ErrorContains(t, badApp.Validate(), "app_type")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("Json", func(t *testing.T) {
		path := filepath.Join(dir, "spec.json")
		require.NoError(t, os.WriteFile(path,
			[]byte(`{"database_needed": true, "database_type": "mysql", "app_type": "api"}`), 0600))

		spec, err := LoadFile(path)
		require.NoError(t, err)
		require.Equal(t, InfrastructureSpec{
			InstanceType: "t2.micro", DatabaseNeeded: true, DatabaseType: DatabaseMySQL,
			Region: "us-east-1", AppType: AppAPI,
		}, spec)
	})

	t.Run("Yaml", func(t *testing.T) {
		path := filepath.Join(dir, "spec.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"database_needed: false\ndatabase_type: none\napp_type: web\nregion: eu-west-1\n"), 0600))

		spec, err := LoadFile(path)
		require.NoError(t, err)
		require.Equal(t, "eu-west-1", spec.Region)
		require.Equal(t, DatabaseNone, spec.DatabaseType)
	})

	t.Run("SchemaViolation", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path,
			[]byte(`{"database_needed": true, "database_type": "oracle", "app_type": "api"}`), 0600))

		_, err := LoadFile(path)
		require.ErrorIs(t, err, ErrInvalidSpec)
		require.Contains(t, err.Error(), "database_type")
	})

	t.Run("Inconsistent", func(t *testing.T) {
		path := filepath.Join(dir, "inconsistent.json")
		require.NoError(t, os.WriteFile(path,
			[]byte(`{"database_needed": false, "database_type": "postgres", "app_type": "web"}`), 0600))

		_, err := LoadFile(path)
		require.ErrorIs(t, err, ErrInvalidSpec)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "missing.json"))
		require.Error(t, err)
	})
}
