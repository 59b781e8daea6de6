package exec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedactSensitiveData(t *testing.T) {
	tests := []struct {
		scenario string
		input    string
		expected string
	}{
		{
			scenario: "sts credentials",
			input:    `{"AccessKeyId": "AKIA", "SecretAccessKey": "abc/123", "SessionToken": "tok"}`,
			expected: `{"AccessKeyId": "AKIA", "SecretAccessKey": "<redacted>", "SessionToken": "<redacted>"}`,
		},
		{
			scenario: "hcl password attribute",
			input:    "  password            = \"ChangeMe123!\"\n",
			expected: "  password            = \"<redacted>\"\n",
		},
		{
			scenario: "password flag",
			input:    "mysql --username admin --password hunter2",
			expected: "mysql --username admin --password <redacted>",
		},
		{
			scenario: "terraform var",
			input:    "apply -var=db_password=s3cret",
			expected: "apply -var=db_password=<redacted>",
		},
		{
			scenario: "nothing to redact",
			input:    "terraform -chdir=generated-terraform init",
			expected: "terraform -chdir=generated-terraform init",
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			require.Equal(t, test.expected, RedactSensitiveData(test.input))
		})
	}
}
