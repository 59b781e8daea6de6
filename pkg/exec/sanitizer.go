package exec

import (
	"regexp"
)

type redactRule struct {
	match   *regexp.Regexp
	replace string
}

const cRedacted = "<redacted>"

var redactRules = []redactRule{
	{
		regexp.MustCompile(`"(SecretAccessKey|SessionToken|secret_access_key|session_token)":(\s*)"[^"]*"`),
		`"$1":$2"` + cRedacted + `"`,
	},
	{
		regexp.MustCompile(`(?m)^(\s*password\s*=\s*)"[^"]*"`),
		`$1"` + cRedacted + `"`,
	},
	{
		regexp.MustCompile(`--password \S+`),
		"--password " + cRedacted,
	},
	{
		regexp.MustCompile(`-var=(db_password|password)=\S+`),
		"-var=$1=" + cRedacted,
	},
}

// RedactSensitiveData masks credentials that commonly show up in tool output.
func RedactSensitiveData(msg string) string {
	for _, rule := range redactRules {
		msg = rule.match.ReplaceAllString(msg, rule.replace)
	}

	return msg
}
