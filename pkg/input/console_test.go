package input

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfirmNonTerminal(t *testing.T) {
	tests := []struct {
		answer       string
		defaultValue bool
		expected     bool
	}{
		{"yes\n", false, true},
		{"y\n", false, true},
		{"Y\n", false, true},
		{"YES\n", false, true},
		{"no\n", true, false},
		{"sure\n", false, false},
		{"\n", false, false},
		{"\n", true, true},
		{"", true, true},
	}

	for _, test := range tests {
		t.Run(strings.TrimSpace(test.answer), func(t *testing.T) {
			var out bytes.Buffer
			console := NewConsole(false, false, &out, strings.NewReader(test.answer))

			confirmed, err := console.Confirm(context.Background(), ConsoleOptions{
				Message:      "Apply these changes?",
				DefaultValue: test.defaultValue,
			})
			require.NoError(t, err)
			require.Equal(t, test.expected, confirmed)
			require.Contains(t, out.String(), "Apply these changes?")
		})
	}
}

func TestPromptNonTerminal(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(false, false, &out, strings.NewReader("  Web app with MySQL \nleft over\n"))

	value, err := console.Prompt(context.Background(), ConsoleOptions{Message: "What do you want to build?"})
	require.NoError(t, err)
	require.Equal(t, "Web app with MySQL", value)

	// only the first line is consumed
	value, err = console.Prompt(context.Background(), ConsoleOptions{Message: "Again?"})
	require.NoError(t, err)
	require.Equal(t, "left over", value)
}

func TestPromptDefault(t *testing.T) {
	console := NewConsole(false, false, &bytes.Buffer{}, strings.NewReader("\n"))

	value, err := console.Prompt(context.Background(), ConsoleOptions{Message: "Region?", DefaultValue: "us-east-1"})
	require.NoError(t, err)
	require.Equal(t, "us-east-1", value)
}

func TestNoPrompt(t *testing.T) {
	console := NewConsole(true, false, &bytes.Buffer{}, strings.NewReader("yes\n"))

	confirmed, err := console.Confirm(context.Background(), ConsoleOptions{Message: "Destroy?"})
	require.NoError(t, err)
	require.False(t, confirmed, "no-prompt answers the default, not the input stream")

	confirmed, err = console.Confirm(context.Background(), ConsoleOptions{Message: "Apply?", DefaultValue: true})
	require.NoError(t, err)
	require.True(t, confirmed)

	_, err = console.Prompt(context.Background(), ConsoleOptions{Message: "Request?"})
	require.Error(t, err)
}

func TestMessage(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(false, false, &out, strings.NewReader(""))
	console.Message(context.Background(), "hello")
	require.Equal(t, "hello\n", out.String())
	require.Same(t, &out, console.Writer())
}
