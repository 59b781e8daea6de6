package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mini-infragpt/infragpt/internal"
	"github.com/mini-infragpt/infragpt/pkg/input"
	"github.com/mini-infragpt/infragpt/test/mocks/mockinput"
	"github.com/stretchr/testify/require"
)

func TestReadRequest(t *testing.T) {
	isRequestPrompt := func(options input.ConsoleOptions) bool {
		return options.Message == "Your request:"
	}

	t.Run("FromArgs", func(t *testing.T) {
		console := mockinput.NewMockConsole()
		request, err := readRequest(context.Background(), console, []string{"Web", "app", "with", "MySQL"})
		require.NoError(t, err)
		require.Equal(t, "Web app with MySQL", request)
		require.Empty(t, console.Output())
	})

	t.Run("Prompted", func(t *testing.T) {
		console := mockinput.NewMockConsole()
		console.WhenPrompt(isRequestPrompt).Respond("  Create an API with PostgreSQL  ")

		request, err := readRequest(context.Background(), console, nil)
		require.NoError(t, err)
		require.Equal(t, "Create an API with PostgreSQL", request)
		require.Contains(t, console.Output(), "What infrastructure do you need?\n")
		require.Contains(t, console.Output(), "Your request:")
	})

	t.Run("EmptyAnswer", func(t *testing.T) {
		console := mockinput.NewMockConsole()
		console.WhenPrompt(isRequestPrompt).Respond("   ")

		_, err := readRequest(context.Background(), console, nil)
		require.True(t, errors.Is(err, internal.ErrEmptyRequest))

		var suggestionErr *internal.ErrorWithSuggestion
		require.True(t, errors.As(err, &suggestionErr))
		require.Contains(t, suggestionErr.Suggestion, requestExamples[1])
	})

	t.Run("Interrupted", func(t *testing.T) {
		console := mockinput.NewMockConsole()
		console.WhenPrompt(isRequestPrompt).SetError(terminal.InterruptErr)

		_, err := readRequest(context.Background(), console, nil)
		require.True(t, errors.Is(err, terminal.InterruptErr))
	})
}
