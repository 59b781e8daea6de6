package input

import (
	"context"
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
)

// Console is the user facing side of the CLI: messages, prompts and confirmations.
type Console interface {
	// Message prints a line of text.
	Message(ctx context.Context, message string)
	Prompt(ctx context.Context, options ConsoleOptions) (string, error)
	Confirm(ctx context.Context, options ConsoleOptions) (bool, error)
	// Writer is where Message output goes.
	Writer() io.Writer
}

type ConsoleOptions struct {
	Message      string
	Help         string
	DefaultValue any
}

type AskerConsole struct {
	asker  Asker
	writer io.Writer
}

// NewConsole creates a survey backed console. With noPrompt set every prompt answers its default.
func NewConsole(noPrompt bool, isTerminal bool, w io.Writer, r io.Reader) *AskerConsole {
	return &AskerConsole{
		asker:  NewAsker(noPrompt, isTerminal, w, r),
		writer: w,
	}
}

func (c *AskerConsole) Writer() io.Writer {
	return c.writer
}

func (c *AskerConsole) Message(ctx context.Context, message string) {
	fmt.Fprintln(c.writer, message)
}

func (c *AskerConsole) Prompt(ctx context.Context, options ConsoleOptions) (string, error) {
	var defaultValue string
	if value, ok := options.DefaultValue.(string); ok {
		defaultValue = value
	}

	prompt := &survey.Input{
		Message: options.Message,
		Default: defaultValue,
		Help:    options.Help,
	}

	var response string

	if err := c.asker(prompt, &response); err != nil {
		return "", err
	}

	return response, nil
}

func (c *AskerConsole) Confirm(ctx context.Context, options ConsoleOptions) (bool, error) {
	var defaultValue bool
	if value, ok := options.DefaultValue.(bool); ok {
		defaultValue = value
	}

	prompt := &survey.Confirm{
		Message: options.Message,
		Default: defaultValue,
		Help:    options.Help,
	}

	var response bool

	if err := c.asker(prompt, &response); err != nil {
		return false, err
	}

	return response, nil
}
