package mockinput

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/mini-infragpt/infragpt/pkg/input"
)

// A predicate function definition for registering expressions
type WhenPredicate func(options input.ConsoleOptions) bool

// An action definition for providing responses or errors for an interaction
type RespondFn func(options input.ConsoleOptions) (any, error)

// A mock implementation of the input.Console interface
type MockConsole struct {
	expressions []*MockConsoleExpression
	log         []string
	writer      bytes.Buffer
}

func NewMockConsole() *MockConsole {
	return &MockConsole{
		expressions: []*MockConsoleExpression{},
	}
}

// Output returns every message and prompt text in the order it was shown
func (c *MockConsole) Output() []string {
	return c.log
}

func (c *MockConsole) Writer() io.Writer {
	return &c.writer
}

// Written returns what was written directly to Writer
func (c *MockConsole) Written() string {
	return c.writer.String()
}

// Prints a message to the console
func (c *MockConsole) Message(ctx context.Context, message string) {
	c.log = append(c.log, message)
}

// Prints a confirmation message to the console for the user to confirm
func (c *MockConsole) Confirm(ctx context.Context, options input.ConsoleOptions) (bool, error) {
	c.log = append(c.log, options.Message)
	value, err := c.respond("Confirm", options)
	if err != nil {
		return false, err
	}
	return value.(bool), nil
}

// Writes a single answer prompt to the console for the user to complete
func (c *MockConsole) Prompt(ctx context.Context, options input.ConsoleOptions) (string, error) {
	c.log = append(c.log, options.Message)
	value, err := c.respond("Prompt", options)
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// Finds a matching mock expression and returns the configured value
func (c *MockConsole) respond(command string, options input.ConsoleOptions) (any, error) {
	var match *MockConsoleExpression

	for _, expr := range c.expressions {
		if command == expr.command && expr.predicateFn(options) {
			match = expr
			break
		}
	}

	if match == nil {
		panic(fmt.Sprintf("No mock found for command: '%s' with options: '%+v'", command, options))
	}

	return match.respond(options)
}

// Registers a prompt expression for mocking in unit tests
func (c *MockConsole) WhenPrompt(predicate WhenPredicate) *MockConsoleExpression {
	return c.when("Prompt", predicate)
}

// Registers a confirmation expression for mocking in unit tests
func (c *MockConsole) WhenConfirm(predicate WhenPredicate) *MockConsoleExpression {
	return c.when("Confirm", predicate)
}

func (c *MockConsole) when(command string, predicate WhenPredicate) *MockConsoleExpression {
	expr := MockConsoleExpression{
		command:     command,
		console:     c,
		predicateFn: predicate,
	}

	c.expressions = append(c.expressions, &expr)
	return &expr
}

// MockConsoleExpression is an expression with options response or error
type MockConsoleExpression struct {
	command     string
	respond     RespondFn
	console     *MockConsole
	predicateFn WhenPredicate
}

// Sets the response that will be returned for the current expression
func (e *MockConsoleExpression) Respond(value any) *MockConsole {
	e.respond = func(_ input.ConsoleOptions) (any, error) { return value, nil }
	return e.console
}

// Sets the error that will be returned for the current expression
func (e *MockConsoleExpression) SetError(err error) *MockConsole {
	e.respond = func(_ input.ConsoleOptions) (any, error) { return nil, err }
	return e.console
}

// Sets the function that will be used to provide the response or error for the current expression
func (e *MockConsoleExpression) RespondFn(respond RespondFn) *MockConsole {
	e.respond = respond
	return e.console
}
