package mockexec

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mini-infragpt/infragpt/pkg/exec"
)

// A predicate function definition for registering expressions
type CommandWhenPredicate func(args exec.RunArgs, command string) bool

// An action definition for providing responses or errors for a command
type RespondFn func(args exec.RunArgs) (exec.RunResult, error)

// MockCommandRunner is a mock implementation of exec.CommandRunner
type MockCommandRunner struct {
	mu          sync.Mutex
	expressions []*CommandExpression
	calls       []exec.RunArgs
}

func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{}
}

// Run finds the first registered expression matching the command and returns its response
func (m *MockCommandRunner) Run(ctx context.Context, args exec.RunArgs) (exec.RunResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, args)
	expressions := m.expressions
	m.mu.Unlock()

	command := strings.TrimSpace(fmt.Sprintf("%s %s", args.Cmd, strings.Join(args.Args, " ")))

	for _, expr := range expressions {
		if expr.predicateFn(args, command) {
			if expr.respondFn != nil {
				return expr.respondFn(args)
			}

			return expr.response, expr.err
		}
	}

	panic(fmt.Sprintf("No mock found for command: '%s'", command))
}

// Calls returns every RunArgs the mock received, in order
func (m *MockCommandRunner) Calls() []exec.RunArgs {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]exec.RunArgs(nil), m.calls...)
}

// When registers an expression that matches commands
func (m *MockCommandRunner) When(predicate CommandWhenPredicate) *CommandExpression {
	expr := &CommandExpression{
		runner:      m,
		predicateFn: predicate,
	}

	m.mu.Lock()
	m.expressions = append(m.expressions, expr)
	m.mu.Unlock()

	return expr
}

// CommandExpression is an expression with a response or error
type CommandExpression struct {
	response    exec.RunResult
	err         error
	respondFn   RespondFn
	runner      *MockCommandRunner
	predicateFn CommandWhenPredicate
}

// Sets the response that will be returned for the current expression
func (e *CommandExpression) Respond(response exec.RunResult) *MockCommandRunner {
	e.response = response
	return e.runner
}

// Sets the error that will be returned for the current expression
func (e *CommandExpression) SetError(err error) *MockCommandRunner {
	e.err = err
	return e.runner
}

// Sets the function that will be used to provide the response or error for the current expression
func (e *CommandExpression) RespondFn(fn RespondFn) *MockCommandRunner {
	e.respondFn = fn
	return e.runner
}
