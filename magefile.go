//go:build mage
// +build mage

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/magefile/mage/mg"
)

type InfraGPT mg.Namespace

const versionVar = "github.com/mini-infragpt/infragpt/internal.Version"

// Build compiles ./bin/infragpt. INFRAGPT_VERSION and INFRAGPT_COMMIT are stamped into the binary when set.
func (InfraGPT) Build(ctx context.Context) error {
	args := []string{"build", "-o", "./bin/infragpt"}
	if version := os.Getenv("INFRAGPT_VERSION"); version != "" {
		commit := os.Getenv("INFRAGPT_COMMIT")
		if commit == "" {
			commit = strings.Repeat("0", 40)
		}
		args = append(args, "-ldflags", fmt.Sprintf("-X '%s=%s (commit %s)'", versionVar, version, commit))
	}
	args = append(args, ".")

	cmdStr, cmd := runIn(".", "go", args...)
	fmt.Println(cmdStr)
	return cmd()
}

func (InfraGPT) Test(ctx context.Context) error {
	cmdStr, cmd := runIn(".", "go", "test", "./...")
	fmt.Println(cmdStr)
	return cmd()
}

// Examples regenerates the configuration of each sample request into ./bin/examples.
func (InfraGPT) Examples(ctx context.Context) error {
	mg.CtxDeps(ctx, InfraGPT.Build)

	requests := map[string]string{
		"web-server":    "I need a simple web server",
		"api-postgres":  "Create an API with PostgreSQL",
		"web-app-mysql": "Web app with MySQL",
	}

	for name, request := range requests {
		cmdStr, cmd := runIn(".", "./bin/infragpt", "generate", "--output-dir", "./bin/examples/"+name, request)
		fmt.Println(cmdStr)
		if err := cmd(); err != nil {
			return err
		}
	}
	return nil
}

func runIn(cwd string, cmd string, args ...string) (string, func() error) {
	c := exec.Command(cmd, args...)
	c.Dir = cwd
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.String(), func() error {
		return c.Run()
	}
}
