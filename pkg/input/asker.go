package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
)

type Asker func(p survey.Prompt, response interface{}) error

func NewAsker(noPrompt bool, isTerminal bool, w io.Writer, r io.Reader) Asker {
	if noPrompt {
		return askOneNoPrompt
	}

	return func(p survey.Prompt, response interface{}) error {
		return askOnePrompt(p, response, isTerminal, w, r)
	}
}

func askOneNoPrompt(p survey.Prompt, response interface{}) error {
	switch v := p.(type) {
	case *survey.Input:
		if v.Default == "" {
			return fmt.Errorf("no default response for prompt '%s'", v.Message)
		}

		*(response.(*string)) = v.Default
	case *survey.Confirm:
		*(response.(*bool)) = v.Default
	default:
		panic(fmt.Sprintf("don't know how to prompt for type %T", p))
	}

	return nil
}

func withShowCursor(o *survey.AskOptions) error {
	o.PromptConfig.ShowCursor = true
	return nil
}

// readLine reads up to and including delim without buffering past it, so the rest of the
// stream stays available for later prompts.
func readLine(r io.Reader) (string, error) {
	strBuf := bytes.Buffer{}
	readBuf := make([]byte, 1)
	for {
		bytesRead, err := r.Read(readBuf)
		if bytesRead > 0 {
			_ = strBuf.WriteByte(readBuf[0])
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return strBuf.String(), nil
			}
			return strBuf.String(), fmt.Errorf("reading response: %w", err)
		}

		if readBuf[0] == '\n' {
			return strBuf.String(), nil
		}
	}
}

func askOnePrompt(p survey.Prompt, response interface{}, isTerminal bool, stdout io.Writer, stdin io.Reader) error {
	if isTerminal {
		opts := []survey.AskOpt{}

		if _, ok := p.(*survey.Input); ok {
			opts = append(opts, withShowCursor)
		}

		opts = append(opts, survey.WithIcons(func(icons *survey.IconSet) {
			icons.Question.Format = "blue+b"
			icons.Help.Format = "black+h"
			icons.Help.Text = "Hint:"
		}))

		return survey.AskOne(p, response, opts...)
	}

	switch v := p.(type) {
	case *survey.Input:
		fmt.Fprintf(stdout, "%s ", v.Message)
		if v.Default != "" {
			fmt.Fprintf(stdout, "(or hit enter to use the default %s) ", v.Default)
		}
		result, err := readLine(stdin)
		if err != nil {
			return err
		}
		result = strings.TrimSpace(result)
		if result == "" {
			result = v.Default
		}
		*(response.(*string)) = result
		return nil
	case *survey.Confirm:
		hint := "(y/N)"
		if v.Default {
			hint = "(Y/n)"
		}
		fmt.Fprintf(stdout, "%s %s: ", v.Message, color.HiBlackString(hint))
		result, err := readLine(stdin)
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(result)) {
		case "":
			*(response.(*bool)) = v.Default
		case "y", "yes":
			*(response.(*bool)) = true
		default:
			*(response.(*bool)) = false
		}
		return nil
	default:
		return fmt.Errorf("don't know how to prompt for type %T", p)
	}
}
