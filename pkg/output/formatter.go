package output

import (
	"fmt"
	"io"

	"github.com/mattn/go-colorable"
)

type Format string

const (
	JsonFormat  Format = "json"
	YamlFormat  Format = "yaml"
	TableFormat Format = "table"
	NoneFormat  Format = "none"
)

type Formatter interface {
	Kind() Format
	Format(obj interface{}, writer io.Writer, opts interface{}) error
}

func NewFormatter(format string) (Formatter, error) {
	switch format {
	case string(JsonFormat):
		return &JsonFormatter{}, nil
	case string(YamlFormat):
		return &YamlFormatter{}, nil
	case string(TableFormat):
		return &TableFormatter{}, nil
	case string(NoneFormat):
		return &NoneFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format %v", format)
	}
}

// NewStdout returns stdout wrapped so ANSI colors also work on Windows consoles.
func NewStdout() io.Writer {
	return colorable.NewColorableStdout()
}

// NewStderr is the stderr counterpart of NewStdout.
func NewStderr() io.Writer {
	return colorable.NewColorableStderr()
}

type NoneFormatter struct{}

func (f *NoneFormatter) Kind() Format {
	return NoneFormat
}

func (f *NoneFormatter) Format(obj interface{}, writer io.Writer, opts interface{}) error {
	return nil
}
