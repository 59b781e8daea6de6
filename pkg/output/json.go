package output

import (
	"encoding/json"
	"fmt"
	"io"
)

type JsonFormatter struct{}

func (f *JsonFormatter) Kind() Format {
	return JsonFormat
}

func (f *JsonFormatter) Format(obj interface{}, writer io.Writer, _ interface{}) error {
	b, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(writer, string(b))
	return err
}
