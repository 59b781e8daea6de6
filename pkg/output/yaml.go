package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

type YamlFormatter struct{}

func (f *YamlFormatter) Kind() Format {
	return YamlFormat
}

func (f *YamlFormatter) Format(obj interface{}, writer io.Writer, _ interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)

	if err := encoder.Encode(obj); err != nil {
		return err
	}

	return encoder.Close()
}
