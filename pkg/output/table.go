package output

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"
	"text/template"
)

// Column is a table column. ValueTemplate is a text/template evaluated against each row.
type Column struct {
	Heading       string
	ValueTemplate string
}

type TableFormatterOptions struct {
	Columns []Column
}

type TableFormatter struct{}

func (f *TableFormatter) Kind() Format {
	return TableFormat
}

// Format writes obj, a struct or a slice of structs, as an aligned table.
func (f *TableFormatter) Format(obj interface{}, writer io.Writer, opts interface{}) error {
	options, ok := opts.(TableFormatterOptions)
	if !ok || len(options.Columns) == 0 {
		return errors.New("table formatter requires columns")
	}

	templates := make([]*template.Template, len(options.Columns))
	headings := make([]string, len(options.Columns))
	for i, column := range options.Columns {
		tmpl, err := template.New(column.Heading).Parse(column.ValueTemplate)
		if err != nil {
			return fmt.Errorf("parsing template for column %s: %w", column.Heading, err)
		}
		templates[i] = tmpl
		headings[i] = column.Heading
	}

	var rows []interface{}
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Slice {
		for i := 0; i < value.Len(); i++ {
			rows = append(rows, value.Index(i).Interface())
		}
	} else {
		rows = append(rows, obj)
	}

	tabs := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tabs, strings.Join(headings, "\t"))

	for _, row := range rows {
		cells := make([]string, len(templates))
		for i, tmpl := range templates {
			var cell strings.Builder
			if err := tmpl.Execute(&cell, row); err != nil {
				return fmt.Errorf("rendering column %s: %w", headings[i], err)
			}
			cells[i] = cell.String()
		}
		fmt.Fprintln(tabs, strings.Join(cells, "\t"))
	}

	return tabs.Flush()
}
