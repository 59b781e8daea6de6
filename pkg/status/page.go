package status

import (
	_ "embed"
	"html/template"
)

//go:embed page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

type pageData struct {
	Project      string
	Description  string
	Hostname     string
	ServerIP     string
	DeployedAt   string
	Technologies []string
	Version      string
}
