// Package status serves the status page and health endpoints of a deployed instance.
package status

import (
	"net"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/mini-infragpt/infragpt/pkg/infra/generator"
)

const (
	DefaultProject     = "Mini InfraGPT"
	DefaultDescription = "AI-Powered Infrastructure Automation"
	DefaultVersion     = "1.0.0"
	DefaultEnvironment = "production"
	DefaultAddr        = ":5000"
)

var DefaultTechnologies = []string{"Go", "AWS", "Terraform", "Docker", "CI/CD", "Linux"}

// Config carries everything the handlers report. It is built once at startup.
type Config struct {
	Addr         string
	Project      string
	Slug         string
	Description  string
	Version      string
	Environment  string
	Technologies []string

	// Hostname defaults to os.Hostname.
	Hostname func() (string, error)
	// LookupIP resolves the server address shown on the page. Defaults to a DNS lookup of the hostname.
	LookupIP func(host string) (string, error)
	Clock    clock.Clock
}

func DefaultConfig() Config {
	return Config{
		Addr:         DefaultAddr,
		Project:      DefaultProject,
		Slug:         generator.ProjectTag,
		Description:  DefaultDescription,
		Version:      DefaultVersion,
		Environment:  DefaultEnvironment,
		Technologies: DefaultTechnologies,
		Hostname:     os.Hostname,
		LookupIP:     lookupIP,
		Clock:        clock.New(),
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.Project == "" {
		c.Project = d.Project
	}
	if c.Slug == "" {
		c.Slug = d.Slug
	}
	if c.Description == "" {
		c.Description = d.Description
	}
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Environment == "" {
		c.Environment = d.Environment
	}
	if c.Technologies == nil {
		c.Technologies = d.Technologies
	}
	if c.Hostname == nil {
		c.Hostname = d.Hostname
	}
	if c.LookupIP == nil {
		c.LookupIP = d.LookupIP
	}
	if c.Clock == nil {
		c.Clock = d.Clock
	}
}

func lookupIP(host string) (string, error) {
	addrs, err := net.LookupHost(host)
	if err != nil {
		return "", err
	}
	for _, addr := range addrs {
		if ip := net.ParseIP(addr); ip != nil && ip.To4() != nil {
			return addr, nil
		}
	}
	if len(addrs) > 0 {
		return addrs[0], nil
	}
	return "", &net.DNSError{Err: "no addresses", Name: host, IsNotFound: true}
}
