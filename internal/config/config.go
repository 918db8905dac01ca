// Package config handles configuration loading for the peppol-lookup CLI
// and gateway.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax), so deployment-specific values
// like the SML zone or DNS server can be injected at runtime.
//
// # Configuration Sections
//
//   - sml: SML directory resolution (zone, DNS server, query timeout)
//   - smp: SMP metadata queries (timeout, scheme, user agent)
//   - lookup: batch lookup behavior (concurrency)
//   - server: lookup gateway settings (listen address, metrics)
//
// # Example Configuration
//
//	sml:
//	  domain: edelivery.tech.ec.europa.eu
//	  dnsServer: ${PEPPOL_DNS_SERVER}
//	  timeout: 5s
//
//	smp:
//	  timeout: 10s
//	  https: false
//
//	lookup:
//	  concurrency: 4
//
//	server:
//	  addr: ":8080"
//	  metrics:
//	    enabled: true
//	    path: /metrics
//
// See [Load] for loading configuration from a file and [FindFile] for the
// file resolution order.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/snapbooks-app/peppol-lookup/pkg/discovery"
)

// DefaultConfigFile is the configuration file name searched for in the
// working directory.
const DefaultConfigFile = "peppol-lookup.yaml"

// AppName is the application name used for XDG directory paths.
const AppName = "peppol-lookup"

// Default timeouts applied when the file leaves them unset
const (
	DefaultSMLTimeout = 5 * time.Second
	DefaultSMPTimeout = 10 * time.Second
)

// DefaultConcurrency bounds parallel lookups in batch mode.
const DefaultConcurrency = 4

// Config is the root configuration structure
type Config struct {
	SML    SMLConfig    `yaml:"sml"`
	SMP    SMPConfig    `yaml:"smp"`
	Lookup LookupConfig `yaml:"lookup"`
	Server ServerConfig `yaml:"server"`
}

// SMLConfig holds SML directory resolution settings
type SMLConfig struct {
	// Domain is the SML zone to query
	Domain string `yaml:"domain"`
	// DNSServer overrides the system resolver ("ip:port")
	DNSServer string `yaml:"dnsServer"`
	// Timeout is a Go duration string (e.g. "5s")
	Timeout string `yaml:"timeout"`
}

// SMPConfig holds SMP metadata query settings
type SMPConfig struct {
	// Timeout is a Go duration string (e.g. "10s")
	Timeout string `yaml:"timeout"`
	// HTTPS selects https:// metadata URLs
	HTTPS bool `yaml:"https"`
	// UserAgent is the User-Agent header sent to SMPs
	UserAgent string `yaml:"userAgent"`
}

// LookupConfig holds batch lookup settings
type LookupConfig struct {
	// Concurrency bounds parallel lookups when several identifiers are given
	Concurrency int `yaml:"concurrency"`
}

// ServerConfig holds lookup gateway settings
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with every default applied, for running
// without a configuration file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// FindFile locates the configuration file.
// Search order:
//  1. The explicit path, if given
//  2. peppol-lookup.yaml in the current directory
//  3. config.yaml under the XDG config home (e.g. ~/.config/peppol-lookup)
//
// Returns the empty string when no file is found.
func FindFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	candidate := filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}

	return ""
}

func (c *Config) applyDefaults() {
	if c.SML.Domain == "" {
		c.SML.Domain = discovery.DefaultSMLDomain
	}
	if c.SML.Timeout == "" {
		c.SML.Timeout = DefaultSMLTimeout.String()
	}
	if c.SMP.Timeout == "" {
		c.SMP.Timeout = DefaultSMPTimeout.String()
	}
	if c.SMP.UserAgent == "" {
		c.SMP.UserAgent = "peppol-lookup/1.0"
	}
	if c.Lookup.Concurrency == 0 {
		c.Lookup.Concurrency = DefaultConcurrency
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Metrics.Path == "" {
		c.Server.Metrics.Path = "/metrics"
	}
}

// Validate checks the configuration for errors. It is called by [Load] and
// again by callers that override loaded values.
func (c *Config) Validate() error {
	if c.SML.Domain == "" {
		return fmt.Errorf("sml.domain is required")
	}
	if c.SML.DNSServer != "" {
		if _, _, err := net.SplitHostPort(c.SML.DNSServer); err != nil {
			return fmt.Errorf("sml.dnsServer must be 'host:port', got '%s'", c.SML.DNSServer)
		}
	}
	if _, err := time.ParseDuration(c.SML.Timeout); err != nil {
		return fmt.Errorf("sml.timeout is not a valid duration: '%s'", c.SML.Timeout)
	}
	if _, err := time.ParseDuration(c.SMP.Timeout); err != nil {
		return fmt.Errorf("smp.timeout is not a valid duration: '%s'", c.SMP.Timeout)
	}
	if c.Lookup.Concurrency < 1 {
		return fmt.Errorf("lookup.concurrency must be at least 1, got %d", c.Lookup.Concurrency)
	}
	if !strings.HasPrefix(c.Server.Metrics.Path, "/") {
		return fmt.Errorf("server.metrics.path must start with '/', got '%s'", c.Server.Metrics.Path)
	}
	return nil
}

// SMLTimeout returns the parsed SML query timeout.
func (c *Config) SMLTimeout() time.Duration {
	d, err := time.ParseDuration(c.SML.Timeout)
	if err != nil || d <= 0 {
		return DefaultSMLTimeout
	}
	return d
}

// SMPTimeout returns the parsed SMP request timeout.
func (c *Config) SMPTimeout() time.Duration {
	d, err := time.ParseDuration(c.SMP.Timeout)
	if err != nil || d <= 0 {
		return DefaultSMPTimeout
	}
	return d
}

// DiscoveryConfig maps the file configuration onto the lookup client
// configuration.
func (c *Config) DiscoveryConfig() discovery.Config {
	return discovery.Config{
		SML: discovery.SMLClientConfig{
			Domain:    c.SML.Domain,
			DNSServer: c.SML.DNSServer,
			Timeout:   c.SMLTimeout(),
		},
		SMP: discovery.SMPClientConfig{
			Timeout:   c.SMPTimeout(),
			UserAgent: c.SMP.UserAgent,
			UseHTTPS:  c.SMP.HTTPS,
		},
	}
}
