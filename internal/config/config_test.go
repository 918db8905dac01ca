package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/snapbooks-app/peppol-lookup/pkg/discovery"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "peppol-lookup.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
sml:
  domain: acc.edelivery.tech.ec.europa.eu
  dnsServer: "8.8.8.8:53"
  timeout: 2s
smp:
  timeout: 4s
  https: true
  userAgent: snapbooks-lookup/2.0
lookup:
  concurrency: 8
server:
  addr: ":9090"
  metrics:
    enabled: true
    path: /stats
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SML.Domain != "acc.edelivery.tech.ec.europa.eu" {
		t.Errorf("sml.domain = %s, want acc.edelivery.tech.ec.europa.eu", cfg.SML.Domain)
	}
	if cfg.SML.DNSServer != "8.8.8.8:53" {
		t.Errorf("sml.dnsServer = %s, want 8.8.8.8:53", cfg.SML.DNSServer)
	}
	if cfg.SMLTimeout() != 2*time.Second {
		t.Errorf("sml timeout = %v, want 2s", cfg.SMLTimeout())
	}
	if cfg.SMPTimeout() != 4*time.Second {
		t.Errorf("smp timeout = %v, want 4s", cfg.SMPTimeout())
	}
	if !cfg.SMP.HTTPS {
		t.Error("smp.https = false, want true")
	}
	if cfg.SMP.UserAgent != "snapbooks-lookup/2.0" {
		t.Errorf("smp.userAgent = %s, want snapbooks-lookup/2.0", cfg.SMP.UserAgent)
	}
	if cfg.Lookup.Concurrency != 8 {
		t.Errorf("lookup.concurrency = %d, want 8", cfg.Lookup.Concurrency)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("server.addr = %s, want :9090", cfg.Server.Addr)
	}
	if !cfg.Server.Metrics.Enabled || cfg.Server.Metrics.Path != "/stats" {
		t.Errorf("server.metrics = %+v, want enabled at /stats", cfg.Server.Metrics)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "sml: {}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SML.Domain != discovery.DefaultSMLDomain {
		t.Errorf("sml.domain = %s, want %s", cfg.SML.Domain, discovery.DefaultSMLDomain)
	}
	if cfg.SMLTimeout() != DefaultSMLTimeout {
		t.Errorf("sml timeout = %v, want %v", cfg.SMLTimeout(), DefaultSMLTimeout)
	}
	if cfg.SMPTimeout() != DefaultSMPTimeout {
		t.Errorf("smp timeout = %v, want %v", cfg.SMPTimeout(), DefaultSMPTimeout)
	}
	if cfg.SMP.UserAgent != "peppol-lookup/1.0" {
		t.Errorf("smp.userAgent = %s, want peppol-lookup/1.0", cfg.SMP.UserAgent)
	}
	if cfg.Lookup.Concurrency != DefaultConcurrency {
		t.Errorf("lookup.concurrency = %d, want %d", cfg.Lookup.Concurrency, DefaultConcurrency)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server.addr = %s, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.Metrics.Enabled {
		t.Error("server.metrics.enabled = true, want false by default")
	}
	if cfg.Server.Metrics.Path != "/metrics" {
		t.Errorf("server.metrics.path = %s, want /metrics", cfg.Server.Metrics.Path)
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("PEPPOL_DNS_SERVER", "9.9.9.9:53")
	t.Setenv("PEPPOL_SML_DOMAIN", "sml.example.com")

	path := writeConfig(t, `
sml:
  domain: ${PEPPOL_SML_DOMAIN}
  dnsServer: ${PEPPOL_DNS_SERVER}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SML.Domain != "sml.example.com" {
		t.Errorf("sml.domain = %s, want sml.example.com", cfg.SML.Domain)
	}
	if cfg.SML.DNSServer != "9.9.9.9:53" {
		t.Errorf("sml.dnsServer = %s, want 9.9.9.9:53", cfg.SML.DNSServer)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid sml timeout",
			content: "sml:\n  timeout: soon\n",
			wantErr: "sml.timeout",
		},
		{
			name:    "invalid smp timeout",
			content: "smp:\n  timeout: 10 seconds\n",
			wantErr: "smp.timeout",
		},
		{
			name:    "dns server without port",
			content: "sml:\n  dnsServer: 8.8.8.8\n",
			wantErr: "sml.dnsServer",
		},
		{
			name:    "negative concurrency",
			content: "lookup:\n  concurrency: -1\n",
			wantErr: "lookup.concurrency",
		},
		{
			name:    "metrics path without slash",
			content: "server:\n  metrics:\n    path: metrics\n",
			wantErr: "server.metrics.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "sml: [not a mapping\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.SML.Domain != discovery.DefaultSMLDomain {
		t.Errorf("sml.domain = %s, want %s", cfg.SML.Domain, discovery.DefaultSMLDomain)
	}
	if cfg.Lookup.Concurrency != DefaultConcurrency {
		t.Errorf("lookup.concurrency = %d, want %d", cfg.Lookup.Concurrency, DefaultConcurrency)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestDiscoveryConfig(t *testing.T) {
	cfg := Default()
	cfg.SML.Domain = "sml.example.com"
	cfg.SML.DNSServer = "203.0.113.53:53"
	cfg.SML.Timeout = "3s"
	cfg.SMP.Timeout = "6s"
	cfg.SMP.HTTPS = true
	cfg.SMP.UserAgent = "custom/1.0"

	dc := cfg.DiscoveryConfig()
	if dc.SML.Domain != "sml.example.com" {
		t.Errorf("sml domain = %s, want sml.example.com", dc.SML.Domain)
	}
	if dc.SML.DNSServer != "203.0.113.53:53" {
		t.Errorf("dns server = %s, want 203.0.113.53:53", dc.SML.DNSServer)
	}
	if dc.SML.Timeout != 3*time.Second {
		t.Errorf("sml timeout = %v, want 3s", dc.SML.Timeout)
	}
	if dc.SMP.Timeout != 6*time.Second {
		t.Errorf("smp timeout = %v, want 6s", dc.SMP.Timeout)
	}
	if !dc.SMP.UseHTTPS {
		t.Error("smp https = false, want true")
	}
	if dc.SMP.UserAgent != "custom/1.0" {
		t.Errorf("smp user agent = %s, want custom/1.0", dc.SMP.UserAgent)
	}
}

func TestFindFile(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := writeConfig(t, "sml: {}\n")
		if got := FindFile(path); got != path {
			t.Errorf("FindFile() = %s, want %s", got, path)
		}
	})

	t.Run("explicit path missing", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.yaml")
		if got := FindFile(missing); got != "" {
			t.Errorf("FindFile() = %s, want empty", got)
		}
	})

	t.Run("working directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("sml: {}\n"), 0o600); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		t.Chdir(dir)
		got := FindFile("")
		// Resolve symlinks before comparing: TempDir may sit behind one on some platforms
		wantReal, _ := filepath.EvalSymlinks(path)
		gotReal, _ := filepath.EvalSymlinks(got)
		if gotReal != wantReal {
			t.Errorf("FindFile() = %s, want %s", got, path)
		}
	})
}
