// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.APIEndpoint != "https://api.github.com" {
		t.Errorf("APIEndpoint = %s, want https://api.github.com", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.GraphQLEndpoint != "https://api.github.com/graphql" {
		t.Errorf("GraphQLEndpoint = %s, want https://api.github.com/graphql", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.Defaults.RestPageSize != 100 {
		t.Errorf("RestPageSize = %d, want 100", cfg.Defaults.RestPageSize)
	}
	if cfg.Defaults.GraphQLPageSize != 50 {
		t.Errorf("GraphQLPageSize = %d, want 50", cfg.Defaults.GraphQLPageSize)
	}
	if !cfg.Defaults.EarlyStop {
		t.Error("EarlyStop should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "report.yaml")

	content := `
github:
  graphql_endpoint: https://github.example.com/api/graphql
defaults:
  graphql_page_size: 25
  report_dir: /var/reports
`
	if err := os.WriteFile(configPath, []byte(strings.TrimSpace(content)), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.GitHub.GraphQLEndpoint != "https://github.example.com/api/graphql" {
		t.Errorf("GraphQLEndpoint = %s, want enterprise endpoint", cfg.GitHub.GraphQLEndpoint)
	}
	// Unset keys keep their defaults.
	if cfg.GitHub.APIEndpoint != "https://api.github.com" {
		t.Errorf("APIEndpoint = %s, want default", cfg.GitHub.APIEndpoint)
	}
	if cfg.Defaults.GraphQLPageSize != 25 {
		t.Errorf("GraphQLPageSize = %d, want 25", cfg.Defaults.GraphQLPageSize)
	}
	if cfg.Defaults.ReportDir != "/var/reports" {
		t.Errorf("ReportDir = %s, want /var/reports", cfg.Defaults.ReportDir)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for explicitly named missing config file")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("GITHUB_API_ENDPOINT", "https://ghe.internal/api/v3")
	t.Setenv("SIRSEER_REPORT_DIR", "/tmp/out")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.GitHub.APIEndpoint != "https://ghe.internal/api/v3" {
		t.Errorf("APIEndpoint = %s, want env override", cfg.GitHub.APIEndpoint)
	}
	if cfg.Defaults.ReportDir != "/tmp/out" {
		t.Errorf("ReportDir = %s, want /tmp/out", cfg.Defaults.ReportDir)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "rest page size too large",
			mutate:  func(c *Config) { c.Defaults.RestPageSize = 250 },
			wantErr: true,
		},
		{
			name:    "graphql page size zero",
			mutate:  func(c *Config) { c.Defaults.GraphQLPageSize = 0 },
			wantErr: true,
		},
		{
			name:    "empty api endpoint",
			mutate:  func(c *Config) { c.GitHub.APIEndpoint = "" },
			wantErr: true,
		},
		{
			name:    "empty graphql endpoint",
			mutate:  func(c *Config) { c.GitHub.GraphQLEndpoint = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/reporter")
	if got := expandPath("~/reports"); got != "/home/reporter/reports" {
		t.Errorf("expandPath(~/reports) = %s", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("expandPath(/abs/path) = %s", got)
	}
}
