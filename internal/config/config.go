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

// Package config provides configuration management for sirseer-report with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. The per-run job file (key=value .properties format)
//  4. Global configuration file (YAML)
//  5. Built-in defaults
//
// The global YAML file holds tool-level settings (endpoints, page sizes,
// report directory); the job file holds the run parameters (credentials,
// repository, date window, path filters).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads the tool configuration from multiple sources and applies
// them in the correct precedence order. If configPath is provided, it loads
// from that specific file. Otherwise, it searches standard locations:
//   - .sirseer-report.yaml (current directory)
//   - .sirseer-report.yml (current directory)
//   - ~/.sirseer/report.yaml
//   - ~/.sirseer/report.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides. Path expansion (~ and environment variables) is
// performed on the report directory.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Try to load config file if path is provided
	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		// Try default locations
		defaultPaths := []string{
			".sirseer-report.yaml",
			".sirseer-report.yml",
			filepath.Join(os.Getenv("HOME"), ".sirseer", "report.yaml"),
			filepath.Join(os.Getenv("HOME"), ".sirseer", "report.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Defaults.ReportDir = expandPath(cfg.Defaults.ReportDir)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	// GitHub endpoints
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}

	// Defaults
	if dir := os.Getenv("SIRSEER_REPORT_DIR"); dir != "" {
		cfg.Defaults.ReportDir = dir
	}
	if size := os.Getenv("SIRSEER_GRAPHQL_PAGE_SIZE"); size != "" {
		if n, err := parsePositiveInt(size); err == nil {
			cfg.Defaults.GraphQLPageSize = n
		}
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// Validate checks if the configuration contains valid values. It ensures
// page sizes are within GitHub's limits and endpoints are not empty. This
// should be called after loading configuration to catch invalid settings
// early, before any network activity.
func (c *Config) Validate() error {
	if c.Defaults.RestPageSize <= 0 {
		return fmt.Errorf("rest page size must be positive, got: %d", c.Defaults.RestPageSize)
	}
	if c.Defaults.RestPageSize > 100 {
		return fmt.Errorf("rest page size %d exceeds GitHub API limit of 100", c.Defaults.RestPageSize)
	}
	if c.Defaults.GraphQLPageSize <= 0 {
		return fmt.Errorf("graphql page size must be positive, got: %d", c.Defaults.GraphQLPageSize)
	}
	if c.Defaults.GraphQLPageSize > 100 {
		return fmt.Errorf("graphql page size %d exceeds GitHub API limit of 100", c.Defaults.GraphQLPageSize)
	}
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("GitHub API endpoint cannot be empty")
	}
	if c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
	}
	return nil
}
