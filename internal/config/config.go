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

// Package config provides configuration management for forum-triage with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags (applied by the caller before Validate)
//  2. Environment variables
//  3. A .env file in the working directory, or the file named by --env-file
//  4. YAML configuration file
//  5. Built-in defaults
//
// Every required setting is checked by Validate, which reports all problems
// at once so a misconfigured run fails before any network call is made.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/sirseerhq/forum-triage/internal/errors"
)

// Environment variable names.
const (
	EnvGitHubToken     = "GH_AUTH_TOKEN"
	EnvGitHubOwner     = "GH_OWNER"
	EnvGitHubRepo      = "GH_REPO"
	EnvThreadID        = "THREAD_ID"
	EnvAPIKey          = "API_KEY"
	EnvAPIUserID       = "API_USER_ID"
	EnvBaseURL         = "BASE_URL"
	EnvUsername        = "USERNAME"
	EnvGraphQLEndpoint = "GITHUB_GRAPHQL_ENDPOINT"
	EnvHTTPTimeout     = "FORUM_TRIAGE_HTTP_TIMEOUT"
)

// LoadConfig loads configuration from every source except flags and applies
// them in precedence order. If configPath is provided, it loads from that
// specific file. Otherwise, it searches standard locations:
//   - .forum-triage.yaml (current directory)
//   - .forum-triage.yml (current directory)
//   - ~/.forum-triage/config.yaml
//
// If envFile is provided it must exist; otherwise a .env file in the current
// directory is loaded when present. Variables already set in the process
// environment are never overwritten by the .env file.
//
// The returned Config has not been validated; call Validate once flag
// overrides have been applied.
func LoadConfig(configPath, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(expandPath(envFile)); err != nil {
			return nil, fmt.Errorf("%w: failed to load env file %s: %w", apperrors.ErrInvalidConfig, envFile, err)
		}
	} else {
		// A missing .env is the common case.
		_ = godotenv.Load()
	}

	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(expandPath(configPath), cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to load config file: %w", apperrors.ErrInvalidConfig, err)
		}
	} else {
		defaultPaths := []string{
			".forum-triage.yaml",
			".forum-triage.yml",
			filepath.Join(os.Getenv("HOME"), ".forum-triage", "config.yaml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("%w: failed to load config from %s: %w", apperrors.ErrInvalidConfig, path, err)
				}
				break
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidConfig, err)
	}

	cfg.Forum.BaseURL = strings.TrimRight(cfg.Forum.BaseURL, "/")

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

// applyEnvOverrides applies environment variable overrides to config.
// Unlike string settings, numeric settings that fail to parse are errors.
func applyEnvOverrides(cfg *Config) error {
	setString := func(name string, dst *string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	setString(EnvBaseURL, &cfg.Forum.BaseURL)
	setString(EnvAPIKey, &cfg.Forum.APIKey)
	setString(EnvAPIUserID, &cfg.Forum.APIUserID)
	setString(EnvUsername, &cfg.Forum.Username)
	setString(EnvGitHubToken, &cfg.GitHub.Token)
	setString(EnvGitHubOwner, &cfg.GitHub.Owner)
	setString(EnvGitHubRepo, &cfg.GitHub.Repo)
	setString(EnvGraphQLEndpoint, &cfg.GitHub.GraphQLEndpoint)

	var errs []error
	if v := os.Getenv(EnvThreadID); v != "" {
		id, err := ParseThreadID(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s must be an integer: %w", EnvThreadID, err))
		} else {
			cfg.Forum.ThreadID = id
		}
	}
	if v := os.Getenv(EnvHTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s must be a duration: %w", EnvHTTPTimeout, err))
		} else {
			cfg.HTTP.Timeout = d
		}
	}

	return errors.Join(errs...)
}

// ParseThreadID parses a thread identifier. It must be a positive integer.
func ParseThreadID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s'", s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", id)
	}
	return id, nil
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

// Validate checks that every required setting is present and well formed.
// All problems are reported together, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	return c.validate(true)
}

// ValidateForum is Validate without the GitHub settings, for commands that
// only read the thread.
func (c *Config) ValidateForum() error {
	return c.validate(false)
}

func (c *Config) validate(withGitHub bool) error {
	var errs []error
	require := func(value, name string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%s must be set", name))
		}
	}

	if withGitHub {
		require(c.GitHub.Token, EnvGitHubToken)
		require(c.GitHub.Owner, EnvGitHubOwner)
		require(c.GitHub.Repo, EnvGitHubRepo)
	}
	if c.Forum.ThreadID <= 0 {
		errs = append(errs, fmt.Errorf("%s must be set to a positive integer", EnvThreadID))
	}
	require(c.Forum.APIKey, EnvAPIKey)
	require(c.Forum.APIUserID, EnvAPIUserID)
	require(c.Forum.BaseURL, EnvBaseURL)
	require(c.Forum.Username, EnvUsername)

	if c.Forum.BaseURL != "" {
		if u, err := url.Parse(c.Forum.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute http(s) URL, got: %s", EnvBaseURL, c.Forum.BaseURL))
		}
	}
	if withGitHub && c.GitHub.GraphQLEndpoint == "" {
		errs = append(errs, fmt.Errorf("GitHub GraphQL endpoint cannot be empty"))
	}
	if c.HTTP.Timeout < 0 {
		errs = append(errs, fmt.Errorf("HTTP timeout cannot be negative, got: %s", c.HTTP.Timeout))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", apperrors.ErrInvalidConfig, errors.Join(errs...))
}
