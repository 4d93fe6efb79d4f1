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

// Package config types define the configuration structures used throughout
// forum-triage. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for a forum-triage run.
// It is built once at startup, validated, and then only read.
type Config struct {
	Forum  ForumConfig  `yaml:"forum"`
	GitHub GitHubConfig `yaml:"github"`
	HTTP   HTTPConfig   `yaml:"http"`
}

// ForumConfig identifies the discussion API, the credentials used against it,
// the single thread that is triaged, and the operator's own forum username.
// Replies written by Username are never offered for triage.
type ForumConfig struct {
	BaseURL   string `yaml:"base_url"`
	ThreadID  int    `yaml:"thread_id"`
	APIKey    string `yaml:"api_key"`
	APIUserID string `yaml:"api_user_id"`
	Username  string `yaml:"username"`
}

// GitHubConfig contains the issue tracker settings. GraphQLEndpoint can be
// pointed at a GitHub Enterprise installation.
type GitHubConfig struct {
	Token           string `yaml:"token"`
	Owner           string `yaml:"owner"`
	Repo            string `yaml:"repo"`
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
}

// HTTPConfig controls the HTTP clients used for both APIs.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config holding the optional settings' defaults.
// Required settings are left empty and must come from a file or the environment.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			GraphQLEndpoint: "https://api.github.com/graphql",
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
	}
}
