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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/sirseerhq/forum-triage/internal/errors"
)

var allEnvVars = []string{
	EnvGitHubToken, EnvGitHubOwner, EnvGitHubRepo, EnvThreadID, EnvAPIKey,
	EnvAPIUserID, EnvBaseURL, EnvUsername, EnvGraphQLEndpoint, EnvHTTPTimeout,
}

// clearEnv blanks every variable the loader reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, name := range allEnvVars {
		t.Setenv(name, "")
	}
}

// unsetEnv removes the variables so a .env file can populate them.
func unsetEnv(t *testing.T) {
	t.Helper()
	clearEnv(t)
	for _, name := range allEnvVars {
		os.Unsetenv(name)
	}
}

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvGitHubToken, "ghp_test")
	t.Setenv(EnvGitHubOwner, "acme")
	t.Setenv(EnvGitHubRepo, "support")
	t.Setenv(EnvThreadID, "1234")
	t.Setenv(EnvAPIKey, "key")
	t.Setenv(EnvAPIUserID, "1")
	t.Setenv(EnvBaseURL, "https://forum.example.com/api/")
	t.Setenv(EnvUsername, "operator")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.GraphQLEndpoint != "https://api.github.com/graphql" {
		t.Errorf("GraphQLEndpoint = %s, want https://api.github.com/graphql", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.HTTP.Timeout)
	}
	if cfg.Forum.ThreadID != 0 {
		t.Errorf("ThreadID = %d, want 0", cfg.Forum.ThreadID)
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	clearEnv(t)
	setValidEnv(t)

	cfg, err := LoadConfig("", "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.Forum.BaseURL != "https://forum.example.com/api" {
		t.Errorf("BaseURL = %s, want trailing slash trimmed", cfg.Forum.BaseURL)
	}
	if cfg.Forum.ThreadID != 1234 {
		t.Errorf("ThreadID = %d, want 1234", cfg.Forum.ThreadID)
	}
	if cfg.Forum.Username != "operator" {
		t.Errorf("Username = %s, want operator", cfg.Forum.Username)
	}
	if cfg.GitHub.Owner != "acme" || cfg.GitHub.Repo != "support" {
		t.Errorf("Owner/Repo = %s/%s, want acme/support", cfg.GitHub.Owner, cfg.GitHub.Repo)
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
forum:
  base_url: https://forum.example.com/api
  thread_id: 77
  api_key: file-key
  api_user_id: "9"
  username: file-operator

github:
  token: file-token
  owner: file-owner
  repo: file-repo
  graphql_endpoint: https://github.enterprise.com/api/graphql

http:
  timeout: 5s
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	// Environment wins over the file.
	t.Setenv(EnvGitHubRepo, "env-repo")

	cfg, err := LoadConfig(configPath, "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Forum.ThreadID != 77 {
		t.Errorf("ThreadID = %d, want 77", cfg.Forum.ThreadID)
	}
	if cfg.Forum.APIUserID != "9" {
		t.Errorf("APIUserID = %s, want 9", cfg.Forum.APIUserID)
	}
	if cfg.GitHub.GraphQLEndpoint != "https://github.enterprise.com/api/graphql" {
		t.Errorf("GraphQLEndpoint = %s", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.GitHub.Repo != "env-repo" {
		t.Errorf("Repo = %s, want env-repo", cfg.GitHub.Repo)
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s, want 5s", cfg.HTTP.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	unsetEnv(t)
	envPath := filepath.Join(t.TempDir(), "triage.env")
	content := strings.Join([]string{
		"GH_AUTH_TOKEN=dot-token",
		"GH_OWNER=dot-owner",
		"GH_REPO=dot-repo",
		"THREAD_ID=5",
		"API_KEY=dot-key",
		"API_USER_ID=2",
		"BASE_URL=http://localhost:8080",
		"USERNAME=dot-user",
	}, "\n")
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	cfg, err := LoadConfig("", envPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Forum.ThreadID != 5 {
		t.Errorf("ThreadID = %d, want 5", cfg.Forum.ThreadID)
	}
	if cfg.Forum.Username != "dot-user" {
		t.Errorf("Username = %s, want dot-user", cfg.Forum.Username)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestLoadConfig_MissingEnvFile(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig("", filepath.Join(t.TempDir(), "missing.env"))
	if !errors.Is(err, apperrors.ErrInvalidConfig) {
		t.Fatalf("LoadConfig error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("forum: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := LoadConfig(configPath, "")
	if !errors.Is(err, apperrors.ErrInvalidConfig) {
		t.Fatalf("LoadConfig error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadConfig_MalformedNumbers(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantMsg string
	}{
		{"thread id not a number", EnvThreadID, "abc", "THREAD_ID must be an integer"},
		{"thread id negative", EnvThreadID, "-4", "THREAD_ID must be an integer"},
		{"timeout not a duration", EnvHTTPTimeout, "soon", "FORUM_TRIAGE_HTTP_TIMEOUT must be a duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			setValidEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig("", "")
			if !errors.Is(err, apperrors.ErrInvalidConfig) {
				t.Fatalf("LoadConfig error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Forum = ForumConfig{
			BaseURL:   "https://forum.example.com/api",
			ThreadID:  1,
			APIKey:    "k",
			APIUserID: "1",
			Username:  "me",
		}
		cfg.GitHub.Token = "t"
		cfg.GitHub.Owner = "o"
		cfg.GitHub.Repo = "r"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing token",
			mutate:  func(c *Config) { c.GitHub.Token = "" },
			wantErr: []string{"GH_AUTH_TOKEN must be set"},
		},
		{
			name:    "missing thread",
			mutate:  func(c *Config) { c.Forum.ThreadID = 0 },
			wantErr: []string{"THREAD_ID must be set"},
		},
		{
			name: "several missing settings reported together",
			mutate: func(c *Config) {
				c.Forum.Username = " "
				c.Forum.APIKey = ""
			},
			wantErr: []string{"USERNAME must be set", "API_KEY must be set"},
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.Forum.BaseURL = "forum.example.com" },
			wantErr: []string{"BASE_URL must be an absolute http(s) URL"},
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.HTTP.Timeout = -time.Second },
			wantErr: []string{"HTTP timeout cannot be negative"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()

			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, apperrors.ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() = %q, missing %q", err.Error(), want)
				}
			}
		})
	}
}

func TestValidateForum(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Forum = ForumConfig{
		BaseURL:   "https://forum.example.com/api",
		ThreadID:  7,
		APIKey:    "k",
		APIUserID: "1",
		Username:  "me",
	}

	if err := cfg.ValidateForum(); err != nil {
		t.Errorf("ValidateForum() = %v, want nil without GitHub settings", err)
	}
	if err := cfg.Validate(); !errors.Is(err, apperrors.ErrInvalidConfig) {
		t.Errorf("Validate() = %v, want ErrInvalidConfig without GitHub settings", err)
	}

	cfg.Forum.ThreadID = 0
	if err := cfg.ValidateForum(); err == nil || !strings.Contains(err.Error(), "THREAD_ID") {
		t.Errorf("ValidateForum() = %v, want THREAD_ID error", err)
	}
}

func TestParseThreadID(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"42", 42, false},
		{" 7 ", 7, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"1.5", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseThreadID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseThreadID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseThreadID(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got := expandPath("~/triage.env"); got != filepath.Join("/home/tester", "triage.env") {
		t.Errorf("expandPath(~) = %s", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("expandPath(abs) = %s", got)
	}
}
