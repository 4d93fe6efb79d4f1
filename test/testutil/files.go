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

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// WriteConfigFile writes data as a YAML config file named name in dir.
func WriteConfigFile(t *testing.T, dir, name string, data map[string]interface{}) string {
	t.Helper()

	content, err := yaml.Marshal(data)
	if err != nil {
		t.Fatalf("Failed to marshal YAML: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

// WriteEnvFile writes vars as a dotenv file named name in dir.
func WriteEnvFile(t *testing.T, dir, name string, vars map[string]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := godotenv.Write(vars, path); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	return path
}

// AssertFileExists checks that a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks that a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("Expected file to not exist: %s", path)
	}
}
