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
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	binaryOnce sync.Once
	binaryPath string
	buildErr   error
)

// ConfigEnvVars lists every environment variable the CLI reads. RunCLI
// strips them from the inherited environment.
var ConfigEnvVars = []string{
	"GH_AUTH_TOKEN", "GH_OWNER", "GH_REPO", "THREAD_ID", "API_KEY",
	"API_USER_ID", "BASE_URL", "USERNAME", "GITHUB_GRAPHQL_ENDPOINT",
	"FORUM_TRIAGE_HTTP_TIMEOUT",
}

// BuildBinary builds the forum-triage binary once per test run
func BuildBinary(t *testing.T) string {
	t.Helper()

	binaryOnce.Do(func() {
		// Create a persistent temp directory, not tied to test cleanup
		tmpDir, err := os.MkdirTemp("", "forum-triage-test")
		if err != nil {
			buildErr = err
			return
		}
		binaryPath = filepath.Join(tmpDir, "forum-triage")

		projectRoot, err := findProjectRoot()
		if err != nil {
			buildErr = err
			return
		}

		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/forum-triage")
		cmd.Dir = projectRoot
		if output, err := cmd.CombinedOutput(); err != nil {
			buildErr = err
			t.Logf("Build output: %s", output)
		}
	})

	if buildErr != nil {
		t.Fatalf("Failed to build binary: %v", buildErr)
	}

	return binaryPath
}

// CLIRun describes one invocation of the binary.
type CLIRun struct {
	Args  []string
	Env   map[string]string
	Stdin string
	// Dir is the working directory; defaults to a fresh temp dir so no
	// stray .env or config file is picked up.
	Dir string
}

// CLIResult contains the result of running a CLI command
type CLIResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// RunCLI executes the forum-triage binary.
func RunCLI(t *testing.T, run CLIRun) CLIResult {
	t.Helper()

	cmd := newCLICommand(t, run)
	cmd.Stdin = strings.NewReader(run.Stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return CLIResult{
		ExitCode: exitCode(err),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
	}
}

// CLIProcess is a running forum-triage binary whose stdin stays open until
// the test closes it.
type CLIProcess struct {
	Stdin io.WriteCloser

	cmd    *exec.Cmd
	stdout lockedBuffer
	stderr lockedBuffer
	done   chan error
}

// StartCLI starts the binary without waiting for it. run.Stdin is ignored;
// write to the returned process's Stdin instead.
func StartCLI(t *testing.T, run CLIRun) *CLIProcess {
	t.Helper()

	p := &CLIProcess{cmd: newCLICommand(t, run), done: make(chan error, 1)}
	p.cmd.Stdout = &p.stdout
	p.cmd.Stderr = &p.stderr

	stdin, err := p.cmd.StdinPipe()
	if err != nil {
		t.Fatalf("Failed to open stdin pipe: %v", err)
	}
	p.Stdin = stdin

	if err := p.cmd.Start(); err != nil {
		t.Fatalf("Failed to start binary: %v", err)
	}
	go func() { p.done <- p.cmd.Wait() }()

	t.Cleanup(func() {
		_ = p.Stdin.Close()
		_ = p.cmd.Process.Kill()
	})
	return p
}

// WaitForStdout blocks until stdout contains s or timeout passes.
func (p *CLIProcess) WaitForStdout(t *testing.T, s string, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for !strings.Contains(p.stdout.String(), s) {
		if time.Now().After(deadline) {
			t.Fatalf("stdout never contained %q, got: %q\nStderr: %s", s, p.stdout.String(), p.stderr.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// Signal sends sig to the process.
func (p *CLIProcess) Signal(sig os.Signal) error {
	return p.cmd.Process.Signal(sig)
}

// Wait waits up to timeout for the process to exit.
func (p *CLIProcess) Wait(t *testing.T, timeout time.Duration) CLIResult {
	t.Helper()

	select {
	case err := <-p.done:
		return CLIResult{
			ExitCode: exitCode(err),
			Stdout:   p.stdout.String(),
			Stderr:   p.stderr.String(),
			Err:      err,
		}
	case <-time.After(timeout):
		t.Fatalf("process still running after %v\nStdout: %s", timeout, p.stdout.String())
		return CLIResult{}
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newCLICommand(t *testing.T, run CLIRun) *exec.Cmd {
	t.Helper()

	cmd := exec.Command(BuildBinary(t), run.Args...)
	cmd.Dir = run.Dir
	if cmd.Dir == "" {
		cmd.Dir = t.TempDir()
	}
	cmd.Env = append(cleanEnviron(), "HOME="+t.TempDir())
	for k, v := range run.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	return cmd
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}

// ServerEnv returns the environment that points the CLI at fs and gh.
// gh may be nil.
func ServerEnv(fs *ForumServer, gh *GitHubServer, self string) map[string]string {
	env := map[string]string{
		"BASE_URL":    fs.URL,
		"THREAD_ID":   strconv.Itoa(fs.ThreadID),
		"API_KEY":     "forum-key",
		"API_USER_ID": "7",
		"USERNAME":    self,
	}
	if gh != nil {
		env["GH_AUTH_TOKEN"] = "gh-token"
		env["GH_OWNER"] = gh.Owner
		env["GH_REPO"] = gh.Repo
		env["GITHUB_GRAPHQL_ENDPOINT"] = gh.Endpoint()
	}
	return env
}

// AssertCLISuccess checks that the CLI command succeeded
func AssertCLISuccess(t *testing.T, result CLIResult) {
	t.Helper()

	if result.Err != nil {
		t.Fatalf("Command failed: %v\nStderr: %s", result.Err, result.Stderr)
	}
}

// AssertCLIError checks that the CLI command failed with expected error
func AssertCLIError(t *testing.T, result CLIResult, expectedError string) {
	t.Helper()

	if result.Err == nil {
		t.Fatal("Expected command to fail, but it succeeded")
	}

	if expectedError != "" && !strings.Contains(result.Stderr, expectedError) {
		t.Errorf("Expected error containing %q, got: %s", expectedError, result.Stderr)
	}
}

// AssertExitCode checks the command exit code
func AssertExitCode(t *testing.T, result CLIResult, expected int) {
	t.Helper()

	if result.ExitCode != expected {
		t.Errorf("Expected exit code %d, got %d\nStderr: %s", expected, result.ExitCode, result.Stderr)
	}
}

func cleanEnviron() []string {
	skip := make(map[string]bool, len(ConfigEnvVars)+1)
	for _, name := range ConfigEnvVars {
		skip[name] = true
	}
	skip["HOME"] = true

	var env []string
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if !skip[name] {
			env = append(env, kv)
		}
	}
	return env
}

// findProjectRoot finds the project root by looking for go.mod
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
