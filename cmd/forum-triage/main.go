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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	apperrors "github.com/sirseerhq/forum-triage/internal/errors"
	"github.com/sirseerhq/forum-triage/internal/version"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	envFile    string
	threadID   int
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "forum-triage",
		Short: "Turn unread forum replies into GitHub issues",
		Long: `forum-triage reads the unread replies of one discussion thread, asks
which of them should become GitHub issues, files those issues and can mark
the thread read afterwards.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Path to a .env file (default: ./.env when present)")
	rootCmd.PersistentFlags().IntVar(&opts.threadID, "thread", 0, "Thread ID to triage (overrides THREAD_ID)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print debug lines and a run summary to stderr")

	rootCmd.AddCommand(newRunCommand(opts))
	rootCmd.AddCommand(newScanCommand(opts))

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		// After the first signal, a second one terminates the process.
		<-ctx.Done()
		stop()
	}()

	err := newRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, context.Canceled) {
		return 130 // Interrupted
	}

	if errors.Is(err, apperrors.ErrUnauthorized) ||
		errors.Is(err, apperrors.ErrRepoNotFound) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, apperrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
