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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/forum-triage/internal/forum"
	"github.com/sirseerhq/forum-triage/internal/github"
	"github.com/sirseerhq/forum-triage/internal/metadata"
	"github.com/sirseerhq/forum-triage/internal/output"
	"github.com/sirseerhq/forum-triage/internal/triage"
)

type runOptions struct {
	outputFile string
	keepGoing  bool
	forms      bool
	accessible bool
}

func newRunCommand(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Triage unread replies interactively",
		Long: `Fetch the unread replies of the configured thread and ask, one reply at a
time, whether it should become a GitHub issue. Replies written by USERNAME
are never shown. Afterwards, offer to mark the thread read.

Answer "y" to create an issue. Any other answer skips the reply.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTriage(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.outputFile, "output", "", "Append a record per created issue to this NDJSON file")
	cmd.Flags().BoolVar(&opts.keepGoing, "keep-going", false, "Log issue creation failures and continue with the next reply")
	cmd.Flags().BoolVar(&opts.forms, "forms", false, "Use terminal forms for the yes/no prompts")
	cmd.Flags().BoolVar(&opts.accessible, "accessible", false, "Render forms as plain prompts (with --forms)")

	return cmd
}

// runTriage executes the run command
func runTriage(ctx context.Context, in io.Reader, out, errOut io.Writer, root *rootOptions, opts *runOptions) (err error) {
	cfg, err := loadConfig(root, true)
	if err != nil {
		return err
	}

	logger, debug := newLoggers(errOut, root.verbose)
	tracker := metadata.New()
	debug.Printf("run %s: thread %d -> %s/%s", tracker.RunID(), cfg.Forum.ThreadID, cfg.GitHub.Owner, cfg.GitHub.Repo)

	res, err := collect(ctx, cfg, logger, debug, tracker)
	if err != nil {
		return err
	}

	if len(res.Posts) == 0 {
		fmt.Fprintln(out, triage.NoNewMessages)
		reportFetchFailure(logger, res)
		return finish(errOut, root.verbose, tracker, "run", cfg)
	}

	var records output.OutputWriter
	if opts.outputFile != "" {
		fileWriter, fErr := output.NewFileWriter(opts.outputFile)
		if fErr != nil {
			return fErr
		}
		defer closeOutput(fileWriter, opts.outputFile, &err)
		records = fileWriter
	}

	var prompter triage.Prompter = triage.NewLinePrompter(in, out)
	if opts.forms {
		prompter = triage.NewFormPrompter(in, out, opts.accessible)
	}

	session := triage.NewSession(triage.SessionConfig{
		Out:       out,
		Prompter:  prompter,
		Issues:    github.NewGraphQLClient(cfg.GitHub.Token, cfg.GitHub.GraphQLEndpoint, cfg.HTTP.Timeout),
		Owner:     cfg.GitHub.Owner,
		Repo:      cfg.GitHub.Repo,
		Forum:     forum.NewRESTClient(cfg.Forum.BaseURL, cfg.Forum.APIUserID, cfg.Forum.APIKey, cfg.HTTP.Timeout),
		ThreadID:  cfg.Forum.ThreadID,
		Records:   records,
		KeepGoing: opts.keepGoing,
		Logger:    logger,
		Tracker:   tracker,
	})

	if err := session.Run(ctx, res.Posts); err != nil {
		return err
	}
	if err := session.MarkRead(ctx); err != nil {
		return err
	}

	return finish(errOut, root.verbose, tracker, "run", cfg)
}
