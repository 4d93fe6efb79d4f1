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
	"io"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/forum-triage/internal/metadata"
	"github.com/sirseerhq/forum-triage/internal/output"
	"github.com/sirseerhq/forum-triage/internal/triage"
)

func newScanCommand(root *rootOptions) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List unread replies as NDJSON without prompting",
		Long: `Fetch the unread replies of the configured thread and write one NDJSON
record per reply. Nothing is created and the thread is not marked read, so
only the forum settings are required.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), root, outputFile)
		},
	}

	cmd.Flags().StringVar(&outputFile, "output", "", "Append records to this file (default: stdout)")

	return cmd
}

// runScan executes the scan command
func runScan(ctx context.Context, out, errOut io.Writer, root *rootOptions, outputFile string) (err error) {
	cfg, err := loadConfig(root, false)
	if err != nil {
		return err
	}

	logger, debug := newLoggers(errOut, root.verbose)
	tracker := metadata.New()
	debug.Printf("scan %s: thread %d", tracker.RunID(), cfg.Forum.ThreadID)

	res, err := collect(ctx, cfg, logger, debug, tracker)
	if err != nil {
		return err
	}

	if len(res.Posts) == 0 {
		// stdout carries records only
		logger.Println(triage.NoNewMessages)
		reportFetchFailure(logger, res)
		return finish(errOut, root.verbose, tracker, "scan", cfg)
	}

	var writer output.OutputWriter
	if outputFile == "" {
		writer = output.NewWriter(out)
	} else {
		fileWriter, fErr := output.NewFileWriter(outputFile)
		if fErr != nil {
			return fErr
		}
		writer = fileWriter
		defer closeOutput(fileWriter, outputFile, &err)
	}

	for _, post := range res.Posts {
		if err := writer.Write(output.NewPostRecord(tracker.RunID(), cfg.Forum.ThreadID, post)); err != nil {
			return err
		}
	}

	return finish(errOut, root.verbose, tracker, "scan", cfg)
}
