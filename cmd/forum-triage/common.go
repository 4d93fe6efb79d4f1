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
	"log"

	"github.com/sirseerhq/forum-triage/internal/config"
	"github.com/sirseerhq/forum-triage/internal/forum"
	"github.com/sirseerhq/forum-triage/internal/metadata"
	"github.com/sirseerhq/forum-triage/internal/output"
	"github.com/sirseerhq/forum-triage/internal/unread"
	"github.com/sirseerhq/forum-triage/internal/version"
)

// loadConfig merges every config source with the flags and validates the
// result. Commands that never talk to GitHub pass withGitHub=false.
func loadConfig(opts *rootOptions, withGitHub bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath, opts.envFile)
	if err != nil {
		return nil, err
	}

	if opts.threadID != 0 {
		cfg.Forum.ThreadID = opts.threadID
	}

	if withGitHub {
		err = cfg.Validate()
	} else {
		err = cfg.ValidateForum()
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLoggers returns the status logger and the debug logger. Debug output is
// discarded unless verbose is set.
func newLoggers(w io.Writer, verbose bool) (logger, debug *log.Logger) {
	logger = log.New(w, "", 0)
	debug = log.New(io.Discard, "", 0)
	if verbose {
		debug = log.New(w, "[debug] ", 0)
	}
	return logger, debug
}

// collect runs the backward unread scan for the configured thread.
func collect(ctx context.Context, cfg *config.Config, logger, debug *log.Logger, tracker *metadata.Tracker) (*unread.Result, error) {
	client := forum.NewRESTClient(cfg.Forum.BaseURL, cfg.Forum.APIUserID, cfg.Forum.APIKey, cfg.HTTP.Timeout)

	collector := unread.NewCollector(client, cfg.Forum.ThreadID, cfg.Forum.Username,
		unread.WithLogger(logger),
		unread.WithDebugLogger(debug),
		unread.WithTracker(tracker),
	)

	res, err := collector.Scan(ctx)
	if err != nil {
		return nil, err
	}
	debug.Printf("collected %d posts from %d of %d pages", len(res.Posts), len(res.Scanned), res.PageCount)
	return res, nil
}

// reportFetchFailure tells an empty thread apart from one that could not be read.
func reportFetchFailure(logger *log.Logger, res *unread.Result) {
	if res.FetchErr != nil {
		logger.Printf("(thread fetch failed: %v)", res.FetchErr)
	}
}

// finish prints the run summary when verbose is set.
func finish(w io.Writer, verbose bool, tracker *metadata.Tracker, mode string, cfg *config.Config) error {
	if !verbose {
		return nil
	}
	params := metadata.RunParams{ThreadID: cfg.Forum.ThreadID}
	if cfg.GitHub.Owner != "" && cfg.GitHub.Repo != "" {
		params.Repository = fmt.Sprintf("%s/%s", cfg.GitHub.Owner, cfg.GitHub.Repo)
	}
	return metadata.WriteSummary(tracker.GenerateSummary(version.Version, mode, params), w)
}

// closeOutput closes w and stores a close failure in *err unless an earlier
// error is already there. Meant to be deferred.
func closeOutput(w output.OutputWriter, name string, err *error) {
	if cErr := w.Close(); cErr != nil && *err == nil {
		*err = fmt.Errorf("failed to close %s: %w", name, cErr)
	}
}
