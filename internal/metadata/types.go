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

// Package metadata types define the structures used for summarizing a
// triage run. The summary lives only for the duration of the run; it is
// printed, never persisted.
package metadata

import (
	"time"
)

// RunSummary is the complete record of a single triage run.
type RunSummary struct {
	ToolVersion string     `json:"tool_version"`
	RunID       string     `json:"run_id"`
	Mode        string     `json:"mode"`
	Parameters  RunParams  `json:"parameters"`
	Results     RunResults `json:"results"`
}

// RunParams captures which thread and repository the run worked against.
type RunParams struct {
	ThreadID   int    `json:"thread_id"`
	Repository string `json:"repository"`
}

// RunResults contains the counters collected while the run progressed.
type RunResults struct {
	PageCount      int       `json:"page_count"`
	PagesScanned   int       `json:"pages_scanned"`
	PostsCollected int       `json:"posts_collected"`
	IssuesCreated  int       `json:"issues_created"`
	IssuesFailed   int       `json:"issues_failed"`
	PostsSkipped   int       `json:"posts_skipped"`
	MarkedRead     bool      `json:"marked_read"`
	FetchFailed    bool      `json:"fetch_failed"`
	APICallCount   int       `json:"api_calls_made"`
	Duration       string    `json:"duration"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
}
