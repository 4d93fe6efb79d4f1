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

// Package metadata provides functionality for tracking what happens during a
// triage run: API calls made, pages scanned, posts collected and the
// operator's decisions. Each run gets a random run ID that is also stamped on
// the NDJSON records the CLI writes, so records from one run can be grouped.
package metadata

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
)

// Tracker collects statistics during a run and generates a RunSummary.
// Create a new tracker at the start of each run and call its methods to
// record activity. Tracker is not safe for concurrent use; a run is single
// threaded.
type Tracker struct {
	runID        string
	startTime    time.Time
	apiCallCount int
	results      RunResults
}

// New creates a new tracker with a fresh run ID and the current time.
func New() *Tracker {
	return &Tracker{
		runID:     uuid.NewString(),
		startTime: time.Now(),
	}
}

// RunID returns the identifier of this run.
func (t *Tracker) RunID() string {
	return t.runID
}

// IncrementAPICall records that an API call was made, successful or not.
func (t *Tracker) IncrementAPICall() {
	t.apiCallCount++
}

// RecordPageCount records the page count derived from the thread metadata.
func (t *Tracker) RecordPageCount(pages int) {
	t.results.PageCount = pages
}

// RecordPage records a fetched page and how many of its posts were collected.
func (t *Tracker) RecordPage(collected int) {
	t.results.PagesScanned++
	t.results.PostsCollected += collected
}

// RecordFetchFailure records that a status failure was swallowed while
// reading the thread.
func (t *Tracker) RecordFetchFailure() {
	t.results.FetchFailed = true
}

// RecordIssueCreated records a post that became an issue.
func (t *Tracker) RecordIssueCreated() {
	t.results.IssuesCreated++
}

// RecordIssueFailed records a confirmed post whose issue could not be created.
func (t *Tracker) RecordIssueFailed() {
	t.results.IssuesFailed++
}

// RecordSkipped records a post the operator declined.
func (t *Tracker) RecordSkipped() {
	t.results.PostsSkipped++
}

// RecordMarkedRead records a successful mark-read.
func (t *Tracker) RecordMarkedRead() {
	t.results.MarkedRead = true
}

// Results returns a snapshot of the counters collected so far.
func (t *Tracker) Results() RunResults {
	r := t.results
	r.APICallCount = t.apiCallCount
	r.StartedAt = t.startTime
	return r
}

// GenerateSummary creates the RunSummary for this run. Call it once the run
// is over.
func (t *Tracker) GenerateSummary(toolVersion, mode string, params RunParams) *RunSummary {
	completedAt := time.Now()

	results := t.Results()
	results.CompletedAt = completedAt
	results.Duration = completedAt.Sub(t.startTime).Round(time.Millisecond).String()

	return &RunSummary{
		ToolVersion: toolVersion,
		RunID:       t.runID,
		Mode:        mode,
		Parameters:  params,
		Results:     results,
	}
}

// WriteSummary serializes a summary to JSON and writes it to the provided
// io.Writer. The output is formatted with indentation for readability.
func WriteSummary(summary *RunSummary, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}
