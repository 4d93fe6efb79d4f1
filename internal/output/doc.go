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

// Package output writes triage records in NDJSON (Newline Delimited JSON)
// format, one JSON object per line.
//
// Two record kinds are produced: an IssueRecord for every issue filed
// during an interactive run, and a PostRecord for every unread post found
// by a non-interactive scan. File output is appended to, so repeated runs
// build up a single log.
//
// Example usage:
//
//	w, err := output.NewFileWriter("issues.ndjson")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	if err := w.Write(output.NewIssueRecord(runID, post, issue.Number, issue.URL, time.Now())); err != nil {
//	    return err
//	}
package output
