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

package output

import (
	"time"

	"github.com/sirseerhq/forum-triage/internal/unread"
)

// IssueRecord describes one issue filed from a forum post.
type IssueRecord struct {
	RunID       string    `json:"run_id"`
	PostID      int       `json:"post_id"`
	Username    string    `json:"username"`
	Position    int       `json:"position"`
	Message     string    `json:"message"`
	IssueNumber int       `json:"issue_number"`
	IssueURL    string    `json:"issue_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewIssueRecord builds the record for an issue created from post.
func NewIssueRecord(runID string, post unread.Post, number int, url string, at time.Time) IssueRecord {
	return IssueRecord{
		RunID:       runID,
		PostID:      post.PostID,
		Username:    post.Username,
		Position:    post.Position,
		Message:     post.Message,
		IssueNumber: number,
		IssueURL:    url,
		CreatedAt:   at.UTC(),
	}
}

// PostRecord describes one unread post found by a scan.
type PostRecord struct {
	RunID    string `json:"run_id"`
	ThreadID int    `json:"thread_id"`
	PostID   int    `json:"post_id"`
	Username string `json:"username"`
	Position int    `json:"position"`
	Message  string `json:"message"`
}

// NewPostRecord builds the record for a collected post.
func NewPostRecord(runID string, threadID int, post unread.Post) PostRecord {
	return PostRecord{
		RunID:    runID,
		ThreadID: threadID,
		PostID:   post.PostID,
		Username: post.Username,
		Position: post.Position,
		Message:  post.Message,
	}
}
