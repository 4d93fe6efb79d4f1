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

// Package unread finds the replies in a thread that still need the
// operator's attention.
//
// The thread is scanned backwards, starting at its last page. A post is
// collected when it is unread and was not written by the operator. The scan
// stops at the first page that yields at least one such post; pages that
// yield none are skipped and the next lower page is tried, down to page 1.
// Unread posts buried behind a page of already-read posts are therefore not
// found. Threads are append-only, so fresh activity sits on the last pages.
//
// Non-success HTTP statuses (authentication failures included) are logged and
// end the scan with whatever was collected; the swallowed failure is kept in
// Result.FetchErr. Transport and decoding failures are returned as errors.
package unread

import "github.com/sirseerhq/forum-triage/internal/forum"

// Post is a reply that passed the unread and not-self filters.
type Post struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	PostID   int    `json:"post_id"`
	Position int    `json:"position"`
}

// PageCount returns the number of pages needed to hold replyCount posts.
func PageCount(replyCount int) int {
	if replyCount <= 0 {
		return 0
	}
	return (replyCount + forum.PageSize - 1) / forum.PageSize
}

// Filter keeps the posts that are unread and not authored by self, in
// their original order. It never returns nil.
func Filter(posts []forum.Post, self string) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if !p.IsUnread || p.Username == self {
			continue
		}
		out = append(out, Post{
			Message:  p.Message,
			Username: p.Username,
			PostID:   p.PostID,
			Position: p.Position,
		})
	}
	return out
}
