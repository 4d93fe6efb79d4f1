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

package github

import "context"

// IssueCreator defines the interface for filing issues on GitHub.
// This interface allows for easy mocking in tests.
type IssueCreator interface {
	// CreateIssue files a new issue in owner/repo and returns its number and URL.
	CreateIssue(ctx context.Context, owner, repo string, req IssueRequest) (*Issue, error)
}
