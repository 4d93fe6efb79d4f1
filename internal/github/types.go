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

// Issue is a created GitHub issue.
type Issue struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// IssueRequest holds the user-visible content of an issue to create.
type IssueRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreateIssueInput is the input object of the createIssue mutation. The type
// name is sent as the GraphQL variable type, so it must match the schema.
type CreateIssueInput struct {
	RepositoryID string `json:"repositoryId"`
	Title        string `json:"title"`
	Body         string `json:"body"`
}
