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

// Package github files issues on GitHub through its GraphQL API.
//
// Creating an issue takes two operations: a repository query that resolves
// owner/name to the repository node ID, and the createIssue mutation. The
// node ID is cached per repository so a triage session performs the lookup
// once.
//
// Basic usage:
//
//	client := github.NewGraphQLClient(token, "https://api.github.com/graphql", 30*time.Second)
//	issue, err := client.CreateIssue(ctx, "octocat", "hello-world", github.IssueRequest{
//	    Title: "alice - 1201 - 14",
//	    Body:  "The export button does nothing.",
//	})
//	if err != nil {
//	    // Handle error
//	}
//	fmt.Println(issue.URL)
package github
