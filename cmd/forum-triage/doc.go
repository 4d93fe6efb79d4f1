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

// Package main implements the forum-triage command-line interface.
// It reads the unread replies of one discussion thread and lets an operator
// turn each of them into a GitHub issue.
//
// The CLI supports:
//   - Interactive triage with line or form prompts (run)
//   - Non-interactive listing of unread replies as NDJSON (scan)
//   - Configuration from flags, environment, a .env file or YAML
//   - An NDJSON log of created issues (run --output)
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	forum-triage run [flags]
//	forum-triage scan [flags]
//
// Example:
//
//	export BASE_URL=https://forum.example.com/api THREAD_ID=1234
//	export API_KEY=... API_USER_ID=1 USERNAME=maintainer
//	export GH_AUTH_TOKEN=... GH_OWNER=acme GH_REPO=support
//	forum-triage run --output issues.ndjson
//
// Exit codes:
//   - 0: Success, including "No new messages."
//   - 1: General or configuration error
//   - 2: Authentication error or repository not found
//   - 3: Network error
package main
