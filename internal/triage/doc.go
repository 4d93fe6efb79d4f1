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

// Package triage runs the interactive part of a session: it shows each
// collected post to the operator, files the confirmed ones as GitHub
// issues and finally offers to mark the thread read.
//
// Console output is line-oriented and stable so it can be scripted:
//
//	User: alice
//	Message: The export button does nothing.
//	Store message as issue? (y/n)
//	y
//	Issue created: https://github.com/octocat/hello-world/issues/7
//
//	─────...
//
// Only an answer of exactly "y" (surrounding whitespace ignored) counts as
// yes. Anything else, including end of input, is no.
package triage
