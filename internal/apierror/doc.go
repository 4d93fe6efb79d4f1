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

// Package apierror classifies failures coming back from the forum and
// issue-tracker APIs. HTTP status failures are carried as *StatusError values
// that unwrap to the sentinel errors in internal/errors; failures that only
// exist as text (the GraphQL library reports non-200 responses that way) are
// classified by an Inspector.
package apierror
