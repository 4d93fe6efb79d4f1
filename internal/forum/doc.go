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

// Package forum provides a client for the discussion API that hosts the
// triaged thread. The API is a XenForo-style REST API: every request carries
// the XF-Api-User and XF-Api-Key headers, threads are read in fixed pages of
// 40 posts, and a thread can be marked read up to a given timestamp.
//
// The package includes:
//   - A Client interface for thread metadata, post pages and mark-read
//   - A REST implementation on net/http
//   - A mock client for testing
//
// Non-success statuses are returned as *apierror.StatusError values so callers
// can decide whether a failure is fatal. Transport failures wrap
// errors.ErrNetworkFailure and undecodable bodies wrap errors.ErrMalformedResponse.
package forum
