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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidConfig indicates a required setting is missing or malformed.
	// Maps to exit code 1.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnauthorized indicates an API rejected the configured credentials.
	// Maps to exit code 2.
	ErrUnauthorized = errors.New("authentication failed")

	// ErrUnexpectedStatus indicates an API answered with a non-success status
	// other than an authentication failure.
	// Maps to exit code 1.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrMalformedResponse indicates a response body could not be decoded.
	// Maps to exit code 1.
	ErrMalformedResponse = errors.New("malformed response body")

	// ErrRepoNotFound indicates the issue repository does not exist or is not accessible.
	// Maps to exit code 2.
	ErrRepoNotFound = errors.New("repository not found")
)
