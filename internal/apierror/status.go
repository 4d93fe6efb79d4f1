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

package apierror

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/sirseerhq/forum-triage/internal/errors"
)

// StatusError reports a non-success HTTP status returned by an API call.
type StatusError struct {
	// Op names the call that failed, e.g. "fetch thread".
	Op string
	// Code is the HTTP status code.
	Code int
}

// NewStatusError returns a StatusError for the given operation and status.
// It returns nil for 200 OK.
func NewStatusError(op string, code int) error {
	if code == http.StatusOK {
		return nil
	}
	return &StatusError{Op: op, Code: code}
}

func (e *StatusError) Error() string {
	if e.Code == http.StatusUnauthorized {
		return fmt.Sprintf("%s: authentication failed", e.Op)
	}
	return fmt.Sprintf("%s: unexpected status code: %d %s", e.Op, e.Code, http.StatusText(e.Code))
}

// Unwrap maps the status onto the package sentinels so callers can use errors.Is.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized {
		return apperrors.ErrUnauthorized
	}
	return apperrors.ErrUnexpectedStatus
}

// IsAuthError reports whether the status is 401.
func (e *StatusError) IsAuthError() bool {
	return e.Code == http.StatusUnauthorized
}

// IsStatus reports whether err carries a StatusError anywhere in its chain.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// StatusLine renders err as the single line the CLI logs for swallowed
// status failures.
func StatusLine(err error) string {
	var se *StatusError
	if !errors.As(err, &se) {
		return err.Error()
	}
	if se.IsAuthError() {
		return "Status: Authentication failed."
	}
	return fmt.Sprintf("Unexpected status code: %d", se.Code)
}
