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
	"net"
	"net/http"
	"testing"

	apperrors "github.com/sirseerhq/forum-triage/internal/errors"
)

func TestNewStatusError(t *testing.T) {
	if err := NewStatusError("fetch thread", http.StatusOK); err != nil {
		t.Fatalf("NewStatusError(200) = %v, want nil", err)
	}

	tests := []struct {
		name     string
		code     int
		sentinel error
		wantMsg  string
		wantLine string
	}{
		{
			name:     "unauthorized",
			code:     http.StatusUnauthorized,
			sentinel: apperrors.ErrUnauthorized,
			wantMsg:  "fetch thread: authentication failed",
			wantLine: "Status: Authentication failed.",
		},
		{
			name:     "forbidden",
			code:     http.StatusForbidden,
			sentinel: apperrors.ErrUnexpectedStatus,
			wantMsg:  "fetch thread: unexpected status code: 403 Forbidden",
			wantLine: "Unexpected status code: 403",
		},
		{
			name:     "server error",
			code:     http.StatusInternalServerError,
			sentinel: apperrors.ErrUnexpectedStatus,
			wantMsg:  "fetch thread: unexpected status code: 500 Internal Server Error",
			wantLine: "Unexpected status code: 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewStatusError("fetch thread", tt.code)
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.sentinel)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
			wrapped := fmt.Errorf("collect: %w", err)
			if !IsStatus(wrapped) {
				t.Error("IsStatus(wrapped) = false, want true")
			}
			if got := StatusLine(wrapped); got != tt.wantLine {
				t.Errorf("StatusLine() = %q, want %q", got, tt.wantLine)
			}
		})
	}
}

func TestStatusLine_PlainError(t *testing.T) {
	err := errors.New("boom")
	if IsStatus(err) {
		t.Error("IsStatus(plain) = true, want false")
	}
	if got := StatusLine(err); got != "boom" {
		t.Errorf("StatusLine() = %q, want boom", got)
	}
}

func TestInspector_IsAuthError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "status 401",
			err:  NewStatusError("mark read", http.StatusUnauthorized),
			want: true,
		},
		{
			name: "status 500 is not auth even with misleading text",
			err:  fmt.Errorf("authentication proxy: %w", NewStatusError("mark read", http.StatusInternalServerError)),
			want: false,
		},
		{
			name: "graphql non-200 text",
			err:  errors.New("non-200 OK status code: 401 Unauthorized body: \"Bad credentials\""),
			want: true,
		},
		{
			name: "bad credentials",
			err:  errors.New("Bad credentials"),
			want: true,
		},
		{
			name: "not an auth error",
			err:  errors.New("something went wrong"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInspector_IsNotFoundError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "status 404",
			err:  NewStatusError("fetch thread", http.StatusNotFound),
			want: true,
		},
		{
			name: "graphql could not resolve",
			err:  errors.New("Could not resolve to a Repository with the name 'o/r'."),
			want: true,
		},
		{
			name: "other error",
			err:  errors.New("internal error"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNotFoundError(tt.err); got != tt.want {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInspector_IsNetworkError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "typed net error",
			err:  fmt.Errorf("get page: %w", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}),
			want: true,
		},
		{
			name: "connection refused text",
			err:  errors.New("dial tcp 127.0.0.1:1: connect: connection refused"),
			want: true,
		},
		{
			name: "no such host",
			err:  errors.New("dial tcp: lookup forum.invalid: no such host"),
			want: true,
		},
		{
			name: "not a network error",
			err:  errors.New("invalid character 'x' looking for beginning of value"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNetworkError(tt.err); got != tt.want {
				t.Errorf("IsNetworkError() = %v, want %v", got, tt.want)
			}
		})
	}
}
