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

// Package httputil holds the HTTP plumbing shared by the forum and GitHub
// clients.
package httputil

import (
	"errors"
	"fmt"
	"io"
)

// MaxResponseBytes caps how much of any API response body is read.
const MaxResponseBytes = 10 * 1024 * 1024

// ErrResponseTooLarge is returned once a limited body has delivered its limit.
var ErrResponseTooLarge = errors.New("response size exceeded limit")

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// LimitBody wraps body so that reading past limit bytes fails with
// ErrResponseTooLarge. A nil body is returned unchanged.
func LimitBody(body io.ReadCloser, limit int64) io.ReadCloser {
	if body == nil {
		return nil
	}
	return &limitedReader{ReadCloser: body, limit: limit}
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		// A body of exactly limit bytes still ends cleanly.
		var peek [1]byte
		if n, err := lr.ReadCloser.Read(peek[:]); n == 0 && errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("%w of %d bytes", ErrResponseTooLarge, lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)
	return n, err
}
