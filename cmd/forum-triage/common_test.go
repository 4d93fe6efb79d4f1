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

package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type closeFailWriter struct {
	closeErr error
	closed   int
}

func (w *closeFailWriter) Write(record interface{}) error { return nil }

func (w *closeFailWriter) Close() error {
	w.closed++
	return w.closeErr
}

func TestCloseOutput(t *testing.T) {
	diskFull := errors.New("no space left on device")
	earlier := errors.New("session failed")

	tests := []struct {
		name     string
		closeErr error
		prior    error
		want     error
	}{
		{"clean close", nil, nil, nil},
		{"close failure is reported", diskFull, nil, diskFull},
		{"earlier error wins", diskFull, earlier, earlier},
		{"earlier error kept on clean close", nil, earlier, earlier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &closeFailWriter{closeErr: tt.closeErr}
			err := tt.prior

			closeOutput(w, "issues.ndjson", &err)

			assert.Equal(t, 1, w.closed)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			if tt.want == diskFull {
				assert.Contains(t, err.Error(), "issues.ndjson")
			}
		})
	}
}
