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
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirseerhq/forum-triage/internal/output"
	"github.com/sirseerhq/forum-triage/test/testutil"
)

func TestScan_WritesRecords(t *testing.T) {
	fs := newThread(t)
	setupEnv(t, fs, nil)

	stdout, stderr, err := execute(t, "", "scan")
	require.NoError(t, err, "stderr: %s", stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)

	var records []output.PostRecord
	for _, line := range lines {
		var rec output.PostRecord
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	assert.Equal(t, "alice", records[0].Username)
	assert.Equal(t, 1201, records[0].PostID)
	assert.Equal(t, "bob", records[1].Username)
	assert.Equal(t, testThread, records[1].ThreadID)
	assert.Equal(t, records[0].RunID, records[1].RunID)

	assert.Empty(t, markReadRequests(fs), "scan never marks the thread read")
}

func TestScan_OutputFile(t *testing.T) {
	fs := newThread(t)
	setupEnv(t, fs, nil)
	path := filepath.Join(t.TempDir(), "posts.ndjson")

	stdout, _, err := execute(t, "", "scan", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestScan_NoReplies(t *testing.T) {
	fs := testutil.NewForumServer(t, testThread)
	setupEnv(t, fs, nil)

	stdout, stderr, err := execute(t, "", "scan")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, "No new messages.\n", stderr)
}

func TestScan_StatusFailure(t *testing.T) {
	fs := newThread(t)
	fs.ThreadStatus = http.StatusBadGateway
	setupEnv(t, fs, nil)

	stdout, stderr, err := execute(t, "", "scan")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Unexpected status code: 502\n")
	assert.Contains(t, stderr, "No new messages.\n")
	assert.Contains(t, stderr, "(thread fetch failed: ")
}

func TestScan_MalformedThread(t *testing.T) {
	fs := newThread(t)
	fs.RawThreadBody = "{not json"
	setupEnv(t, fs, nil)

	_, _, err := execute(t, "", "scan")
	require.Error(t, err)
	assert.Equal(t, 1, mapErrorToExitCode(err))
}
