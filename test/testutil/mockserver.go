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

// Package testutil provides common test helpers for forum-triage
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// ForumPost is the wire shape of a post served by ForumServer.
type ForumPost struct {
	IsUnread bool   `json:"is_unread"`
	Message  string `json:"message"`
	Username string `json:"username"`
	PostID   int    `json:"post_id"`
	Position int    `json:"position"`
}

// ForumRequest records one request received by ForumServer.
type ForumRequest struct {
	Path      string
	Query     string
	APIUser   string
	APIKey    string
	Date      string
	UserAgent string
}

// ForumServer is an httptest server speaking the discussion API for one thread.
type ForumServer struct {
	*httptest.Server

	ThreadID   int
	ReplyCount int
	Pages      map[int][]ForumPost

	// Status overrides; zero means 200.
	ThreadStatus   int
	PageStatus     map[int]int
	MarkReadStatus int

	// RawThreadBody replaces the thread response body when set.
	RawThreadBody string

	mu       sync.Mutex
	requests []ForumRequest
}

var (
	threadPath   = regexp.MustCompile(`^/threads/(\d+)$`)
	postsPath    = regexp.MustCompile(`^/threads/(\d+)/posts/?$`)
	markReadPath = regexp.MustCompile(`^/threads/(\d+)/mark-read$`)
)

// NewForumServer starts a discussion API server for threadID. The server is
// closed when the test finishes.
func NewForumServer(t *testing.T, threadID int) *ForumServer {
	t.Helper()
	fs := &ForumServer{
		ThreadID:   threadID,
		Pages:      make(map[int][]ForumPost),
		PageStatus: make(map[int]int),
	}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(fs.Close)
	return fs
}

// AddPage sets the posts served for page n and bumps ReplyCount so that the
// thread reports at least n pages.
func (fs *ForumServer) AddPage(n int, posts ...ForumPost) {
	fs.Pages[n] = posts
	if minReplies := (n-1)*40 + len(posts); fs.ReplyCount < minReplies {
		fs.ReplyCount = minReplies
	}
}

// Requests returns a copy of the requests received so far.
func (fs *ForumServer) Requests() []ForumRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]ForumRequest, len(fs.requests))
	copy(out, fs.requests)
	return out
}

// PagesRequested returns the page numbers fetched, in order.
func (fs *ForumServer) PagesRequested() []int {
	var pages []int
	for _, r := range fs.Requests() {
		if !postsPath.MatchString(r.Path) {
			continue
		}
		if q, err := parsePage(r.Query); err == nil {
			pages = append(pages, q)
		}
	}
	return pages
}

func (fs *ForumServer) handle(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	fs.requests = append(fs.requests, ForumRequest{
		Path:      r.URL.Path,
		Query:     r.URL.RawQuery,
		APIUser:   r.Header.Get("XF-Api-User"),
		APIKey:    r.Header.Get("XF-Api-Key"),
		Date:      r.Header.Get("Date"),
		UserAgent: r.Header.Get("User-Agent"),
	})
	fs.mu.Unlock()

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	path := r.URL.Path
	switch {
	case matchesThread(threadPath, path, fs.ThreadID):
		if fs.ThreadStatus != 0 && fs.ThreadStatus != http.StatusOK {
			writeStatus(w, fs.ThreadStatus)
			return
		}
		if fs.RawThreadBody != "" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(fs.RawThreadBody))
			return
		}
		writeJSON(w, map[string]interface{}{
			"thread": map[string]interface{}{"reply_count": fs.ReplyCount},
		})

	case matchesThread(postsPath, path, fs.ThreadID):
		page, err := parsePage(r.URL.RawQuery)
		if err != nil {
			writeStatus(w, http.StatusBadRequest)
			return
		}
		if status := fs.PageStatus[page]; status != 0 && status != http.StatusOK {
			writeStatus(w, status)
			return
		}
		posts := fs.Pages[page]
		if posts == nil {
			posts = []ForumPost{}
		}
		writeJSON(w, map[string]interface{}{"posts": posts})

	case matchesThread(markReadPath, path, fs.ThreadID):
		if fs.MarkReadStatus != 0 && fs.MarkReadStatus != http.StatusOK {
			writeStatus(w, fs.MarkReadStatus)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true})

	default:
		writeStatus(w, http.StatusNotFound)
	}
}

func matchesThread(re *regexp.Regexp, path string, threadID int) bool {
	m := re.FindStringSubmatch(path)
	return m != nil && m[1] == strconv.Itoa(threadID)
}

func parsePage(rawQuery string) (int, error) {
	for _, part := range strings.Split(rawQuery, "&") {
		if v, ok := strings.CutPrefix(part, "page="); ok {
			return strconv.Atoi(v)
		}
	}
	return 0, fmt.Errorf("no page parameter in %q", rawQuery)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeStatus(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
	_, _ = w.Write([]byte(http.StatusText(status)))
}

// CreatedIssue records one createIssue mutation received by GitHubServer.
type CreatedIssue struct {
	RepositoryID string
	Title        string
	Body         string
}

// GitHubServer is an httptest server answering the two GraphQL operations
// the issue creator uses: the repository id lookup and createIssue.
type GitHubServer struct {
	*httptest.Server

	Owner        string
	Repo         string
	RepositoryID string

	// Status overrides the HTTP status of every response when non-zero.
	Status int
	// CreateErrors, when non-empty, are returned as GraphQL errors for createIssue.
	CreateErrors []string

	mu          sync.Mutex
	lookups     int
	created     []CreatedIssue
	authHeaders []string
}

// NewGitHubServer starts a GraphQL server for owner/repo. The endpoint is
// URL + "/graphql".
func NewGitHubServer(t *testing.T, owner, repo string) *GitHubServer {
	t.Helper()
	gs := &GitHubServer{
		Owner:        owner,
		Repo:         repo,
		RepositoryID: "R_kgDOtest",
	}
	gs.Server = httptest.NewServer(http.HandlerFunc(gs.handle))
	t.Cleanup(gs.Close)
	return gs
}

// Endpoint returns the GraphQL endpoint URL.
func (gs *GitHubServer) Endpoint() string {
	return gs.URL + "/graphql"
}

// Created returns the issues created so far.
func (gs *GitHubServer) Created() []CreatedIssue {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	out := make([]CreatedIssue, len(gs.created))
	copy(out, gs.created)
	return out
}

// Lookups returns how many repository id queries were received.
func (gs *GitHubServer) Lookups() int {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.lookups
}

// AuthHeaders returns the Authorization headers received.
func (gs *GitHubServer) AuthHeaders() []string {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return append([]string(nil), gs.authHeaders...)
}

func (gs *GitHubServer) handle(w http.ResponseWriter, r *http.Request) {
	gs.mu.Lock()
	gs.authHeaders = append(gs.authHeaders, r.Header.Get("Authorization"))
	gs.mu.Unlock()

	if r.URL.Path != "/graphql" || r.Method != http.MethodPost {
		writeStatus(w, http.StatusNotFound)
		return
	}
	if gs.Status != 0 && gs.Status != http.StatusOK {
		writeStatus(w, gs.Status)
		return
	}

	var req struct {
		Query     string                     `json:"query"`
		Variables map[string]json.RawMessage `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, http.StatusBadRequest)
		return
	}

	switch {
	case strings.Contains(req.Query, "createIssue"):
		var input struct {
			RepositoryID string `json:"repositoryId"`
			Title        string `json:"title"`
			Body         string `json:"body"`
		}
		_ = json.Unmarshal(req.Variables["input"], &input)

		if len(gs.CreateErrors) > 0 {
			writeGraphQLErrors(w, gs.CreateErrors)
			return
		}

		gs.mu.Lock()
		gs.created = append(gs.created, CreatedIssue(input))
		number := len(gs.created)
		gs.mu.Unlock()

		writeJSON(w, map[string]interface{}{
			"data": map[string]interface{}{
				"createIssue": map[string]interface{}{
					"issue": map[string]interface{}{
						"number": number,
						"url":    fmt.Sprintf("https://github.com/%s/%s/issues/%d", gs.Owner, gs.Repo, number),
					},
				},
			},
		})

	case strings.Contains(req.Query, "repository("):
		var owner, name string
		_ = json.Unmarshal(req.Variables["owner"], &owner)
		_ = json.Unmarshal(req.Variables["name"], &name)

		gs.mu.Lock()
		gs.lookups++
		gs.mu.Unlock()

		if owner != gs.Owner || name != gs.Repo {
			writeGraphQLErrors(w, []string{fmt.Sprintf("Could not resolve to a Repository with the name '%s/%s'.", owner, name)})
			return
		}
		writeJSON(w, map[string]interface{}{
			"data": map[string]interface{}{
				"repository": map[string]interface{}{"id": gs.RepositoryID},
			},
		})

	default:
		writeStatus(w, http.StatusBadRequest)
	}
}

func writeGraphQLErrors(w http.ResponseWriter, messages []string) {
	errs := make([]map[string]interface{}, 0, len(messages))
	for _, m := range messages {
		errs = append(errs, map[string]interface{}{"message": m})
	}
	writeJSON(w, map[string]interface{}{"data": nil, "errors": errs})
}
