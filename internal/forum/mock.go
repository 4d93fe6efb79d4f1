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

package forum

import (
	"context"
	"time"
)

// MockClient is a mock implementation of the forum Client interface for testing.
type MockClient struct {
	// Thread metadata to return
	ReplyCount int

	// Posts to return, keyed by page number. Missing pages are empty.
	Pages map[int][]Post

	// Errors to return
	ThreadError   error
	PageErrors    map[int]error
	MarkReadError error

	// Track calls for verification
	ThreadCalls   int
	PageCalls     []int
	MarkReadCalls []time.Time
	LastThreadID  int
}

// NewMockClient creates a mock client with no replies.
func NewMockClient(opts ...MockClientOption) *MockClient {
	mock := &MockClient{
		Pages:      make(map[int][]Post),
		PageErrors: make(map[int]error),
	}
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}

// GetThread implements the Client interface
func (m *MockClient) GetThread(ctx context.Context, threadID int) (*Thread, error) {
	m.ThreadCalls++
	m.LastThreadID = threadID

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ThreadError != nil {
		return nil, m.ThreadError
	}
	return &Thread{ReplyCount: m.ReplyCount}, nil
}

// GetPosts implements the Client interface
func (m *MockClient) GetPosts(ctx context.Context, threadID, page int) ([]Post, error) {
	m.PageCalls = append(m.PageCalls, page)
	m.LastThreadID = threadID

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.PageErrors[page]; err != nil {
		return nil, err
	}
	posts := m.Pages[page]
	if posts == nil {
		return []Post{}, nil
	}
	return posts, nil
}

// MarkRead implements the Client interface
func (m *MockClient) MarkRead(ctx context.Context, threadID int, at time.Time) error {
	m.MarkReadCalls = append(m.MarkReadCalls, at)
	m.LastThreadID = threadID

	if err := ctx.Err(); err != nil {
		return err
	}
	return m.MarkReadError
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithReplyCount sets the reply count reported for the thread
func WithReplyCount(n int) MockClientOption {
	return func(m *MockClient) {
		m.ReplyCount = n
	}
}

// WithPage sets the posts returned for one page
func WithPage(page int, posts ...Post) MockClientOption {
	return func(m *MockClient) {
		m.Pages[page] = posts
	}
}

// WithThreadError makes the thread metadata call fail
func WithThreadError(err error) MockClientOption {
	return func(m *MockClient) {
		m.ThreadError = err
	}
}

// WithPageError makes the given page fetch fail
func WithPageError(page int, err error) MockClientOption {
	return func(m *MockClient) {
		m.PageErrors[page] = err
	}
}

// WithMarkReadError makes the mark-read call fail
func WithMarkReadError(err error) MockClientOption {
	return func(m *MockClient) {
		m.MarkReadError = err
	}
}
