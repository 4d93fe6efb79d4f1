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

package github

import (
	"context"
	"fmt"
)

// MockClient is a mock implementation of IssueCreator for testing.
type MockClient struct {
	// Error, when set, is returned by every call.
	Error error

	// FailTitles maps an issue title to the error returned for it.
	FailTitles map[string]error

	// Track calls for verification
	Requests  []IssueRequest
	LastOwner string
	LastRepo  string

	next int
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithFailingTitle makes the client fail only for the issue with the given title
func WithFailingTitle(title string, err error) MockClientOption {
	return func(m *MockClient) {
		if m.FailTitles == nil {
			m.FailTitles = make(map[string]error)
		}
		m.FailTitles[title] = err
	}
}

// NewMockClient creates a mock client with options
func NewMockClient(opts ...MockClientOption) *MockClient {
	m := &MockClient{next: 1}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateIssue implements the IssueCreator interface
func (m *MockClient) CreateIssue(ctx context.Context, owner, repo string, req IssueRequest) (*Issue, error) {
	m.Requests = append(m.Requests, req)
	m.LastOwner = owner
	m.LastRepo = repo

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.Error != nil {
		return nil, m.Error
	}
	if err, ok := m.FailTitles[req.Title]; ok {
		return nil, err
	}

	number := m.next
	m.next++
	return &Issue{
		Number: number,
		URL:    fmt.Sprintf("https://github.com/%s/%s/issues/%d", owner, repo, number),
	}, nil
}
