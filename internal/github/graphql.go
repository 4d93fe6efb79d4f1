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
	"net/http"
	"sync"
	"time"

	"github.com/shurcooL/graphql"

	"github.com/sirseerhq/forum-triage/internal/apierror"
	apperrors "github.com/sirseerhq/forum-triage/internal/errors"
)

// GraphQLClient implements IssueCreator using GitHub's GraphQL API.
type GraphQLClient struct {
	client    *graphql.Client
	inspector apierror.Inspector

	mu      sync.Mutex
	repoIDs map[string]string
}

// NewGraphQLClient creates a GitHub GraphQL client with the provided token and
// endpoint. A zero timeout leaves requests bounded only by their context.
func NewGraphQLClient(token, endpoint string, timeout time.Duration) *GraphQLClient {
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &authTransport{
			token: token,
			base:  http.DefaultTransport,
		},
	}

	return &GraphQLClient{
		client:    graphql.NewClient(endpoint, httpClient),
		inspector: apierror.NewInspector(),
		repoIDs:   make(map[string]string),
	}
}

// CreateIssue resolves the repository node ID (cached after the first call)
// and runs the createIssue mutation.
func (c *GraphQLClient) CreateIssue(ctx context.Context, owner, repo string, req IssueRequest) (*Issue, error) {
	repoID, err := c.repositoryID(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	var mutation struct {
		CreateIssue struct {
			Issue struct {
				Number graphql.Int
				URL    graphql.String
			}
		} `graphql:"createIssue(input: $input)"`
	}

	variables := map[string]interface{}{
		"input": CreateIssueInput{
			RepositoryID: repoID,
			Title:        req.Title,
			Body:         req.Body,
		},
	}

	if err := c.client.Mutate(ctx, &mutation, variables); err != nil {
		return nil, c.mapError(ctx, err, "create issue", owner, repo)
	}

	issue := &Issue{
		Number: int(mutation.CreateIssue.Issue.Number),
		URL:    string(mutation.CreateIssue.Issue.URL),
	}
	if issue.URL == "" {
		return nil, fmt.Errorf("create issue: response carried no issue URL: %w", apperrors.ErrMalformedResponse)
	}
	return issue, nil
}

func (c *GraphQLClient) repositoryID(ctx context.Context, owner, repo string) (string, error) {
	key := owner + "/" + repo

	c.mu.Lock()
	id, ok := c.repoIDs[key]
	c.mu.Unlock()
	if ok {
		return id, nil
	}

	var query struct {
		Repository struct {
			ID graphql.String
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"name":  graphql.String(repo),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return "", c.mapError(ctx, err, "look up repository", owner, repo)
	}

	id = string(query.Repository.ID)
	if id == "" {
		return "", fmt.Errorf("repository '%s/%s' not found: %w", owner, repo, apperrors.ErrRepoNotFound)
	}

	c.mu.Lock()
	c.repoIDs[key] = id
	c.mu.Unlock()
	return id, nil
}

// mapError maps GraphQL errors to our domain errors with actionable messages
func (c *GraphQLClient) mapError(ctx context.Context, err error, op, owner, repo string) error {
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}

	if c.inspector.IsAuthError(err) {
		return fmt.Errorf("GitHub API authentication failed. Please check GH_AUTH_TOKEN: %w", apperrors.ErrUnauthorized)
	}

	if c.inspector.IsNotFoundError(err) {
		return fmt.Errorf("repository '%s/%s' not found. Please check GH_OWNER, GH_REPO and your access permissions: %w", owner, repo, apperrors.ErrRepoNotFound)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w", apperrors.ErrNetworkFailure)
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}
