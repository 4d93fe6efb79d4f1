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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirseerhq/forum-triage/internal/apierror"
	apperrors "github.com/sirseerhq/forum-triage/internal/errors"
)

// RESTClient implements the Client interface against the discussion REST API.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRESTClient creates a client for the API rooted at baseURL, e.g.
// https://forum.example.com/api. A zero timeout leaves requests bounded only
// by their context.
func NewRESTClient(baseURL, apiUserID, apiKey string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &apiKeyTransport{
				apiUserID: apiUserID,
				apiKey:    apiKey,
				base:      http.DefaultTransport,
			},
		},
	}
}

// GetThread implements Client.
func (c *RESTClient) GetThread(ctx context.Context, threadID int) (*Thread, error) {
	url := fmt.Sprintf("%s/threads/%d", c.baseURL, threadID)

	var body ThreadResponse
	if err := c.getJSON(ctx, "fetch thread", url, nil, &body); err != nil {
		return nil, err
	}
	return &body.Thread, nil
}

// GetPosts implements Client.
func (c *RESTClient) GetPosts(ctx context.Context, threadID, page int) ([]Post, error) {
	url := fmt.Sprintf("%s/threads/%d/posts/?page=%d", c.baseURL, threadID, page)

	var body PostsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("fetch posts page %d", page), url, nil, &body); err != nil {
		return nil, err
	}
	if body.Posts == nil {
		return []Post{}, nil
	}
	return body.Posts, nil
}

// MarkRead implements Client. The read position is sent as epoch
// milliseconds in the date header.
func (c *RESTClient) MarkRead(ctx context.Context, threadID int, at time.Time) error {
	url := fmt.Sprintf("%s/threads/%d/mark-read", c.baseURL, threadID)
	header := http.Header{}
	header.Set("date", strconv.FormatInt(at.UnixMilli(), 10))

	return c.getJSON(ctx, "mark thread read", url, header, nil)
}

// getJSON issues a GET and decodes a 200 response into out when out is non-nil.
func (c *RESTClient) getJSON(ctx context.Context, op, url string, header http.Header, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", op, ctx.Err())
		}
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if statusErr := apierror.NewStatusError(op, resp.StatusCode); statusErr != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return statusErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrMalformedResponse, err)
	}
	return nil
}
