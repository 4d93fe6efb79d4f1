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
	"net/http"

	"github.com/sirseerhq/forum-triage/internal/httputil"
	"github.com/sirseerhq/forum-triage/internal/version"
)

// apiKeyTransport adds the discussion API credentials and safety limits to
// every request.
type apiKeyTransport struct {
	apiUserID string
	apiKey    string
	base      http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	req.Header.Set("XF-Api-User", t.apiUserID)
	req.Header.Set("XF-Api-Key", t.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	resp.Body = httputil.LimitBody(resp.Body, httputil.MaxResponseBytes)

	return resp, nil
}
