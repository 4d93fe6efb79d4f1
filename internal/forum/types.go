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

// PageSize is the number of posts the discussion API returns per page.
const PageSize = 40

// Thread is the thread metadata used to size the page scan.
type Thread struct {
	ReplyCount int `json:"reply_count"`
}

// ThreadResponse is the body of GET /threads/{id}.
type ThreadResponse struct {
	Thread Thread `json:"thread"`
}

// Post is one reply as returned by the discussion API.
type Post struct {
	IsUnread bool   `json:"is_unread"`
	Message  string `json:"message"`
	Username string `json:"username"`
	PostID   int    `json:"post_id"`
	Position int    `json:"position"`
}

// PostsResponse is the body of GET /threads/{id}/posts/?page={n}.
type PostsResponse struct {
	Posts []Post `json:"posts"`
}
