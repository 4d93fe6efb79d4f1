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

// Client defines the interface for interacting with the discussion API.
// This interface allows for easy mocking in tests.
type Client interface {
	// GetThread retrieves the thread metadata, including its reply count.
	GetThread(ctx context.Context, threadID int) (*Thread, error)

	// GetPosts retrieves one page of posts. Pages are numbered from 1 and
	// hold up to PageSize posts in thread order.
	GetPosts(ctx context.Context, threadID, page int) ([]Post, error)

	// MarkRead marks every post in the thread as read up to the given time.
	MarkRead(ctx context.Context, threadID int, at time.Time) error
}
