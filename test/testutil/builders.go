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

package testutil

import "fmt"

// ThreadBuilder lays out a discussion thread page by page. Post IDs and
// positions are assigned sequentially across pages.
type ThreadBuilder struct {
	self   string
	pages  [][]ForumPost
	nextID int
	pos    int
}

// NewThreadBuilder starts a thread whose operator is self. The first page is
// open for posts.
func NewThreadBuilder(self string) *ThreadBuilder {
	return &ThreadBuilder{
		self:   self,
		pages:  [][]ForumPost{{}},
		nextID: 1000,
	}
}

// Page starts a new page.
func (b *ThreadBuilder) Page() *ThreadBuilder {
	b.pages = append(b.pages, []ForumPost{})
	return b
}

// Unread adds an unread post by user.
func (b *ThreadBuilder) Unread(user, message string) *ThreadBuilder {
	return b.add(true, user, message)
}

// Read adds a post by user that has already been read.
func (b *ThreadBuilder) Read(user, message string) *ThreadBuilder {
	return b.add(false, user, message)
}

// Own adds an unread post written by the operator.
func (b *ThreadBuilder) Own(message string) *ThreadBuilder {
	return b.add(true, b.self, message)
}

// Filler adds n read posts.
func (b *ThreadBuilder) Filler(n int) *ThreadBuilder {
	for i := 0; i < n; i++ {
		b.add(false, fmt.Sprintf("member%d", b.pos), fmt.Sprintf("reply %d", b.pos))
	}
	return b
}

func (b *ThreadBuilder) add(unread bool, user, message string) *ThreadBuilder {
	b.nextID++
	b.pos++
	last := len(b.pages) - 1
	b.pages[last] = append(b.pages[last], ForumPost{
		IsUnread: unread,
		Message:  message,
		Username: user,
		PostID:   b.nextID,
		Position: b.pos,
	})
	return b
}

// Pages returns the posts of every page, page 1 first.
func (b *ThreadBuilder) Pages() [][]ForumPost {
	return b.pages
}

// Serve installs the thread on fs.
func (b *ThreadBuilder) Serve(fs *ForumServer) {
	for i, posts := range b.pages {
		fs.AddPage(i+1, posts...)
	}
}
