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

package unread

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sirseerhq/forum-triage/internal/apierror"
	"github.com/sirseerhq/forum-triage/internal/forum"
	"github.com/sirseerhq/forum-triage/internal/metadata"
)

// Result is the outcome of a scan.
type Result struct {
	// PageCount is the number of pages the thread metadata reported.
	PageCount int
	// Scanned lists the pages fetched successfully, in fetch order.
	Scanned []int
	// Posts are the collected posts. Never nil.
	Posts []Post
	// FetchErr holds a status failure that was logged and swallowed.
	// When set, an empty Posts means "could not read", not "nothing new".
	FetchErr error
}

// Collector scans one thread for posts that need attention.
type Collector struct {
	client   forum.Client
	threadID int
	self     string
	logger   *log.Logger
	debug    *log.Logger
	tracker  *metadata.Tracker
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger used for status lines. Defaults to stderr.
func WithLogger(l *log.Logger) Option {
	return func(c *Collector) {
		c.logger = l
	}
}

// WithDebugLogger sets the logger used for per-page detail. Defaults to discard.
func WithDebugLogger(l *log.Logger) Option {
	return func(c *Collector) {
		c.debug = l
	}
}

// WithTracker sets the run tracker that receives page and API call counts.
func WithTracker(t *metadata.Tracker) Option {
	return func(c *Collector) {
		c.tracker = t
	}
}

// NewCollector creates a collector for threadID that ignores posts written by self.
func NewCollector(client forum.Client, threadID int, self string, opts ...Option) *Collector {
	c := &Collector{
		client:   client,
		threadID: threadID,
		self:     self,
		logger:   log.New(os.Stderr, "", 0),
		debug:    log.New(io.Discard, "", 0),
		tracker:  metadata.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scan resolves the page count and collects unread posts.
func (c *Collector) Scan(ctx context.Context) (*Result, error) {
	pages, fetchErr, err := c.Pages(ctx)
	if err != nil {
		return nil, err
	}
	if fetchErr != nil {
		return &Result{Posts: []Post{}, FetchErr: fetchErr}, nil
	}
	return c.Collect(ctx, pages)
}

// Pages fetches the thread metadata and returns its page count. A status
// failure is logged and reported as 0 pages together with the swallowed
// error; any other failure is returned as err.
func (c *Collector) Pages(ctx context.Context) (pages int, fetchErr, err error) {
	c.tracker.IncrementAPICall()
	thread, err := c.client.GetThread(ctx, c.threadID)
	if err != nil {
		if apierror.IsStatus(err) {
			c.logger.Println(apierror.StatusLine(err))
			c.tracker.RecordFetchFailure()
			return 0, err, nil
		}
		return 0, nil, fmt.Errorf("failed to get thread %d: %w", c.threadID, err)
	}

	pages = PageCount(thread.ReplyCount)
	c.tracker.RecordPageCount(pages)
	c.debug.Printf("thread %d has %d replies across %d pages", c.threadID, thread.ReplyCount, pages)
	return pages, nil, nil
}

// Collect walks pages from pages down to 1 and stops at the first page that
// yields collected posts.
func (c *Collector) Collect(ctx context.Context, pages int) (*Result, error) {
	res := &Result{PageCount: pages, Posts: []Post{}}

	for page := pages; page >= 1; page-- {
		c.tracker.IncrementAPICall()
		posts, err := c.client.GetPosts(ctx, c.threadID, page)
		if err != nil {
			if apierror.IsStatus(err) {
				c.logger.Println(apierror.StatusLine(err))
				c.tracker.RecordFetchFailure()
				res.FetchErr = err
				break
			}
			return nil, fmt.Errorf("failed to get page %d of thread %d: %w", page, c.threadID, err)
		}

		matched := Filter(posts, c.self)
		res.Scanned = append(res.Scanned, page)
		c.tracker.RecordPage(len(matched))
		c.debug.Printf("page %d: %d posts, %d unread from others", page, len(posts), len(matched))

		if len(matched) > 0 {
			res.Posts = append(res.Posts, matched...)
			break
		}
	}

	return res, nil
}
