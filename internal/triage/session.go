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

package triage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sirseerhq/forum-triage/internal/apierror"
	"github.com/sirseerhq/forum-triage/internal/forum"
	"github.com/sirseerhq/forum-triage/internal/github"
	"github.com/sirseerhq/forum-triage/internal/metadata"
	"github.com/sirseerhq/forum-triage/internal/output"
	"github.com/sirseerhq/forum-triage/internal/unread"
)

// Console prompts and messages.
const (
	StorePrompt     = "Store message as issue? (y/n)"
	MarkReadPrompt  = "Mark all messages as read? (y/n)"
	NoNewMessages   = "No new messages."
	MarkedReadLine  = "All messages marked as read."
	issueCreatedFmt = "Issue created: %s\n"
)

// Separator is printed after every post.
var Separator = strings.Repeat("─", 105)

// IssueTitle returns the issue title for a post: "{username} - {post_id} - {position}".
func IssueTitle(p unread.Post) string {
	return fmt.Sprintf("%s - %d - %d", p.Username, p.PostID, p.Position)
}

// SessionConfig wires a Session. Out, Prompter, Issues and Forum are required.
type SessionConfig struct {
	Out      io.Writer
	Prompter Prompter

	Issues github.IssueCreator
	Owner  string
	Repo   string

	Forum    forum.Client
	ThreadID int

	// Records, when set, receives an IssueRecord per created issue.
	Records output.OutputWriter
	// KeepGoing logs issue creation failures and continues with the next post.
	KeepGoing bool

	Logger  *log.Logger
	Tracker *metadata.Tracker
	Now     func() time.Time
}

// Session is one interactive triage pass over collected posts.
type Session struct {
	cfg SessionConfig
}

// NewSession creates a session, filling unset optional fields with defaults.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "", 0)
	}
	if cfg.Tracker == nil {
		cfg.Tracker = metadata.New()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Session{cfg: cfg}
}

// Run shows each post in order and files the ones the operator confirms.
// An issue creation failure ends the run unless KeepGoing is set.
func (s *Session) Run(ctx context.Context, posts []unread.Post) error {
	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(s.cfg.Out, "User: %s\nMessage: %s\n", post.Username, post.Message)
		ok, err := s.cfg.Prompter.Confirm(ctx, StorePrompt)
		if err != nil {
			return err
		}

		if ok {
			if err := s.fileIssue(ctx, post); err != nil {
				return err
			}
		} else {
			s.cfg.Tracker.RecordSkipped()
		}

		fmt.Fprintf(s.cfg.Out, "\n%s\n\n\n", Separator)
	}
	return nil
}

func (s *Session) fileIssue(ctx context.Context, post unread.Post) error {
	s.cfg.Tracker.IncrementAPICall()
	issue, err := s.cfg.Issues.CreateIssue(ctx, s.cfg.Owner, s.cfg.Repo, github.IssueRequest{
		Title: IssueTitle(post),
		Body:  post.Message,
	})
	if err != nil {
		s.cfg.Tracker.RecordIssueFailed()
		err = fmt.Errorf("failed to create issue for post %d: %w", post.PostID, err)
		if s.cfg.KeepGoing && ctx.Err() == nil {
			s.cfg.Logger.Printf("Error: %v", err)
			return nil
		}
		return err
	}

	s.cfg.Tracker.RecordIssueCreated()
	fmt.Fprintf(s.cfg.Out, issueCreatedFmt, issue.URL)

	if s.cfg.Records != nil {
		rec := output.NewIssueRecord(s.cfg.Tracker.RunID(), post, issue.Number, issue.URL, s.cfg.Now())
		if err := s.cfg.Records.Write(rec); err != nil {
			return fmt.Errorf("failed to record issue %s: %w", issue.URL, err)
		}
	}
	return nil
}

// MarkRead asks whether to mark the thread read and does so on "y". A
// rejected request is logged, not returned.
func (s *Session) MarkRead(ctx context.Context) error {
	ok, err := s.cfg.Prompter.Confirm(ctx, MarkReadPrompt)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	s.cfg.Tracker.IncrementAPICall()
	if err := s.cfg.Forum.MarkRead(ctx, s.cfg.ThreadID, s.cfg.Now()); err != nil {
		if apierror.IsStatus(err) {
			s.cfg.Logger.Println(apierror.StatusLine(err))
			return nil
		}
		return fmt.Errorf("failed to mark thread %d read: %w", s.cfg.ThreadID, err)
	}

	s.cfg.Tracker.RecordMarkedRead()
	fmt.Fprintln(s.cfg.Out, MarkedReadLine)
	return nil
}
