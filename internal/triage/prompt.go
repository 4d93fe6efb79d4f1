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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/huh"
)

// Prompter asks the operator a yes/no question. Confirm returns ctx.Err()
// when ctx is done before an answer arrives.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

type lineResult struct {
	line string
	err  error
}

// lineReader reads lines from in on a background goroutine so a pending
// read can be abandoned when a context ends. A line read while nobody is
// waiting is kept for the next caller.
type lineReader struct {
	in    io.Reader
	once  sync.Once
	lines chan lineResult
}

func newLineReader(in io.Reader) *lineReader {
	return &lineReader{in: in, lines: make(chan lineResult)}
}

func (r *lineReader) start() {
	go func() {
		defer close(r.lines)
		br := bufio.NewReader(r.in)
		for {
			line, err := br.ReadString('\n')
			r.lines <- lineResult{line: line, err: err}
			if err != nil {
				return
			}
		}
	}()
}

// next returns the next line. After the input is exhausted it keeps
// returning io.EOF.
func (r *lineReader) next(ctx context.Context) (string, error) {
	r.once.Do(r.start)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}

// LinePrompter prints the question on its own line and reads one line of
// input as the answer.
type LinePrompter struct {
	lines *lineReader
	out   io.Writer
}

// NewLinePrompter creates a prompter reading answers from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{lines: newLineReader(in), out: out}
}

// Confirm implements Prompter.
func (p *LinePrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprintln(p.out, question); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.lines.next(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	return IsYes(line), nil
}

// IsYes reports whether answer is an affirmative reply.
func IsYes(answer string) bool {
	return strings.TrimSpace(answer) == "y"
}

// FormPrompter asks through a terminal confirm form.
type FormPrompter struct {
	in         io.Reader
	lines      *lineReader
	out        io.Writer
	accessible bool
}

// NewFormPrompter creates a form-based prompter. Accessible mode renders
// plain prompts instead of the interactive widget, which suits screen
// readers and dumb terminals.
func NewFormPrompter(in io.Reader, out io.Writer, accessible bool) *FormPrompter {
	return &FormPrompter{in: in, lines: newLineReader(in), out: out, accessible: accessible}
}

// Confirm implements Prompter.
func (p *FormPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithOutput(p.out).WithAccessible(p.accessible)

	// Accessible forms scan their input with a fresh buffered scanner on
	// every run, so each run only sees the lines it asks for.
	if p.accessible {
		form = form.WithInput(&lineFeed{ctx: ctx, lines: p.lines})
	} else {
		form = form.WithInput(p.in)
	}

	err := form.RunWithContext(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		return false, fmt.Errorf("prompt cancelled: %w", err)
	}
	return confirmed, nil
}

// lineFeed is an io.Reader that hands out one line of a lineReader at a
// time and pulls the next line only when the current one is used up.
type lineFeed struct {
	ctx   context.Context
	lines *lineReader
	buf   strings.Reader
}

func (f *lineFeed) Read(b []byte) (int, error) {
	if f.buf.Len() == 0 {
		line, err := f.lines.next(f.ctx)
		if line == "" {
			if err == nil {
				err = io.EOF
			}
			return 0, err
		}
		f.buf.Reset(line)
	}
	return f.buf.Read(b)
}

var (
	_ Prompter = (*LinePrompter)(nil)
	_ Prompter = (*FormPrompter)(nil)
)
