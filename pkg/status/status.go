// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"strconv"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/imgbatch/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// 📊 Counts holds per-kind outcome counters
type Counts struct {
	Succeeded int
	Skipped   int
	Failed    int
}

// Total returns the number of outcomes counted
func (c Counts) Total() int {
	return c.Succeeded + c.Skipped + c.Failed
}

// 📋 Summary is a point-in-time copy of a Tally
type Summary struct {
	Files     int
	Expected  int // files × operations
	Attempted int
	Counts
	ByKind  map[operation.Kind]Counts
	ByClass map[string]int // failure class name → count
}

// 🔢 Tally counts outcomes as the runner reports them
type Tally struct {
	formatter Formatter

	mu        sync.Mutex
	files     int
	expected  int
	attempted int
	totals    Counts
	byKind    map[operation.Kind]Counts
	byClass   map[string]int
}

// 🏭 New creates a new tally
func New(formatter Formatter) *Tally {
	if formatter == nil {
		formatter = NewDefaultFormatter()
	}
	return &Tally{
		formatter: formatter,
		byKind:    make(map[operation.Kind]Counts),
		byClass:   make(map[string]int),
	}
}

// Begin implements operation.Progress
func (t *Tally) Begin(ctx context.Context, files, ops int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.files = files
	t.expected = files * ops
	zerolog.Ctx(ctx).Info().
		Int("files", files).
		Int("operations", ops).
		Msg(t.formatter.FormatProgress(t.attempted, t.expected))
}

// Report implements operation.Reporter
func (t *Tally) Report(ctx context.Context, o operation.Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.attempted++
	kind := t.byKind[o.Kind()]
	switch {
	case !o.OK():
		kind.Failed++
		t.totals.Failed++
		t.byClass[operation.ClassName(o.Err)]++
	case o.Skipped:
		kind.Skipped++
		t.totals.Skipped++
	default:
		kind.Succeeded++
		t.totals.Succeeded++
	}
	t.byKind[o.Kind()] = kind

	zerolog.Ctx(ctx).Debug().
		Int("processed", t.attempted).
		Int("total", t.expected).
		Msg(t.formatter.FormatOutcome(o))
}

// End implements operation.Progress
func (t *Tally) End(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	zerolog.Ctx(ctx).Info().
		Int("processed", t.attempted).
		Int("total", t.expected).
		Int("failed", t.totals.Failed).
		Msg(t.formatter.FormatProgress(t.attempted, t.expected))
}

// Summary returns a copy of the current counters
func (t *Tally) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Summary{
		Files:     t.files,
		Expected:  t.expected,
		Attempted: t.attempted,
		Counts:    t.totals,
		ByKind:    make(map[operation.Kind]Counts, len(t.byKind)),
		ByClass:   make(map[string]int, len(t.byClass)),
	}
	for k, v := range t.byKind {
		s.ByKind[k] = v
	}
	for k, v := range t.byClass {
		s.ByClass[k] = v
	}
	return s
}

// 📋 Table renders the summary as a table, one row per operation kind that ran
func (t *Tally) Table() (string, error) {
	s := t.Summary()

	data := pterm.TableData{{"operation", "succeeded", "skipped", "failed"}}
	for _, kind := range operation.Kinds {
		c, ok := s.ByKind[kind]
		if !ok {
			continue
		}
		data = append(data, countsRow(string(kind), c))
	}
	data = append(data, countsRow("total", s.Counts))

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering summary table: %w", err)
	}
	return out, nil
}

func countsRow(label string, c Counts) []string {
	return []string{
		label,
		strconv.Itoa(c.Succeeded),
		strconv.Itoa(c.Skipped),
		strconv.Itoa(c.Failed),
	}
}

var (
	_ operation.Reporter = (*Tally)(nil)
	_ operation.Progress = (*Tally)(nil)
)
