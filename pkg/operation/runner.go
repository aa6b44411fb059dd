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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Applier applies one operation to one file. *Executor is the real one.
type Applier interface {
	Execute(ctx context.Context, op Operation, file string) Outcome
}

// 📣 Reporter receives every outcome as soon as it is produced
type Reporter interface {
	Report(ctx context.Context, outcome Outcome)
}

// ⏳ Progress is implemented by reporters that want to frame the batch
type Progress interface {
	Begin(ctx context.Context, files, ops int)
	End(ctx context.Context)
}

// 🔧 Options configures a Runner
type Options struct {
	// Executor applies each operation
	Executor Applier
	// Reporters are notified of every outcome, in order
	Reporters []Reporter
}

// 🏃 Runner applies an ordered list of operations to a list of files
type Runner struct {
	executor  Applier
	reporters []Reporter
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts Options) (*Runner, error) {
	if opts.Executor == nil {
		return nil, errors.Errorf("executor is required")
	}
	reporters := make([]Reporter, 0, len(opts.Reporters))
	for _, r := range opts.Reporters {
		if r != nil {
			reporters = append(reporters, r)
		}
	}
	return &Runner{
		executor:  opts.Executor,
		reporters: reporters,
	}, nil
}

// 🏃 Run applies every operation, in order, to every file, in order.
//
// A failure is recorded and reported and the run moves on to the next
// operation for the same file. Operations do not pass results to each other:
// each one sees whatever is on disk when it starts.
func (r *Runner) Run(ctx context.Context, files []string, ops []Operation) []Outcome {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("files", len(files)).Int("operations", len(ops)).Msg("starting batch")

	r.begin(ctx, len(files), len(ops))
	defer r.end(ctx)

	outcomes := make([]Outcome, 0, len(files)*len(ops))
	for _, file := range files {
		for _, op := range ops {
			outcome := r.executor.Execute(ctx, op, file)
			outcomes = append(outcomes, outcome)

			if !outcome.OK() {
				logger.Debug().Err(outcome.Err).Str("file", file).Str("op", op.String()).Msg("continuing after failure")
			}

			for _, rep := range r.reporters {
				rep.Report(ctx, outcome)
			}
		}
	}

	logger.Debug().Int("outcomes", len(outcomes)).Int("failed", len(Failed(outcomes))).Msg("batch complete")

	return outcomes
}

func (r *Runner) begin(ctx context.Context, files, ops int) {
	for _, rep := range r.reporters {
		if p, ok := rep.(Progress); ok {
			p.Begin(ctx, files, ops)
		}
	}
}

func (r *Runner) end(ctx context.Context) {
	for _, rep := range r.reporters {
		if p, ok := rep.(Progress); ok {
			p.End(ctx)
		}
	}
}
