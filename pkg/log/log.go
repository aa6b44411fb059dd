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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/imgbatch/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	opWidth     = 15 // Width for operation
	statusWidth = 15 // Width for status text
)

// 📦 BatchInfo describes a batch for the header line
type BatchInfo struct {
	Source     string   // Source directory
	Recursive  bool     // Whether subdirectories are walked
	Files      int      // Number of discovered files
	Operations []string // Operation descriptions, in order
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog     zerolog.Logger
	console  io.Writer
	mu       sync.Mutex
	current  *BatchInfo
	reported int
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 statusText returns the short status column for an outcome
func statusText(o operation.Outcome) string {
	switch {
	case !o.OK():
		return strings.ReplaceAll(operation.ClassName(o.Err), "_", " ")
	case o.Skipped:
		return "absent"
	}
	switch o.Kind() {
	case operation.KindRemove:
		return "removed"
	case operation.KindCopy:
		return "copied"
	default:
		return "rewritten"
	}
}

// 📝 detailText returns the trailing detail for an outcome, if any
func detailText(o operation.Outcome) string {
	var execErr *operation.ExecError
	switch {
	case !o.OK():
		if errors.As(o.Err, &execErr) {
			if execErr.Err == nil {
				return ""
			}
			return execErr.Err.Error()
		}
		return o.Err.Error()
	case o.Backup != "":
		return "backup " + o.Backup
	case o.NewPath != "":
		return "-> " + o.NewPath
	}
	return ""
}

// 📝 formatOutcome formats an outcome for display
func (l *Logger) formatOutcome(o operation.Outcome) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case !o.OK():
		symbol = '✗'
		symbolColor = color.FgRed
	case o.Skipped:
		symbol = '-'
		symbolColor = color.FgYellow
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	var opColor color.Attribute
	switch o.Kind() {
	case operation.KindRemove:
		opColor = color.FgMagenta
	case operation.KindCopy:
		opColor = color.FgBlue
	default:
		opColor = color.FgCyan
	}

	op := ""
	if o.Op != nil {
		op = o.Op.String()
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, o.File),
		color.New(opColor).Sprint(fmt.Sprintf("%-*s", opWidth, op)),
		fmt.Sprintf("%-*s", statusWidth, statusText(o)))

	if detail := detailText(o); detail != "" {
		line += " " + color.New(color.Faint).Sprint(detail)
	}
	return line
}

// 📝 LogOutcome logs the outcome of one operation on one file
func (l *Logger) LogOutcome(ctx context.Context, o operation.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.reported++

	// Format and print
	fmt.Fprintln(l.console, l.formatOutcome(o))

	// Log to zerolog
	event := l.zlog.Debug()
	if !o.OK() {
		event = l.zlog.Warn().Err(o.Err).Str("class", operation.ClassName(o.Err))
	}
	event.
		Str("file", o.File).
		Str("op", string(o.Kind())).
		Bool("ok", o.OK()).
		Bool("skipped", o.Skipped).
		Str("new_path", o.NewPath).
		Str("backup", o.Backup).
		Msg("operation outcome")
}

// Report implements operation.Reporter
func (l *Logger) Report(ctx context.Context, o operation.Outcome) {
	l.LogOutcome(ctx, o)
}

// 📝 StartBatch prints the batch header
func (l *Logger) StartBatch(ctx context.Context, info BatchInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &info
	l.reported = 0

	mode := "flat"
	if info.Recursive {
		mode = "recursive"
	}

	fmt.Fprintf(l.console, "[processing %s]\n",
		color.New(color.FgCyan).Sprint(info.Source))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(fmt.Sprintf("%d files", info.Files)),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(mode+": "+strings.Join(info.Operations, " → ")))

	l.zlog.Info().
		Str("source", info.Source).
		Bool("recursive", info.Recursive).
		Int("files", info.Files).
		Strs("operations", info.Operations).
		Msg("starting batch")
}

// 📝 EndBatch ends the current batch
func (l *Logger) EndBatch(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return
	}

	l.zlog.Info().
		Str("source", l.current.Source).
		Int("outcomes", l.reported).
		Msg("batch complete")

	l.current = nil
	l.reported = 0
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("imgbatch")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Print writes text to the console as is
func (l *Logger) Print(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, strings.TrimRight(text, "\n"))
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

var _ operation.Reporter = (*Logger)(nil)
