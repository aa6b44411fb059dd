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
	"fmt"

	"github.com/walteh/imgbatch/pkg/operation"
)

// 🎨 Message templates
const (
	EmojiProgress = "⏳"
	EmojiComplete = "✅"
	MsgProgress   = "%s Progress: %d/%d (%.0f%%)"
)

// Formatter defines how outcomes and progress should be formatted
type Formatter interface {
	// FormatOutcome formats the result of one operation on one file
	FormatOutcome(outcome operation.Outcome) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatOutcome formats an outcome with emojis
func (f *DefaultFormatter) FormatOutcome(o operation.Outcome) string {
	switch {
	case !o.OK():
		return fmt.Sprintf("❌ Failed %s %s: %s", o.Op, o.File, operation.ClassName(o.Err))
	case o.Skipped:
		return fmt.Sprintf("⏭️  Skipped %s %s", o.Op, o.File)
	}

	switch o.Kind() {
	case operation.KindRemove:
		return fmt.Sprintf("🗑️  Removed %s (backup %s)", o.File, o.Backup)
	case operation.KindCopy:
		return fmt.Sprintf("📦 Copied %s -> %s", o.File, o.NewPath)
	default:
		return fmt.Sprintf("🖼️  Rewrote %s (%s)", o.File, o.Op)
	}
}

// FormatProgress formats a progress message with percentage.
// Negative inputs count as zero and the percentage never exceeds 100.
func (f *DefaultFormatter) FormatProgress(current, total int) string {
	current = max(current, 0)
	total = max(total, 0)

	var percentage float64
	if total > 0 {
		percentage = min(float64(current)/float64(total)*100, 100)
	}

	if current >= total {
		return fmt.Sprintf(MsgProgress, EmojiComplete, current, total, percentage)
	}
	return fmt.Sprintf(MsgProgress, EmojiProgress, current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
