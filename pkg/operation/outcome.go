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

// 📋 Outcome is the result of applying one operation to one file
type Outcome struct {
	File string    // File the operation was applied to
	Op   Operation // Operation that ran

	NewPath string // Destination written by Copy
	Backup  string // Backup taken by Remove
	Skipped bool   // Remove found nothing to delete

	Err error // nil on success, an *ExecError otherwise
}

// OK reports whether the operation succeeded
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Kind returns the kind of the operation that produced the outcome
func (o Outcome) Kind() Kind {
	if o.Op == nil {
		return ""
	}
	return o.Op.Kind()
}

// Failed returns the outcomes that did not succeed
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}
