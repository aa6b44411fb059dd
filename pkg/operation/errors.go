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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// Failure classes for a single (file, operation) pair
var (
	// ErrNotFound means the file was gone when the operation ran
	ErrNotFound = errors.Base("file not found")
	// ErrDecode means the file bytes are not a recognized image
	ErrDecode = errors.Base("decode failed")
	// ErrIO means a read, write, delete or create failed at the filesystem
	ErrIO = errors.Base("i/o failure")
)

// ❌ ExecError is the failure of one operation on one file
type ExecError struct {
	File  string
	Kind  Kind
	Class error // one of ErrNotFound, ErrDecode, ErrIO
	Err   error
}

func (e *ExecError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Kind, e.File, e.Class)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Kind, e.File, e.Class, e.Err)
}

// Unwrap exposes both the class and the cause to errors.Is and errors.As
func (e *ExecError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Class}
	}
	return []error{e.Class, e.Err}
}

// 🏷️ Classify returns the failure class of err, or nil when err is nil or unclassified
func Classify(err error) error {
	for _, class := range []error{ErrNotFound, ErrDecode, ErrIO} {
		if errors.Is(err, class) {
			return class
		}
	}
	return nil
}

// ClassName returns a short name for the failure class of err
func ClassName(err error) string {
	switch Classify(err) {
	case ErrNotFound:
		return "not_found"
	case ErrDecode:
		return "decode"
	case ErrIO:
		return "io"
	default:
		if err == nil {
			return ""
		}
		return "unknown"
	}
}

func newExecError(file string, kind Kind, class error, err error) *ExecError {
	return &ExecError{File: file, Kind: kind, Class: class, Err: err}
}
