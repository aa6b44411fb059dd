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
	"math"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind names an operation variant
type Kind string

const (
	KindStretch Kind = "stretch"
	KindNegate  Kind = "negate"
	KindRemove  Kind = "remove"
	KindCopy    Kind = "copy"
)

// Kinds lists every operation kind in declaration order
var Kinds = []Kind{KindStretch, KindNegate, KindRemove, KindCopy}

// 🎯 Operation is one requested action on a file.
// The set of variants is closed: Stretch, Negate, Remove and Copy.
type Operation interface {
	// Kind returns the variant name
	Kind() Kind
	// String returns a short human description, e.g. "stretch(2)"
	String() string

	sealed()
}

// 📐 Stretch resizes the image in place by Factor
type Stretch struct {
	Factor float64
}

// 🌓 Negate inverts the color channels in place
type Negate struct{}

// 🗑️ Remove deletes the file after taking a backup
type Remove struct{}

// 📦 Copy writes the file into TargetDir under its original name
type Copy struct {
	TargetDir string
}

// 🏭 NewStretch validates factor and returns a Stretch
func NewStretch(factor float64) (Stretch, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return Stretch{}, errors.Errorf("stretch factor must be a positive number, got %v", factor)
	}
	return Stretch{Factor: factor}, nil
}

// 🏭 NewCopy validates targetDir and returns a Copy
func NewCopy(targetDir string) (Copy, error) {
	if strings.TrimSpace(targetDir) == "" {
		return Copy{}, errors.Errorf("copy target directory is required")
	}
	return Copy{TargetDir: targetDir}, nil
}

// 🔍 Parse builds an operation from a kind name and its raw parameter
func Parse(kind string, param string) (Operation, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(kind))) {
	case KindStretch:
		if param == "" {
			return nil, errors.Errorf("stretch requires a factor")
		}
		factor, err := strconv.ParseFloat(strings.TrimSpace(param), 64)
		if err != nil {
			return nil, errors.Errorf("parsing stretch factor %q: %w", param, err)
		}
		s, err := NewStretch(factor)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindNegate:
		if param != "" {
			return nil, errors.Errorf("negate takes no parameter, got %q", param)
		}
		return Negate{}, nil
	case KindRemove:
		if param != "" {
			return nil, errors.Errorf("remove takes no parameter, got %q", param)
		}
		return Remove{}, nil
	case KindCopy:
		c, err := NewCopy(param)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, errors.Errorf("unknown operation %q", kind)
	}
}

func (Stretch) Kind() Kind { return KindStretch }
func (Negate) Kind() Kind  { return KindNegate }
func (Remove) Kind() Kind  { return KindRemove }
func (Copy) Kind() Kind    { return KindCopy }

func (s Stretch) String() string {
	return fmt.Sprintf("%s(%s)", KindStretch, strconv.FormatFloat(s.Factor, 'g', -1, 64))
}
func (Negate) String() string { return string(KindNegate) }
func (Remove) String() string { return string(KindRemove) }
func (c Copy) String() string { return fmt.Sprintf("%s(%s)", KindCopy, c.TargetDir) }

func (Stretch) sealed() {}
func (Negate) sealed()  {}
func (Remove) sealed()  {}
func (Copy) sealed()    {}
