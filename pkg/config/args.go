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

package config

import (
	"strconv"
	"strings"

	"github.com/walteh/imgbatch/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// legacy slash tokens and the operation kind they stand for
var slashTokens = map[string]operation.Kind{
	"/s": operation.KindStretch,
	"/n": operation.KindNegate,
	"/r": operation.KindRemove,
	"/c": operation.KindCopy,
}

// 🔍 ParseArgs converts command-line tokens into a Config.
//
// The first token is the source directory. The rest are operations, applied
// in the order given:
//
//	stretch=F | negate | remove | copy=DIR
//
// The slash forms "/s F", "/n", "/r", "/c DIR" and the "/sub" recursion switch
// are accepted as well.
func ParseArgs(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, errors.Errorf("source directory is required")
	}

	cfg := &Config{Source: args[0]}

	for i := 1; i < len(args); i++ {
		tok := args[i]

		if strings.EqualFold(tok, "/sub") {
			cfg.Recursive = true
			continue
		}

		if kind, ok := slashTokens[strings.ToLower(tok)]; ok {
			spec := OperationSpec{Kind: string(kind)}
			switch kind {
			case operation.KindStretch, operation.KindCopy:
				i++
				if i >= len(args) {
					return nil, errors.Errorf("%s requires a value", tok)
				}
				if err := spec.setParam(args[i]); err != nil {
					return nil, errors.Errorf("argument %d (%s): %w", i, tok, err)
				}
			}
			cfg.Operations = append(cfg.Operations, spec)
			continue
		}

		name, param, _ := strings.Cut(tok, "=")
		if _, err := operation.Parse(name, param); err != nil {
			return nil, errors.Errorf("argument %d (%s): %w", i, tok, err)
		}
		spec := OperationSpec{Kind: strings.ToLower(strings.TrimSpace(name))}
		if err := spec.setParam(param); err != nil {
			return nil, errors.Errorf("argument %d (%s): %w", i, tok, err)
		}
		cfg.Operations = append(cfg.Operations, spec)
	}

	return cfg, nil
}

// setParam stores the raw token parameter in the field the kind uses
func (s *OperationSpec) setParam(param string) error {
	switch operation.Kind(s.Kind) {
	case operation.KindStretch:
		factor, err := strconv.ParseFloat(strings.TrimSpace(param), 64)
		if err != nil {
			return errors.Errorf("parsing stretch factor %q: %w", param, err)
		}
		s.Factor = &factor
	case operation.KindCopy:
		s.Target = &param
	}
	return nil
}
