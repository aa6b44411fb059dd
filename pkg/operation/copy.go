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
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 📦 copy writes the current bytes of file to op.TargetDir, replacing any existing copy
func (e *Executor) copy(ctx context.Context, file string, info os.FileInfo, op Copy) (string, error) {
	data, err := afero.ReadFile(e.fs, file)
	if err != nil {
		return "", newExecError(file, KindCopy, ioClass(err), errors.Errorf("reading file: %w", err))
	}

	if err := e.fs.MkdirAll(op.TargetDir, dirMode); err != nil {
		return "", newExecError(file, KindCopy, ErrIO, errors.Errorf("creating target directory: %w", err))
	}

	dst := filepath.Join(op.TargetDir, filepath.Base(file))
	if err := e.writeFileAtomic(dst, data, info.Mode().Perm()); err != nil {
		return "", newExecError(file, KindCopy, ErrIO, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", file).
		Str("destination", dst).
		Int("size", len(data)).
		Msg("file copied")

	return dst, nil
}
