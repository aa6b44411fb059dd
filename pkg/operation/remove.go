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
	"io/fs"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🗑️ remove backs file up and then deletes it.
// Nothing is deleted unless the backup was fully written and synced.
func (e *Executor) remove(ctx context.Context, file string) (string, error) {
	backup, err := e.backupFile(file)
	if err != nil {
		return "", newExecError(file, KindRemove, ioClass(err), errors.Errorf("creating backup: %w", err))
	}

	if err := e.fs.Remove(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return backup, newExecError(file, KindRemove, ErrIO, errors.Errorf("deleting file: %w", err))
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", file).
		Str("backup", backup).
		Msg("file removed")

	return backup, nil
}
