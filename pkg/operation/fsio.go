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
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

const (
	dirMode    os.FileMode = 0o755
	backupMode os.FileMode = 0o600
)

// 💾 writeFileAtomic writes content next to path and renames it into place.
// A failed write leaves any existing file at path untouched.
func (e *Executor) writeFileAtomic(path string, content []byte, perm os.FileMode) error {
	tempPath := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), e.newID()))

	if err := afero.WriteFile(e.fs, tempPath, content, perm); err != nil {
		_ = e.fs.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := e.fs.Rename(tempPath, path); err != nil {
		_ = e.fs.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// 🛟 backupFile copies file into the backup directory under a name no other file has.
// The copy is synced to storage before it is reported as done.
func (e *Executor) backupFile(file string) (string, error) {
	if err := e.fs.MkdirAll(e.backupDir, dirMode); err != nil {
		return "", errors.Errorf("creating backup directory: %w", err)
	}

	source, err := e.fs.Open(file)
	if err != nil {
		return "", errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	backupPath := filepath.Join(e.backupDir, fmt.Sprintf("backup_%s_%s", e.newID(), filepath.Base(file)))

	// O_EXCL refuses to reuse a name that already exists
	destination, err := e.fs.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, backupMode)
	if err != nil {
		return "", errors.Errorf("creating backup file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		_ = e.fs.Remove(backupPath)
		return "", errors.Errorf("copying to backup: %w", err)
	}

	if err := destination.Sync(); err != nil {
		destination.Close()
		_ = e.fs.Remove(backupPath)
		return "", errors.Errorf("syncing backup: %w", err)
	}

	if err := destination.Close(); err != nil {
		_ = e.fs.Remove(backupPath)
		return "", errors.Errorf("closing backup: %w", err)
	}

	return backupPath, nil
}
