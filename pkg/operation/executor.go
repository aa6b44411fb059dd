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
	"image"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/imgbatch/pkg/imaging"
	"gitlab.com/tozd/go/errors"
)

// 🔧 ExecutorOptions configures an Executor
type ExecutorOptions struct {
	// Fs is the filesystem operations act on
	Fs afero.Fs
	// Codec decodes and encodes image files
	Codec imaging.Codec
	// BackupDir receives the copies taken before Remove deletes a file
	BackupDir string
	// NewID generates unique name fragments; defaults to random UUIDs
	NewID func() string
}

// ⚙️ Executor applies one operation to one file
type Executor struct {
	fs        afero.Fs
	codec     imaging.Codec
	backupDir string
	newID     func() string
}

// 🏭 NewExecutor creates an executor with the given options
func NewExecutor(opts ExecutorOptions) (*Executor, error) {
	if opts.Fs == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.Codec == nil {
		return nil, errors.Errorf("codec is required")
	}
	if opts.BackupDir == "" {
		return nil, errors.Errorf("backup directory is required")
	}
	newID := opts.NewID
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	return &Executor{
		fs:        opts.Fs,
		codec:     opts.Codec,
		backupDir: opts.BackupDir,
		newID:     newID,
	}, nil
}

// 🏃 Execute applies op to file and reports the result.
//
// The file is looked up again on every call: an earlier operation in the same
// batch may have removed it. A missing file fails Stretch, Negate and Copy
// with ErrNotFound and turns Remove into a no-op.
func (e *Executor) Execute(ctx context.Context, op Operation, file string) Outcome {
	logger := zerolog.Ctx(ctx).With().Str("file", file).Str("op", op.String()).Logger()
	out := Outcome{File: file, Op: op}

	info, err := e.fs.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if _, ok := op.(Remove); ok {
			logger.Debug().Msg("file already absent, nothing to remove")
			out.Skipped = true
			return out
		}
		out.Err = newExecError(file, op.Kind(), ErrNotFound, nil)
		return out
	case err != nil:
		out.Err = newExecError(file, op.Kind(), ErrIO, errors.Errorf("checking file: %w", err))
		return out
	case !info.Mode().IsRegular():
		out.Err = newExecError(file, op.Kind(), ErrIO, errors.Errorf("not a regular file"))
		return out
	}

	switch o := op.(type) {
	case Stretch:
		out.Err = e.transform(ctx, file, info, o.Kind(), func(img image.Image) image.Image {
			return imaging.Resize(img, o.Factor)
		})
	case Negate:
		out.Err = e.transform(ctx, file, info, o.Kind(), func(img image.Image) image.Image {
			return imaging.Negate(img)
		})
	case Remove:
		out.Backup, out.Err = e.remove(ctx, file)
	case Copy:
		out.NewPath, out.Err = e.copy(ctx, file, info, o)
	default:
		out.Err = errors.Errorf("unsupported operation %T", op)
	}

	if out.Err != nil {
		logger.Debug().Err(out.Err).Msg("operation failed")
	} else {
		logger.Debug().Msg("operation applied")
	}
	return out
}

// 🎨 transform decodes file, applies fn and overwrites the file in place
func (e *Executor) transform(ctx context.Context, file string, info os.FileInfo, kind Kind, fn func(image.Image) image.Image) error {
	data, err := afero.ReadFile(e.fs, file)
	if err != nil {
		return newExecError(file, kind, ioClass(err), errors.Errorf("reading file: %w", err))
	}

	ext := filepath.Ext(file)
	img, err := e.codec.Decode(data, ext)
	if err != nil {
		return newExecError(file, kind, ErrDecode, err)
	}

	result := fn(img)

	encoded, err := e.codec.Encode(result, ext)
	if err != nil {
		return newExecError(file, kind, ErrIO, errors.Errorf("encoding image: %w", err))
	}

	if err := e.writeFileAtomic(file, encoded, info.Mode().Perm()); err != nil {
		return newExecError(file, kind, ErrIO, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", file).
		Int("width", result.Bounds().Dx()).
		Int("height", result.Bounds().Dy()).
		Msg("image rewritten")

	return nil
}

// ioClass maps a filesystem error to ErrNotFound or ErrIO
func ioClass(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return ErrIO
}
