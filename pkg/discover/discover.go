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

package discover

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidRoot is returned when the discovery root is missing or not a directory
var ErrInvalidRoot = errors.Base("invalid discovery root")

// 🖼️ imageExtensions lists recognized extensions (lowercase, with leading dot)
var imageExtensions = map[string]bool{
	".jpg": true,
	".png": true,
}

// 🔧 Options controls a discovery walk
type Options struct {
	// Recursive descends into subdirectories when set
	Recursive bool
	// Exclude holds doublestar patterns matched against root-relative slash paths
	Exclude []string
}

// IsImage reports whether name has a recognized image extension
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// ✅ ValidateRoot checks that root exists and is a directory
func ValidateRoot(fs afero.Fs, root string) error {
	info, err := fs.Stat(root)
	if err != nil {
		return errors.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}
	return nil
}

// 🔍 Discover returns the image files under root.
//
// Each directory listing is sorted by name, so an unchanged tree always yields
// the same sequence. Recursive walks use an explicit stack and visit a
// directory's files before descending into its subdirectories.
func Discover(ctx context.Context, fs afero.Fs, root string, opts Options) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if err := ValidateRoot(fs, root); err != nil {
		return nil, err
	}

	var files []string
	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := afero.ReadDir(fs, dir)
		if err != nil {
			if dir == root {
				return nil, errors.Errorf("reading directory %s: %w", dir, err)
			}
			logger.Warn().Err(err).Str("dir", dir).Msg("skipping unreadable directory")
			continue
		}

		var subdirs []string
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())

			excluded, err := isExcluded(root, path, opts.Exclude)
			if err != nil {
				return nil, err
			}
			if excluded {
				logger.Debug().Str("path", path).Msg("excluded by pattern")
				continue
			}

			switch {
			case entry.IsDir():
				if opts.Recursive {
					subdirs = append(subdirs, path)
				}
			case entry.Mode().IsRegular() && IsImage(entry.Name()):
				files = append(files, path)
			}
		}

		// push in reverse so subdirectories pop in name order
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	logger.Debug().Str("root", root).Bool("recursive", opts.Recursive).Int("files", len(files)).Msg("discovery complete")

	return files, nil
}

// 🙈 isExcluded matches path, relative to root, against the exclude patterns
func isExcluded(root, path string, patterns []string) (bool, error) {
	if len(patterns) == 0 {
		return false, nil
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false, errors.Errorf("relativizing %s: %w", path, err)
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, errors.Errorf("matching pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
