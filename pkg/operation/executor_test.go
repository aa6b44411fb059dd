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

package operation_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/imgbatch/pkg/imaging"
	"github.com/walteh/imgbatch/pkg/operation"
)

// 🧪 testImage returns an opaque w×h image with distinct pixel values
func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 25), G: uint8(y * 25), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

// 🧪 writePNG writes a w×h test PNG at path
func writePNG(t *testing.T, fs afero.Fs, path string, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, buf.Bytes(), 0o644))
	return buf.Bytes()
}

// 🧪 readPNG decodes the PNG at path
func readPNG(t *testing.T, fs afero.Fs, path string) image.Image {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

// 🧪 createTestEnv creates an executor over an in-memory filesystem
func createTestEnv(t *testing.T) (context.Context, afero.Fs, *operation.Executor) {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	fs := afero.NewMemMapFs()
	exec, err := operation.NewExecutor(operation.ExecutorOptions{
		Fs:        fs,
		Codec:     imaging.NewStdCodec(0),
		BackupDir: "/backups",
	})
	require.NoError(t, err)

	return ctx, fs, exec
}

func TestNewExecutorRequiresOptions(t *testing.T) {
	tests := []struct {
		name          string
		opts          operation.ExecutorOptions
		expectedError string
	}{
		{
			name:          "missing_fs",
			opts:          operation.ExecutorOptions{Codec: imaging.NewStdCodec(0), BackupDir: "/b"},
			expectedError: "filesystem is required",
		},
		{
			name:          "missing_codec",
			opts:          operation.ExecutorOptions{Fs: afero.NewMemMapFs(), BackupDir: "/b"},
			expectedError: "codec is required",
		},
		{
			name:          "missing_backup_dir",
			opts:          operation.ExecutorOptions{Fs: afero.NewMemMapFs(), Codec: imaging.NewStdCodec(0)},
			expectedError: "backup directory is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := operation.NewExecutor(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestExecuteStretch(t *testing.T) {
	tests := []struct {
		name         string
		width        int
		height       int
		factor       float64
		wantW, wantH int
	}{
		{name: "double", width: 10, height: 10, factor: 2.0, wantW: 20, wantH: 20},
		{name: "identity", width: 9, height: 4, factor: 1.0, wantW: 9, wantH: 4},
		{name: "shrink_rounds", width: 5, height: 7, factor: 0.5, wantW: 3, wantH: 4},
		{name: "tiny_clamps_to_one", width: 3, height: 3, factor: 0.1, wantW: 1, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, fs, exec := createTestEnv(t)
			writePNG(t, fs, "/img/a.png", tt.width, tt.height)

			out := exec.Execute(ctx, operation.Stretch{Factor: tt.factor}, "/img/a.png")
			require.NoError(t, out.Err)
			assert.True(t, out.OK())

			img := readPNG(t, fs, "/img/a.png")
			assert.Equal(t, tt.wantW, img.Bounds().Dx(), "width should match")
			assert.Equal(t, tt.wantH, img.Bounds().Dy(), "height should match")
		})
	}
}

func TestExecuteStretchJPEG(t *testing.T) {
	ctx, fs, exec := createTestEnv(t)

	data, err := imaging.NewStdCodec(0).Encode(testImage(8, 6), ".jpg")
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/img/photo.jpg", data, 0o644))

	out := exec.Execute(ctx, operation.Stretch{Factor: 1.5}, "/img/photo.jpg")
	require.NoError(t, out.Err)

	written, err := afero.ReadFile(fs, "/img/photo.jpg")
	require.NoError(t, err)
	img, err := imaging.NewStdCodec(0).Decode(written, ".jpg")
	require.NoError(t, err, "file should still be a jpeg")
	assert.Equal(t, image.Rect(0, 0, 12, 9), img.Bounds())
}

func TestExecuteNegateTwiceRestoresPixels(t *testing.T) {
	ctx, fs, exec := createTestEnv(t)
	writePNG(t, fs, "/img/a.png", 6, 5)
	original := readPNG(t, fs, "/img/a.png")

	out := exec.Execute(ctx, operation.Negate{}, "/img/a.png")
	require.NoError(t, out.Err)

	negated := readPNG(t, fs, "/img/a.png")
	r0, _, _, _ := original.At(3, 2).RGBA()
	r1, _, _, _ := negated.At(3, 2).RGBA()
	assert.Equal(t, 255-uint8(r0>>8), uint8(r1>>8), "red channel should be inverted")

	out = exec.Execute(ctx, operation.Negate{}, "/img/a.png")
	require.NoError(t, out.Err)

	restored := readPNG(t, fs, "/img/a.png")
	require.Equal(t, original.Bounds(), restored.Bounds())
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			assert.Equal(t,
				color.NRGBAModel.Convert(original.At(x, y)),
				color.NRGBAModel.Convert(restored.At(x, y)),
				"pixel %d,%d should be restored", x, y)
		}
	}
}

func TestExecuteNegateTwiceRestores16BitPixels(t *testing.T) {
	ctx, fs, exec := createTestEnv(t)

	src := image.NewNRGBA64(image.Rect(0, 0, 2, 1))
	src.SetNRGBA64(0, 0, color.NRGBA64{R: 0x1234, G: 0x5678, B: 0x9abc, A: 0xffff})
	src.SetNRGBA64(1, 0, color.NRGBA64{R: 0x0102, G: 0xfeff, B: 0x8001, A: 0x8000})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	require.NoError(t, fs.MkdirAll("/img", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/img/deep.png", buf.Bytes(), 0o644))

	out := exec.Execute(ctx, operation.Negate{}, "/img/deep.png")
	require.NoError(t, out.Err)

	negated := readPNG(t, fs, "/img/deep.png")
	assert.Equal(t,
		color.NRGBA64{R: 0xedcb, G: 0xa987, B: 0x6543, A: 0xffff},
		color.NRGBA64Model.Convert(negated.At(0, 0)),
		"channels should be inverted at 16 bits")

	out = exec.Execute(ctx, operation.Negate{}, "/img/deep.png")
	require.NoError(t, out.Err)

	restored := readPNG(t, fs, "/img/deep.png")
	for x := 0; x < 2; x++ {
		assert.Equal(t,
			src.NRGBA64At(x, 0),
			color.NRGBA64Model.Convert(restored.At(x, 0)),
			"pixel %d should be restored exactly", x)
	}
}

func TestExecuteDecodeError(t *testing.T) {
	ctx, fs, exec := createTestEnv(t)
	garbage := []byte("this is not an image")
	require.NoError(t, afero.WriteFile(fs, "/img/bad.png", garbage, 0o644))

	for _, op := range []operation.Operation{operation.Negate{}, operation.Stretch{Factor: 2}} {
		out := exec.Execute(ctx, op, "/img/bad.png")
		require.Error(t, out.Err)
		assert.ErrorIs(t, out.Err, operation.ErrDecode)

		var execErr *operation.ExecError
		require.ErrorAs(t, out.Err, &execErr)
		assert.Equal(t, "/img/bad.png", execErr.File)
		assert.Equal(t, op.Kind(), execErr.Kind)
	}

	content, err := afero.ReadFile(fs, "/img/bad.png")
	require.NoError(t, err)
	assert.Equal(t, garbage, content, "failed transform should leave the file untouched")
}

func TestExecuteRemove(t *testing.T) {
	ctx, fs, exec := createTestEnv(t)
	original := writePNG(t, fs, "/img/a.png", 4, 4)

	out := exec.Execute(ctx, operation.Remove{}, "/img/a.png")
	require.NoError(t, out.Err)
	assert.False(t, out.Skipped)
	require.NotEmpty(t, out.Backup)
	assert.Equal(t, "/backups", filepath.Dir(out.Backup))
	assert.Contains(t, filepath.Base(out.Backup), "a.png")

	exists, err := afero.Exists(fs, "/img/a.png")
	require.NoError(t, err)
	assert.False(t, exists, "original should be deleted")

	backup, err := afero.ReadFile(fs, out.Backup)
	require.NoError(t, err)
	assert.Equal(t, original, backup, "backup should hold the pre-deletion bytes")

	again := exec.Execute(ctx, operation.Remove{}, "/img/a.png")
	require.NoError(t, again.Err, "removing an absent file should succeed")
	assert.True(t, again.Skipped)
	assert.Empty(t, again.Backup)
}

func TestExecuteRemoveBackupsAreUnique(t *testing.T) {
	ctx, fs, exec := createTestEnv(t)

	writePNG(t, fs, "/one/a.png", 2, 2)
	writePNG(t, fs, "/two/a.png", 2, 2)

	first := exec.Execute(ctx, operation.Remove{}, "/one/a.png")
	second := exec.Execute(ctx, operation.Remove{}, "/two/a.png")
	require.NoError(t, first.Err)
	require.NoError(t, second.Err)
	assert.NotEqual(t, first.Backup, second.Backup)
}

func TestExecuteRemoveKeepsFileWhenBackupFails(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())
	fs := afero.NewMemMapFs()

	exec, err := operation.NewExecutor(operation.ExecutorOptions{
		Fs:        fs,
		Codec:     imaging.NewStdCodec(0),
		BackupDir: "/backups",
		NewID:     func() string { return "fixed" },
	})
	require.NoError(t, err)

	writePNG(t, fs, "/one/a.png", 2, 2)
	writePNG(t, fs, "/two/a.png", 2, 2)

	first := exec.Execute(ctx, operation.Remove{}, "/one/a.png")
	require.NoError(t, first.Err)

	// same id and name: the backup name is taken, so nothing may be deleted
	second := exec.Execute(ctx, operation.Remove{}, "/two/a.png")
	require.Error(t, second.Err)
	assert.ErrorIs(t, second.Err, operation.ErrIO)
	assert.Contains(t, second.Err.Error(), "creating backup")

	exists, err := afero.Exists(fs, "/two/a.png")
	require.NoError(t, err)
	assert.True(t, exists, "file must survive a failed backup")
}

func TestExecuteRemoveBackupDirUnusable(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())
	root := t.TempDir()

	blocker := filepath.Join(root, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	exec, err := operation.NewExecutor(operation.ExecutorOptions{
		Fs:        afero.NewOsFs(),
		Codec:     imaging.NewStdCodec(0),
		BackupDir: filepath.Join(blocker, "backups"),
	})
	require.NoError(t, err)

	target := filepath.Join(root, "a.png")
	require.NoError(t, os.WriteFile(target, []byte("png bytes"), 0o644))

	out := exec.Execute(ctx, operation.Remove{}, target)
	require.ErrorIs(t, out.Err, operation.ErrIO)
	assert.FileExists(t, target)
}

func TestExecuteCopy(t *testing.T) {
	ctx, fs, exec := createTestEnv(t)
	original := writePNG(t, fs, "/img/a.png", 3, 3)

	out := exec.Execute(ctx, operation.Copy{TargetDir: "/out/nested/deeper"}, "/img/a.png")
	require.NoError(t, out.Err)
	assert.Equal(t, "/out/nested/deeper/a.png", out.NewPath)

	copied, err := afero.ReadFile(fs, out.NewPath)
	require.NoError(t, err)
	assert.Equal(t, original, copied, "copy should be byte-identical")

	// change the source and copy again: the destination is replaced
	updated := writePNG(t, fs, "/img/a.png", 5, 5)
	out = exec.Execute(ctx, operation.Copy{TargetDir: "/out/nested/deeper"}, "/img/a.png")
	require.NoError(t, out.Err)

	copied, err = afero.ReadFile(fs, out.NewPath)
	require.NoError(t, err)
	assert.Equal(t, updated, copied, "second copy should overwrite")

	entries, err := afero.ReadDir(fs, "/out/nested/deeper")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should be left behind")
}

func TestExecuteCopyTargetIsFile(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())
	root := t.TempDir()

	exec, err := operation.NewExecutor(operation.ExecutorOptions{
		Fs:        afero.NewOsFs(),
		Codec:     imaging.NewStdCodec(0),
		BackupDir: filepath.Join(root, "backups"),
	})
	require.NoError(t, err)

	src := filepath.Join(root, "a.png")
	require.NoError(t, os.WriteFile(src, []byte("png bytes"), 0o644))
	blocker := filepath.Join(root, "occupied")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	out := exec.Execute(ctx, operation.Copy{TargetDir: filepath.Join(blocker, "sub")}, src)
	require.ErrorIs(t, out.Err, operation.ErrIO)
	assert.Contains(t, out.Err.Error(), "creating target directory")
}

func TestExecuteMissingFile(t *testing.T) {
	ops := []operation.Operation{
		operation.Stretch{Factor: 2},
		operation.Negate{},
		operation.Copy{TargetDir: "/out"},
	}

	for _, op := range ops {
		t.Run(op.String(), func(t *testing.T) {
			ctx, fs, exec := createTestEnv(t)

			out := exec.Execute(ctx, op, "/img/gone.png")
			require.Error(t, out.Err)
			assert.ErrorIs(t, out.Err, operation.ErrNotFound)
			assert.Equal(t, "/img/gone.png", out.File)
			assert.Equal(t, op, out.Op)

			exists, err := afero.DirExists(fs, "/out")
			require.NoError(t, err)
			assert.False(t, exists, "nothing should be created for a missing file")
		})
	}
}

func TestExecuteDirectoryIsNotAFile(t *testing.T) {
	ctx, fs, exec := createTestEnv(t)
	require.NoError(t, fs.MkdirAll("/img/folder.png", 0o755))

	out := exec.Execute(ctx, operation.Negate{}, "/img/folder.png")
	require.ErrorIs(t, out.Err, operation.ErrIO)
	assert.Contains(t, out.Err.Error(), "not a regular file")
}
