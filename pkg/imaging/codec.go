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

package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// DefaultJPEGQuality is used when a StdCodec is built with quality 0
const DefaultJPEGQuality = 95

// ErrUnsupportedFormat is returned for extensions the codec cannot handle
var ErrUnsupportedFormat = errors.Base("unsupported image format")

// 🎨 Codec turns file bytes into pixel buffers and back
type Codec interface {
	// Decode decodes data, using ext (e.g. ".png") to pick the format
	Decode(data []byte, ext string) (image.Image, error)
	// Encode encodes img in the format implied by ext
	Encode(img image.Image, ext string) ([]byte, error)
}

// 🖼️ StdCodec encodes PNG and JPEG with the standard library codecs
type StdCodec struct {
	JPEGQuality int
}

// 🏭 NewStdCodec creates a codec with the given JPEG quality (1..100, 0 for default)
func NewStdCodec(jpegQuality int) *StdCodec {
	if jpegQuality <= 0 {
		jpegQuality = DefaultJPEGQuality
	}
	if jpegQuality > 100 {
		jpegQuality = 100
	}
	return &StdCodec{JPEGQuality: jpegQuality}
}

// Format returns the canonical format name for an extension, or "" if unknown
func Format(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	default:
		return ""
	}
}

// 📥 Decode implements Codec
func (c *StdCodec) Decode(data []byte, ext string) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	switch Format(ext) {
	case "png":
		img, err = png.Decode(bytes.NewReader(data))
	case "jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	default:
		return nil, errors.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, errors.Errorf("decoding %s: %w", Format(ext), err)
	}
	return img, nil
}

// 📤 Encode implements Codec
func (c *StdCodec) Encode(img image.Image, ext string) ([]byte, error) {
	var buf bytes.Buffer
	switch Format(ext) {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, errors.Errorf("encoding png: %w", err)
		}
	case "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: c.JPEGQuality}); err != nil {
			return nil, errors.Errorf("encoding jpeg: %w", err)
		}
	default:
		return nil, errors.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return buf.Bytes(), nil
}

var _ Codec = (*StdCodec)(nil)
