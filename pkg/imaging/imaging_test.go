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
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 20), B: uint8((x + y) * 7), A: 255})
		}
	}
	return img
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		factor        float64
		wantW, wantH  int
	}{
		{name: "double", width: 10, height: 10, factor: 2.0, wantW: 20, wantH: 20},
		{name: "identity", width: 7, height: 3, factor: 1.0, wantW: 7, wantH: 3},
		{name: "rounds_half_up", width: 5, height: 3, factor: 0.5, wantW: 3, wantH: 2},
		{name: "rounds_down", width: 10, height: 10, factor: 1.04, wantW: 10, wantH: 10},
		{name: "never_below_one", width: 4, height: 4, factor: 0.01, wantW: 1, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := ScaledSize(tt.width, tt.height, tt.factor)
			assert.Equal(t, tt.wantW, w, "width should match")
			assert.Equal(t, tt.wantH, h, "height should match")
		})
	}
}

func TestResize(t *testing.T) {
	img := gradient(10, 6)

	out := Resize(img, 2.0)
	assert.Equal(t, image.Rect(0, 0, 20, 12), out.Bounds())

	same := Resize(img, 1.0)
	assert.Equal(t, img.Bounds(), same.Bounds(), "factor 1 should keep dimensions")
}

func TestNegate(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 200, B: 0, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 128, B: 1, A: 77})

	out, ok := Negate(img).(*image.NRGBA)
	require.True(t, ok, "8-bit input should stay 8-bit")
	assert.Equal(t, color.NRGBA{R: 245, G: 55, B: 255, A: 255}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 0, G: 127, B: 254, A: 77}, out.NRGBAAt(1, 0), "alpha should be kept")

	twice := Negate(out).(*image.NRGBA)
	assert.Equal(t, img.Pix, twice.Pix, "double negation should restore the pixels")
}

func TestNegate16Bit(t *testing.T) {
	img := image.NewNRGBA64(image.Rect(0, 0, 2, 1))
	img.SetNRGBA64(0, 0, color.NRGBA64{R: 0x1234, G: 0x5678, B: 0x9abc, A: 0xffff})
	img.SetNRGBA64(1, 0, color.NRGBA64{R: 0x0001, G: 0xfffe, B: 0x8000, A: 0x4321})

	out, ok := Negate(img).(*image.NRGBA64)
	require.True(t, ok, "16-bit input should stay 16-bit")
	assert.Equal(t, color.NRGBA64{R: 0xedcb, G: 0xa987, B: 0x6543, A: 0xffff}, out.NRGBA64At(0, 0))
	assert.Equal(t, color.NRGBA64{R: 0xfffe, G: 0x0001, B: 0x7fff, A: 0x4321}, out.NRGBA64At(1, 0), "alpha should be kept")

	twice := Negate(out).(*image.NRGBA64)
	assert.Equal(t, img.Pix, twice.Pix, "double negation should restore the pixels")

	opaque := image.NewRGBA64(image.Rect(0, 0, 1, 1))
	opaque.SetRGBA64(0, 0, color.RGBA64{R: 0x1234, G: 0x5678, B: 0x9abc, A: 0xffff})
	neg, ok := Negate(opaque).(*image.NRGBA64)
	require.True(t, ok, "premultiplied 16-bit input should stay 16-bit")
	assert.Equal(t, color.NRGBA64{R: 0xedcb, G: 0xa987, B: 0x6543, A: 0xffff}, neg.NRGBA64At(0, 0))
}

func TestNegateOffsetBounds(t *testing.T) {
	img := gradient(6, 6).SubImage(image.Rect(2, 2, 5, 4))

	out := Negate(img).(*image.NRGBA)
	require.Equal(t, image.Rect(0, 0, 3, 2), out.Bounds())
	src := img.(*image.NRGBA).NRGBAAt(2, 2)
	assert.Equal(t, 255-src.R, out.NRGBAAt(0, 0).R)
}

func TestStdCodecRoundTrip(t *testing.T) {
	codec := NewStdCodec(0)
	img := gradient(8, 8)

	tests := []struct {
		name string
		ext  string
	}{
		{name: "png", ext: ".png"},
		{name: "jpeg", ext: ".jpg"},
		{name: "upper_case_ext", ext: ".PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := codec.Encode(img, tt.ext)
			require.NoError(t, err)

			decoded, err := codec.Decode(data, tt.ext)
			require.NoError(t, err)
			assert.Equal(t, img.Bounds(), decoded.Bounds())
		})
	}
}

func TestStdCodecErrors(t *testing.T) {
	codec := NewStdCodec(90)

	_, err := codec.Decode([]byte("definitely not a png"), ".png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding png")

	_, err = codec.Decode(nil, ".gif")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = codec.Encode(gradient(1, 1), ".bmp")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNewStdCodecQuality(t *testing.T) {
	assert.Equal(t, DefaultJPEGQuality, NewStdCodec(0).JPEGQuality)
	assert.Equal(t, 100, NewStdCodec(500).JPEGQuality)
	assert.Equal(t, 40, NewStdCodec(40).JPEGQuality)
}
