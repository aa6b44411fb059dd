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
	"math"

	"golang.org/x/image/draw"
)

// 📐 ScaledSize applies a stretch factor to a width and height.
// Each side is rounded to the nearest integer and never drops below 1.
func ScaledSize(width, height int, factor float64) (int, int) {
	scale := func(n int) int {
		v := int(math.Round(float64(n) * factor))
		if v < 1 {
			return 1
		}
		return v
	}
	return scale(width), scale(height)
}

// 🔍 Resize resamples img by factor with a Catmull-Rom kernel
func Resize(img image.Image, factor float64) *image.NRGBA {
	src := img.Bounds()
	w, h := ScaledSize(src.Dx(), src.Dy(), factor)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

// 🌓 Negate inverts the red, green and blue channels of every pixel.
// Alpha is left as is. The result is anchored at the origin.
// 16-bit sources stay 16-bit so double negation restores them exactly.
func Negate(img image.Image) image.Image {
	if is16Bit(img) {
		dst := toNRGBA64(img)
		pix := dst.Pix
		// inverting both bytes of a big-endian uint16 is 65535 - v
		for i := 0; i+7 < len(pix); i += 8 {
			for j := i; j < i+6; j++ {
				pix[j] = 255 - pix[j]
			}
		}
		return dst
	}

	dst := toNRGBA(img)
	pix := dst.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = 255 - pix[i]
		pix[i+1] = 255 - pix[i+1]
		pix[i+2] = 255 - pix[i+2]
	}
	return dst
}

// is16Bit reports whether img carries 16 bits per channel
func is16Bit(img image.Image) bool {
	switch img.ColorModel() {
	case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model:
		return true
	}
	return false
}

// toNRGBA copies img into a fresh origin-anchored NRGBA buffer.
// Non-premultiplied sources are copied byte for byte so no precision is lost.
func toNRGBA(img image.Image) *image.NRGBA {
	src := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))

	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < src.Dy(); y++ {
			row := n.Pix[n.PixOffset(src.Min.X, src.Min.Y+y):]
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], row[:dst.Stride])
		}
		return dst
	}

	for y := 0; y < src.Dy(); y++ {
		for x := 0; x < src.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(src.Min.X+x, src.Min.Y+y)).(color.NRGBA)
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}

// toNRGBA64 is toNRGBA at 16 bits per channel
func toNRGBA64(img image.Image) *image.NRGBA64 {
	src := img.Bounds()
	dst := image.NewNRGBA64(image.Rect(0, 0, src.Dx(), src.Dy()))

	if n, ok := img.(*image.NRGBA64); ok {
		for y := 0; y < src.Dy(); y++ {
			row := n.Pix[n.PixOffset(src.Min.X, src.Min.Y+y):]
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], row[:dst.Stride])
		}
		return dst
	}

	for y := 0; y < src.Dy(); y++ {
		for x := 0; x < src.Dx(); x++ {
			c := color.NRGBA64Model.Convert(img.At(src.Min.X+x, src.Min.Y+y)).(color.NRGBA64)
			dst.SetNRGBA64(x, y, c)
		}
	}
	return dst
}
