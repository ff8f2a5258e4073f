// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"image"
	"image/color"
	"strings"
)

var defaultPalette = [2]color.Color{color.Gray{0xff}, color.Gray{0x00}}

// colours returns the background and foreground colours of c,
// honouring c.Palette and c.Reverse.
func (c *Code) colours() color.Palette {
	pal := defaultPalette
	if c.Palette != nil {
		pal = *c.Palette
	}
	if c.Reverse {
		pal[0], pal[1] = pal[1], pal[0]
	}
	return color.Palette{pal[0], pal[1]}
}

// Image returns an Image displaying the code, c.Scale image pixels
// per QR pixel with a quiet zone of c.Border QR pixels on each side.
// Image returns nil if c cannot be rendered.
func (c *Code) Image() image.Image {
	pix, err := c.pixels()
	if err != nil {
		return nil
	}
	return &codeImage{c, c.colours(), pix}
}

// codeImage implements image.Image
type codeImage struct {
	*Code
	pal color.Palette
	pix int
}

func (c *codeImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.pix, c.pix)
}

func (c *codeImage) At(x, y int) color.Color {
	return c.pal[c.ColorIndexAt(x, y)]
}

// ColorIndexAt returns the palette index of the pixel at (x, y):
// 1 for black, 0 for white.
func (c *codeImage) ColorIndexAt(x, y int) uint8 {
	if x < 0 || y < 0 {
		return 0
	}
	if c.Black(x/c.Scale-c.Border, y/c.Scale-c.Border) {
		return 1
	}
	return 0
}

func (c *codeImage) ColorModel() color.Model {
	return c.pal
}

// Half block characters indexed by upper | lower<<1.
var halfBlocks = [4]string{" ", "▀", "▄", "█"}

// String returns the code as UTF-8 text, two QR pixels per character
// vertically, with a quiet zone of c.Border pixels.  Black pixels are
// drawn with block characters unless c.Reverse is set, which suits
// terminals with light text on a dark background.
func (c *Code) String() string {
	bord := max(c.Border, 0)
	pix := c.Size + bord*2
	var b strings.Builder
	b.Grow((pix*len("█") + 1) * (pix + 1) / 2)
	for y := -bord; y < c.Size+bord; y += 2 {
		for x := -bord; x < c.Size+bord; x++ {
			up, lo := c.Black(x, y), c.Black(x, y+1)
			if y+1 >= c.Size+bord {
				lo = c.Reverse // past the last row
			}
			i := 0
			if up != c.Reverse {
				i |= 1
			}
			if lo != c.Reverse {
				i |= 2
			}
			b.WriteString(halfBlocks[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
