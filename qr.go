// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes short strings, such as ticket identifiers, as QR
codes.

Text is stored in a single byte mode segment in a QR code of version 1
to 6, the smallest that fits at the requested error correction level.
Text that does not fit into a version 6 code is rejected with an error
wrapping ErrTooLong; it is never truncated.

	c, err := qr.Generate("a1b2c3d4-e5f6-7890-abcd-ef1234567890")
	if err != nil {
		return err
	}
	return c.EncodePNG(w)
*/
package qr // import "github.com/Shimizu-Technology/HafaPass-sub001"

import (
	"errors"
	"image/color"

	"github.com/Shimizu-Technology/HafaPass-sub001/coding"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	return coding.Level(l).String()
}

// Errors returned by Encode and the rendering methods of Code.
// Errors from the coding package, such as coding.ErrTooLong and
// coding.ErrLevel, are returned unchanged or wrapped.
var (
	ErrArgs       = errors.New("qr: invalid arguments")
	ErrLargeImage = errors.New("qr: image too large")

	ErrTooLong = coding.ErrTooLong
	ErrLevel   = coding.ErrLevel
)

// Default rendering parameters of a Code returned by Encode.
const (
	DefaultScale  = 8
	DefaultBorder = 4
)

// DefaultLevel is the error correction level used by Generate and
// NewEncoder.
const DefaultLevel = M

// An Encoder encodes text as a QR code.
// Use NewEncoder for an Encoder with the default settings.  The zero
// value is not the default: it encodes at level L, the lowest.
type Encoder struct {
	Level Level // error correction level

	// If Latin1 is set, the text is converted from UTF-8 to
	// ISO 8859-1 before encoding.  Runes above U+00FF cause a
	// coding.SegmentError.
	Latin1 bool

	// Scoring selects the penalty rules for choosing the mask.
	Scoring coding.Scoring
}

// NewEncoder returns an Encoder encoding UTF-8 text as is at
// DefaultLevel with simplified mask scoring.
func NewEncoder() *Encoder {
	return &Encoder{Level: DefaultLevel}
}

// Encode returns a QR code containing text.
func (e *Encoder) Encode(text string) (*Code, error) {
	l := coding.Level(e.Level)
	seg := coding.Segment{Text: text, Mode: coding.Byte}
	if e.Latin1 {
		seg.Mode = coding.Latin1
	}
	seg, err := seg.Transform()
	if err != nil {
		return nil, err
	}
	v, err := coding.SelectVersion(len(seg.Text), l)
	if err != nil {
		return nil, err
	}
	enc, err := coding.NewEncoder(v, l)
	if err != nil {
		return nil, err
	}
	enc.SetScoring(e.Scoring)
	cc, err := enc.Encode(seg)
	if err != nil {
		return nil, err
	}
	return &Code{
		Bitmap:  cc.Bitmap,
		Size:    cc.Size,
		Stride:  cc.Stride,
		Scale:   DefaultScale,
		Border:  DefaultBorder,
		Version: v,
		Level:   e.Level,
		Mask:    cc.Mask,
	}, nil
}

// Encode returns an encoding of text at the given error correction level.
func Encode(text string, level Level) (*Code, error) {
	e := Encoder{Level: level}
	return e.Encode(text)
}

// Generate returns an encoding of text at DefaultLevel.
func Generate(text string) (*Code, error) {
	return NewEncoder().Encode(text)
}

// A Code is a square pixel grid.
// It can be rendered as an image.Image, PNG, PBM or text.
type Code struct {
	Bitmap []byte // 1 is black, 0 is white
	Size   int    // number of pixels on a side
	Stride int    // number of bytes per row

	Scale   int             // number of image pixels per QR pixel
	Border  int             // quiet zone width in QR pixels
	Reverse bool            // reverse colours
	Palette *[2]color.Color // background and foreground colours

	Version coding.Version // QR version
	Level   Level          // error correction level
	Mask    int            // data mask pattern
}

// Black reports whether the pixel at (x, y) is black.
// Pixels outside the code, including the quiet zone, are white.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7&^x)) != 0
}

// Matrix returns the pixels of the code as c.Size rows of c.Size
// values, 1 for black and 0 for white.  The quiet zone is not
// included.
func (c *Code) Matrix() [][]byte {
	siz := c.Size
	m := make([][]byte, siz)
	b := make([]byte, siz*siz)
	for y := range m {
		m[y], b = b[:siz], b[siz:]
		for x := range m[y] {
			if c.Black(x, y) {
				m[y][x] = 1
			}
		}
	}
	return m
}

// isValid reports whether c can be rendered.
func (c *Code) isValid() bool {
	return c != nil && c.Size > 0 && c.Stride == (c.Size+7)>>3 &&
		len(c.Bitmap) >= c.Size*c.Stride &&
		c.Scale > 0 && c.Border >= 0
}

// pixels returns the width of the rendered image in image pixels,
// or ErrLargeImage if it would be over 32767*8 pixels wide.
func (c *Code) pixels() (int, error) {
	if !c.isValid() {
		return 0, ErrArgs
	}
	siz := c.Size + c.Border*2
	if siz > 32767*8/c.Scale {
		return 0, ErrLargeImage
	}
	return siz * c.Scale, nil
}
