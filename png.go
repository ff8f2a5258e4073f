// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bytes"
	"image/png"
	"io"
)

// The image implements image.PalettedImage, so png writes a 1 bit
// paletted image.  Best compression pays off for the long runs of
// identical rows produced at large scales.
var pngEncoder = png.Encoder{CompressionLevel: png.BestCompression}

// PNG returns a PNG image displaying the code.
// PNG returns nil if the code cannot be rendered.
func (c *Code) PNG() []byte {
	var b bytes.Buffer
	if err := c.EncodePNG(&b); err != nil {
		return nil
	}
	return b.Bytes()
}

// EncodePNG writes a PNG image displaying the code to w.
func (c *Code) EncodePNG(w io.Writer) error {
	if w == nil {
		return ErrArgs
	}
	if _, err := c.pixels(); err != nil {
		return err
	}
	return pngEncoder.Encode(w, c.Image())
}
