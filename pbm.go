// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.  EncodePBM disregards c.Palette, as other PNM
// formats are not supported.
func (c *Code) EncodePBM(w io.Writer) error {
	pix, err := c.pixels()
	if err != nil {
		return err
	}
	b := bufio.NewWriter(w)
	ls := strconv.Itoa(pix)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}

	// In PBM 1 is black.  Rows are padded to whole bytes.
	var white byte
	if c.Reverse {
		white = 0xff
	}
	blank := make([]byte, (pix+7)>>3)
	for i := range blank {
		blank[i] = white
	}
	if n := pix & 7; n != 0 {
		blank[len(blank)-1] &^= 0xff >> n
	}
	row := make([]byte, len(blank))
	scale, bord := c.Scale, c.Border
	for i := 0; i < scale*bord; i++ {
		if _, err := b.Write(blank); err != nil {
			return err
		}
	}
	for y := 0; y < c.Size; y++ {
		pbmRow(row, c, y, white)
		for i := 0; i < scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	for i := 0; i < scale*bord; i++ {
		if _, err := b.Write(blank); err != nil {
			return err
		}
	}
	return b.Flush()
}

// pbmRow encodes QR pixel row y of c into row, scaled and surrounded
// by the quiet zone.  Padding bits at the end of row are zero.
func pbmRow(row []byte, c *Code, y int, white byte) {
	clear(row)
	scale, bord := c.Scale, c.Border
	pix := scale * (c.Size + bord*2)
	for x := 0; x < pix; x++ {
		if c.Black(x/scale-bord, y) {
			row[x>>3] |= 0x80 >> (x & 7)
		}
	}
	for i := range row {
		row[i] ^= white
	}
	if n := pix & 7; n != 0 {
		row[len(row)-1] &^= 0xff >> n
	}
}
