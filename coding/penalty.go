// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Scoring selects the penalty rules used for choosing the mask.
type Scoring int

const (
	// Simplified scores runs of same-colour pixels and colour
	// balance only.  It is the default, and matches the codes
	// issued by earlier versions of the ticketing system.
	Simplified Scoring = iota

	// ISO additionally scores 2x2 boxes and finder-like patterns as
	// required by ISO/IEC 18004.
	ISO
)

func (s Scoring) String() string {
	if s == ISO {
		return "iso"
	}
	return "simplified"
}

// Penalty returns the penalty value of c under the scoring rules s.
func (s Scoring) Penalty(c *Code) int {
	if s == ISO {
		return c.ISOPenalty()
	}
	return c.Penalty()
}

// Finder-like patterns: 1011101 with 4 white pixels before or after,
// in a window of the last 12 pixels of a line.  The extra white pixel
// on the other side keeps the two from matching the same window.
const (
	findB = 0b0000_1011101_0
	findA = 0b0_1011101_0000
	loseB = findB ^ 0xfff // inverted findB
	loseA = findA ^ 0xfff // inverted findA
)

// scan scans the rows and then the columns of c.  It returns the
// penalty for runs of n >= 5 same-colour pixels, n-2 points each, the
// number of finder-like patterns if finders is set, and the number of
// black pixels.  Pixels outside c are white, so patterns may extend
// into the quiet zone.
func (c *Code) scan(finders bool) (runs, finds, black int) {
	siz := c.Size
	g := grid{c.Bitmap, c.Stride}
	for l := 0; l < 2*siz; l++ {
		at := func(i int) bool { return g.get(i, l) }
		if l >= siz {
			at = func(i int) bool { return g.get(l-siz, i) }
		}
		var w uint16 // last 12 pixels, 1 is black
		run := 0
		var last bool
		for i := 0; i < siz+11; i++ {
			b := i < siz && at(i)
			if i < siz {
				if i > 0 && b != last {
					if run >= 5 {
						runs += run - 2
					}
					run = 0
				}
				run++
				last = b
				if b && l < siz {
					black++
				}
			}
			w = w<<1&0xfff | uint16(b2i(b))
			if finders {
				switch w {
				case findB, findA, loseB, loseA:
					finds++
				}
			}
		}
		if run >= 5 {
			runs += run - 2
		}
	}
	return runs, finds, black
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Penalty returns the simplified penalty value for a QR code: the sum
// of penalties for runs of same-colour pixels and colour balance.
//
//   - RunP: for runs of n pixels in a row or column, n>=5 -> n-2
//   - BalP: for n% of black pixels, with p5 and n5 the multiples of 5
//     below and above n -> 10*min(abs(p5-50), abs(n5-50))/5
func (c *Code) Penalty() int {
	siz := c.Size
	p, _, black := c.scan(false)
	// Integer percentages: p5 = floor(100*black/siz² / 5) * 5.
	p5 := black * 20 / (siz * siz) * 5
	return p + min(abs(p5-50), abs(p5+5-50))/5*10
}

// ISOPenalty returns the penalty value for a QR code as specified
// by ISO/IEC 18004.  In addition to RunP it scores:
//
//   - BoxP: for possibly overlapping 2x2 same-colour boxes -> 3
//   - FindP: for each 1011101 pattern with 4 white pixels on either
//     side, or its inverse -> 40
//   - BalP: for n% of black pixels -> 10*(ceiling(abs(n-50)/5)-1)
func (c *Code) ISOPenalty() int {
	siz := c.Size
	g := grid{c.Bitmap, c.Stride}
	p, finds, black := c.scan(true)
	p += finds * 40
	for y := 1; y < siz; y++ {
		for x := 1; x < siz; x++ {
			b := g.get(x, y)
			if g.get(x-1, y) == b && g.get(x, y-1) == b && g.get(x-1, y-1) == b {
				p += 3
			}
		}
	}

	// Exact percentages get less penalty: 40% and 60% get 10
	// points like 41%, not 20 like 39%.  Fold black into
	// 0 <= n <= siz²/2 and divide rounding down.  siz is odd, so
	// 50% never happens.
	sq := siz * siz
	if black > sq/2 {
		black = sq - black
	}
	return p + (9-black*20/sq)*10
}
