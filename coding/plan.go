// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"slices"
	"sync"
)

// A Plan describes how to construct a QR code
// with a specific version and level.
type Plan struct {
	Version Version // QR code version
	Level   Level   // QR error correction Level

	DataBits int // number of data bits
	Size     int // number of pixels on a side

	Map     []byte    // pixel map: 0 is data or checksum, 1 is other
	Pattern [8][]byte // position and alignment boxes, timing, mask
}

// NewPlan returns a Plan for a QR code with the given version and level.
// The returned Plan is a copy owned by the caller.
func NewPlan(version Version, level Level) (*Plan, error) {
	shared, err := makePlan(version, level)
	if err != nil {
		return nil, err
	}
	p := *shared
	p.Map = slices.Clone(shared.Map)
	for i, pat := range shared.Pattern {
		p.Pattern[i] = slices.Clone(pat)
	}
	return &p, nil
}

// plans holds one shared Plan per version and level, built on first
// use and read-only afterwards.  A Plan takes 9 bitmaps, from 567
// bytes for version 1 to 2214 bytes for version 6.
var plans = func() (t [MaxVersion + 1][H + 1]func() *Plan) {
	for v := MinVersion; v <= MaxVersion; v++ {
		for l := L; l <= H; l++ {
			v, l := v, l
			t[v][l] = sync.OnceValue(func() *Plan { return vplan(v, l) })
		}
	}
	return t
}()

// makePlan returns the shared Plan for version and level.
func makePlan(version Version, level Level) (*Plan, error) {
	if !version.valid() {
		return nil, ErrVersion
	}
	if !level.valid() {
		return nil, ErrLevel
	}
	return plans[version][level](), nil
}

// A grid addresses a bitmap by pixel coordinates.
type grid struct {
	b      []byte
	stride int
}

func (g grid) get(x, y int) bool {
	return g.b[y*g.stride+x>>3]&(0x80>>(x&7)) != 0
}

func (g grid) set(x, y int, v bool) {
	bit := byte(0x80) >> (x & 7)
	if v {
		g.b[y*g.stride+x>>3] |= bit
	} else {
		g.b[y*g.stride+x>>3] &^= bit
	}
}

// vplan creates a Plan for the given version and level.
//
// The function patterns are drawn on Pattern[0] and reserved in Map
// in order: position boxes with separators, alignment boxes, timing
// markers, format area.  The format bits and the dark pixel next to
// the lower left box are drawn by WriteFormat after masking.
func vplan(v Version, l Level) *Plan {
	siz := v.Size()
	stride := (siz + 7) >> 3
	p := &Plan{
		Version:  v,
		Level:    l,
		DataBits: v.DataBits(l),
		Size:     siz,
	}
	sz := stride * siz
	bitmap := make([]byte, sz*(len(p.Pattern)+1))
	p.Map = bitmap[:sz]
	pat := bitmap[sz : sz*2]
	m, f := grid{p.Map, stride}, grid{pat, stride}

	// Position boxes.
	posBox(m, f, 0, 0)
	posBox(m, f, siz-7, 0)
	posBox(m, f, 0, siz-7)

	// Alignment boxes, except where they would cover position boxes.
	if a := vtab[v].align; a != 0 {
		for _, x := range [2]int{6, a} {
			for _, y := range [2]int{6, a} {
				if x < 9 && (y < 9 || y > siz-10) || x > siz-10 && y < 9 {
					continue
				}
				alignBox(m, f, x, y)
			}
		}
	}

	// Timing markers between the separators.
	for i := 8; i < siz-8; i++ {
		m.set(i, 6, true)
		m.set(6, i, true)
		f.set(i, 6, i&1 == 0)
		f.set(6, i, i&1 == 0)
	}

	// Format area, including the dark pixel at (8, siz-8).
	for i := 0; i <= 8; i++ {
		m.set(i, 8, true)
		m.set(8, i, true)
	}
	for i := siz - 8; i < siz; i++ {
		m.set(i, 8, true)
		m.set(8, i, true)
	}

	// Pattern[0] shares its bitmap with pat, so it is masked last.
	for mask := len(p.Pattern) - 1; mask >= 0; mask-- {
		b := bitmap[sz*(mask+1) : sz*(mask+2)]
		if mask != 0 {
			copy(b, pat)
		}
		mplan(mask, p, grid{b, stride})
		p.Pattern[mask] = b
	}
	return p
}

// posBox draws a position (large) box with its separator at upper
// left x, y.  The separator lies outside the 7x7 box and is clipped
// at the edges of the code.
func posBox(m, f grid, x, y int) {
	siz := len(m.b) / m.stride
	for dy := -1; dy <= 7; dy++ {
		for dx := -1; dx <= 7; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || yy < 0 || xx >= siz || yy >= siz {
				continue
			}
			m.set(xx, yy, true)
			d := max(abs(dx-3), abs(dy-3))
			f.set(xx, yy, d != 2 && d != 4)
		}
	}
}

// alignBox draws an alignment (small) box centred at x, y.
func alignBox(m, f grid, x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			m.set(x+dx, y+dy, true)
			f.set(x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
//	   ███   ███         ▄▄▄▄▄ ▄▄▄▄▄        ▄▄▄   ▄▄▄     ▄█▄▀ ▀▄█▄▀ ▀
//	      ███   ███      █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	   ███   ███         ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
//
// maskFunc[m](y, x) reports whether mask m inverts the pixel in
// row y, column x.
var maskFunc = [8]func(y, x int) bool{
	func(y, x int) bool { return (y+x)%2 == 0 },
	func(y, x int) bool { return y%2 == 0 },
	func(y, x int) bool { return x%3 == 0 },
	func(y, x int) bool { return (y+x)%3 == 0 },
	func(y, x int) bool { return (y/2+x/3)%2 == 0 },
	func(y, x int) bool { return y*x%2+y*x%3 == 0 },
	func(y, x int) bool { return (y*x%2+y*x%3)%2 == 0 },
	func(y, x int) bool { return (y*x%3+(y+x)%2)%2 == 0 },
}

// mplan edits a version+level Plan to add the mask to b.
// Only data and checksum pixels are masked.
func mplan(mask int, p *Plan, b grid) {
	m := grid{p.Map, b.stride}
	fn := maskFunc[mask]
	for y := 0; y < p.Size; y++ {
		for x := 0; x < p.Size; x++ {
			if !m.get(x, y) && fn(y, x) {
				b.set(x, y, true)
			}
		}
	}
}

// Serialise writes bits from s to the bitmap in zigzag scan order:
// two columns at a time from the right, skipping the vertical timing
// column, upwards and downwards in turn, right column first.
// Pixels reserved in p.Map are skipped; pixels left over after s is
// exhausted stay white.
func (p *Plan) Serialise(s BitStream, bitmap []byte) {
	siz := p.Size
	stride := (siz + 7) >> 3
	pmap := p.Map
	up := true
	for x := siz - 1; x > 0; x -= 2 {
		if x == 6 { // vertical timing strip
			x--
		}
		for i := 0; i < siz; i++ {
			y := i
			if up {
				y = siz - 1 - i
			}
			for xx := x; xx >= x-1; xx-- {
				off, bit := y*stride+xx>>3, byte(0x80)>>(xx&7)
				if pmap[off]&bit == 0 && s.Next() != 0 {
					bitmap[off] |= bit
				}
			}
		}
		up = !up
	}
}

// Mask sets dst to the data bitmap masked with mask pattern mask and
// overlaid with the function patterns.  The format area is left white.
func (p *Plan) Mask(dst, data []byte, mask int) {
	pat := p.Pattern[mask][:len(dst)]
	for i, c := range data[:len(dst)] {
		dst[i] = c ^ pat[i]
	}
}

// FormatBits returns the 15 bit format information, including the BCH
// check bits and the 0x5412 mask, for the given level and data mask.
func FormatBits(l Level, mask int) uint16 {
	return ftab[int(l)*8+mask]
}

// formatPos returns the pixel coordinates of the two copies of the
// format bits, most significant bit first.  The first copy surrounds
// the upper left position box, the second runs up the left edge below
// the lower left box and continues along the top edge left of the upper
// right box.
func formatPos(siz int) (a, b [15][2]int) {
	for i := 0; i < 15; i++ {
		switch {
		case i < 6:
			a[i] = [2]int{i, 8}
		case i < 8:
			a[i] = [2]int{i + 1, 8}
		case i == 8:
			a[i] = [2]int{8, 7}
		default:
			a[i] = [2]int{8, 14 - i}
		}
		if i < 7 {
			b[i] = [2]int{8, siz - 1 - i}
		} else {
			b[i] = [2]int{siz - 15 + i, 8}
		}
	}
	return a, b
}

// WriteFormat writes the format bits for the given level and mask to
// both format areas of a bitmap of a code with siz pixels on a side,
// and sets the dark pixel at (8, siz-8).
func WriteFormat(bitmap []byte, siz int, l Level, mask int) {
	g := grid{bitmap, (siz + 7) >> 3}
	fb := FormatBits(l, mask)
	a, b := formatPos(siz)
	for i := 0; i < 15; i++ {
		on := fb>>(14-i)&1 != 0
		g.set(a[i][0], a[i][1], on)
		g.set(b[i][0], b[i][1], on)
	}
	g.set(8, siz-8, true)
}
