// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"fmt"
	"math/bits"
)

// A reference decoder for fixed-position QR codes of versions 1 to 6,
// written against ISO/IEC 18004 independently of the encoder tables:
// read the format bits, unmask, read the codewords in zigzag order,
// de-interleave the blocks, verify the Reed-Solomon syndromes and
// parse the byte mode segment.

// Total codewords, check bytes per block and blocks per level L, M, Q, H.
var refTable = [7]struct {
	words  int
	check  [4]int
	blocks [4]int
}{
	1: {26, [4]int{7, 10, 13, 17}, [4]int{1, 1, 1, 1}},
	2: {44, [4]int{10, 16, 22, 28}, [4]int{1, 1, 1, 1}},
	3: {70, [4]int{15, 26, 18, 22}, [4]int{1, 1, 2, 2}},
	4: {100, [4]int{20, 18, 26, 16}, [4]int{1, 2, 2, 4}},
	5: {134, [4]int{26, 24, 18, 22}, [4]int{1, 2, 4, 4}},
	6: {172, [4]int{18, 16, 24, 28}, [4]int{2, 4, 4, 4}},
}

// refFormat computes the masked format bits for a level and mask.
func refFormat(l Level, mask int) uint16 {
	fb := uint16(l^1)<<13 | uint16(mask)<<10
	rem := fb
	for i := 4; i >= 0; i-- {
		if rem&(1<<(10+i)) != 0 {
			rem ^= 0x537 << i
		}
	}
	return (fb | rem) ^ 0x5412
}

var refMasks = [8]func(i, j int) bool{
	func(i, j int) bool { return (i+j)&1 == 0 },
	func(i, j int) bool { return i&1 == 0 },
	func(i, j int) bool { return j%3 == 0 },
	func(i, j int) bool { return (i+j)%3 == 0 },
	func(i, j int) bool { return (i/2+j/3)&1 == 0 },
	func(i, j int) bool { return i*j%6 == 0 },
	func(i, j int) bool { return i*j%6 < 3 },
	func(i, j int) bool { return (i+j+i*j%3)&1 == 0 },
}

type decoded struct {
	text    string
	version Version
	level   Level
	mask    int
	data    []byte // data codewords
}

// readFormat reads both copies of the format bits, most significant
// first.
func readFormat(c *Code) (a, b uint16) {
	bit := func(v uint16, x, y int) uint16 {
		v <<= 1
		if c.Black(x, y) {
			v |= 1
		}
		return v
	}
	for x := 0; x < 6; x++ {
		a = bit(a, x, 8)
	}
	a = bit(a, 7, 8)
	a = bit(a, 8, 8)
	a = bit(a, 8, 7)
	for y := 5; y >= 0; y-- {
		a = bit(a, 8, y)
	}
	siz := c.Size
	for y := siz - 1; y >= siz-7; y-- {
		b = bit(b, 8, y)
	}
	for x := siz - 8; x < siz; x++ {
		b = bit(b, x, 8)
	}
	return a, b
}

func isFunction(siz, x, y int) bool {
	switch {
	case x < 9 && y < 9, x >= siz-8 && y < 9, x < 9 && y >= siz-8:
		return true
	case x == 6 || y == 6:
		return true
	}
	if siz > 21 {
		a := siz - 7
		if a-2 <= x && x <= a+2 && a-2 <= y && y <= a+2 {
			return true
		}
	}
	return false
}

func refDecode(c *Code) (*decoded, error) {
	siz := c.Size
	if siz < 21 || siz%4 != 1 || siz > 41 {
		return nil, fmt.Errorf("bad size %d", siz)
	}
	d := &decoded{version: Version((siz - 17) / 4)}
	rt := refTable[d.version]

	a, b := readFormat(c)
	found := false
	for l := L; l <= H && !found; l++ {
		for mask := 0; mask < 8; mask++ {
			if fb := refFormat(l, mask); fb == a {
				if a != b {
					return nil, fmt.Errorf("format copies differ: %#x %#x", a, b)
				}
				d.level, d.mask, found = l, mask, true
				break
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("bad format bits %#x", a)
	}
	if !c.Black(8, siz-8) {
		return nil, errors.New("dark pixel not set")
	}

	// Read codewords in zigzag order.
	raw := make([]byte, 0, rt.words)
	var cur byte
	n := 0
	up := true
	for x := siz - 1; x > 0; x -= 2 {
		if x == 6 {
			x--
		}
		for i := 0; i < siz; i++ {
			y := i
			if up {
				y = siz - 1 - i
			}
			for k := 0; k < 2; k++ {
				xx := x - k
				if isFunction(siz, xx, y) {
					continue
				}
				if len(raw) == rt.words {
					continue // remainder bits
				}
				v := c.Black(xx, y) != refMasks[d.mask](y, xx)
				cur <<= 1
				if v {
					cur |= 1
				}
				if n++; n == 8 {
					raw = append(raw, cur)
					cur, n = 0, 0
				}
			}
		}
		up = !up
	}
	if len(raw) != rt.words {
		return nil, fmt.Errorf("read %d codewords, want %d", len(raw), rt.words)
	}

	// De-interleave.
	nblock := rt.blocks[d.level]
	check := rt.check[d.level]
	nd := rt.words - nblock*check
	short := nd / nblock
	nlong := nd % nblock
	blocks := make([][]byte, nblock)
	for i := range blocks {
		blocks[i] = make([]byte, 0, short+1+check)
	}
	p := 0
	for j := 0; j < short; j++ {
		for i := range blocks {
			blocks[i] = append(blocks[i], raw[p])
			p++
		}
	}
	for i := nblock - nlong; i < nblock; i++ {
		blocks[i] = append(blocks[i], raw[p])
		p++
	}
	for j := 0; j < check; j++ {
		for i := range blocks {
			blocks[i] = append(blocks[i], raw[p])
			p++
		}
	}

	// Verify syndromes and collect data.
	for i, blk := range blocks {
		for k := 0; k < check; k++ {
			x := Field.Exp(k)
			var s byte
			for _, v := range blk {
				s = Field.Mul(s, x) ^ v
			}
			if s != 0 {
				return nil, fmt.Errorf("block %d: syndrome %d = %#x", i, k, s)
			}
		}
		d.data = append(d.data, blk[:len(blk)-check]...)
	}

	// Parse the byte mode segment.
	r := bitReader{b: d.data}
	if mode := r.read(4); mode != 4 {
		return nil, fmt.Errorf("mode %d, want byte mode", mode)
	}
	cnt := r.read(8)
	text := make([]byte, cnt)
	for i := range text {
		if r.left() < 8 {
			return nil, errors.New("short data")
		}
		text[i] = byte(r.read(8))
	}
	d.text = string(text)
	if t := r.read(min(4, r.left())); t != 0 {
		return nil, fmt.Errorf("terminator %#x", t)
	}
	if z := r.read(r.left() & 7); z != 0 {
		return nil, fmt.Errorf("non-zero padding bits %#x", z)
	}
	for i := 0; r.left() > 0; i++ {
		want := [2]uint32{0xec, 0x11}[i&1]
		if v := r.read(8); v != want {
			return nil, fmt.Errorf("pad byte %d = %#x, want %#x", i, v, want)
		}
	}
	return d, nil
}

type bitReader struct {
	b   []byte
	pos int
}

func (r *bitReader) left() int { return len(r.b)*8 - r.pos }

func (r *bitReader) read(n int) uint32 {
	var v uint32
	for ; n > 0; n-- {
		v = v<<1 | uint32(r.b[r.pos>>3]>>(7-r.pos&7)&1)
		r.pos++
	}
	return v
}

// hamming returns the number of differing bits.
func hamming(a, b uint16) int {
	return bits.OnesCount16(a ^ b)
}
