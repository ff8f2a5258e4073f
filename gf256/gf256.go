// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois Field GF(256)
// and Reed-Solomon check byte generation.
package gf256 // import "github.com/Shimizu-Technology/HafaPass-sub001/gf256"

import "strconv"

// A Field represents an instance of GF(256) defined by a specific
// polynomial.
type Field struct {
	log [256]byte // log[0] is unused
	exp [512]byte // exp[i] == exp[i+255], so log sums need no modulo
}

// NewField returns a new field corresponding to the polynomial poly
// and generator α.  The Reed-Solomon encoding in QR codes uses
// polynomial 0x11d with generator 2.
//
// The choice of generator α only matters for calculating
// logarithms.  The field operations are independent of the
// generator.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 || reducible(poly) {
		panic("gf256: invalid polynomial: " + strconv.Itoa(poly))
	}

	var f Field
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: invalid generator: " + strconv.Itoa(α))
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = mul(x, α, poly)
	}
	f.exp[510] = f.exp[0]
	f.exp[511] = f.exp[1]
	return &f
}

// reducible reports whether p is reducible over GF(2).
func reducible(p int) bool {
	// Multiplying n-degree polynomials a, b produces a polynomial
	// of degree 2n.  If p is reducible, one factor has degree at
	// most 4.
	np := nbit(p)
	for q := 2; q < 1<<uint(np/2+1); q++ {
		if polyDiv(p, q) == 0 {
			return true
		}
	}
	return false
}

// nbit returns the number of significant bits in p.
func nbit(p int) uint {
	n := uint(0)
	for ; p > 0; p >>= 1 {
		n++
	}
	return n
}

// polyDiv divides the polynomial p by q and returns the remainder.
func polyDiv(p, q int) int {
	np := nbit(p)
	nq := nbit(q)
	for ; np >= nq; np-- {
		if p&(1<<(np-1)) != 0 {
			p ^= q << (np - nq)
		}
	}
	return p
}

// mul returns the product x*y mod poly, a GF(256) multiplication
// by shift and add.
func mul(x, y, poly int) int {
	z := 0
	for x > 0 {
		if x&1 != 0 {
			z ^= y
		}
		x >>= 1
		y <<= 1
		if y&0x100 != 0 {
			y ^= poly
		}
	}
	return z
}

// Add returns the sum of x and y in the field.
func (f *Field) Add(x, y byte) byte {
	return x ^ y
}

// Exp returns the base-α exponential of e in the field.
// If e < 0, Exp returns 0.
func (f *Field) Exp(e int) byte {
	if e < 0 {
		return 0
	}
	return f.exp[e%255]
}

// Log returns the base-α logarithm of x in the field.
// If x == 0, Log returns -1.
func (f *Field) Log(x byte) int {
	if x == 0 {
		return -1
	}
	return int(f.log[x])
}

// Inv returns the multiplicative inverse of x in the field.
// If x == 0, Inv returns 0.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		return 0
	}
	return f.exp[255-int(f.log[x])]
}

// Mul returns the product of x and y in the field.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// An RSEncoder implements Reed-Solomon encoding
// over a given field using a given number of error correction bytes.
type RSEncoder struct {
	f   *Field
	c   int
	gen []byte // generator coefficients, highest degree first
}

// gen returns the Reed-Solomon generator polynomial of degree c,
// the product of (x - α^i) for i in 0..c-1, highest degree first.
func (f *Field) gen(c int) []byte {
	p := make([]byte, 1, c+1)
	p[0] = 1
	for i := 0; i < c; i++ {
		// p *= x - α^i.  Subtraction is addition in GF(2^n).
		r := f.exp[i]
		p = append(p, 0)
		for j := len(p) - 1; j > 0; j-- {
			p[j] ^= f.Mul(p[j-1], r)
		}
	}
	return p
}

// NewRSEncoder returns a new Reed-Solomon encoder
// over the given field and number of error correction bytes.
func NewRSEncoder(f *Field, c int) *RSEncoder {
	if c < 1 || c > 254 {
		panic("gf256: invalid number of check bytes: " + strconv.Itoa(c))
	}
	return &RSEncoder{f: f, c: c, gen: f.gen(c)}
}

// ECC writes to check the error correcting code bytes
// for data using the given Reed-Solomon parameters.
func (rs *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) < rs.c {
		panic("gf256: invalid check byte length")
	}
	// The check bytes are the remainder after dividing
	// data padded with c zeros by the generator polynomial.
	p := make([]byte, len(data)+rs.c)
	copy(p, data)
	f, gen := rs.f, rs.gen
	for i := range data {
		k := p[i]
		if k == 0 {
			continue
		}
		lk := int(f.log[k])
		q := p[i+1 : i+1+rs.c]
		for j, g := range gen[1:] {
			if g != 0 {
				q[j] ^= f.exp[lk+int(f.log[g])]
			}
		}
	}
	copy(check, p[len(data):])
}
