// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: capacity
// tables, byte mode bit packing, Reed-Solomon blocks, module placement,
// masking and format information.
package coding // import "github.com/Shimizu-Technology/HafaPass-sub001/coding"

//go:generate sh -c "go run gen.go | gofmt > tables.go"

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/text/encoding/charmap"

	"github.com/Shimizu-Technology/HafaPass-sub001/gf256"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
	ErrTooLong = errors.New("qr: text too long")
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 pixels on a side.
// Only the versions from MinVersion to MaxVersion are supported,
// enough for ticket identifiers and similar short strings.
type Version int

const (
	MinVersion Version = 1 // Minimum QR version
	MaxVersion Version = 6 // Maximum supported QR version
)

func (v Version) String() string {
	return strconv.Itoa(int(v))
}

func (v Version) valid() bool {
	return MinVersion <= v && v <= MaxVersion
}

// Size returns the number of pixels on a side of a QR code
// with version v.
func (v Version) Size() int {
	return int(v)*4 + 17
}

// CountLength returns the length in bits of the byte mode character
// count field.
func (v Version) CountLength() int {
	if v <= 9 {
		return 8
	}
	return 16
}

// Overhead returns the number of bytes taken by the mode indicator,
// character count and terminator of a byte mode segment, rounded up.
func (v Version) Overhead() int {
	return (4 + v.CountLength() + 4 + 7) >> 3
}

// DataBytes returns the number of data bytes that can be
// stored in a QR code with the given version and level.
func (v Version) DataBytes(l Level) int {
	vt := &vtab[v]
	lev := vt.level[l]
	return vt.bytes - lev.nblock*lev.check
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int {
	return v.DataBytes(l) * 8
}

// Blocks returns the number of Reed-Solomon blocks and the number of
// check bytes per block for the given version and level.
func (v Version) Blocks(l Level) (nblock, check int) {
	lev := vtab[v].level[l]
	return lev.nblock, lev.check
}

// SelectVersion returns the smallest version able to hold n bytes of
// byte mode text at level l.  If no supported version is large enough,
// SelectVersion returns MaxVersion and an error wrapping ErrTooLong.
func SelectVersion(n int, l Level) (Version, error) {
	if !l.valid() {
		return 0, ErrLevel
	}
	for v := MinVersion; v <= MaxVersion; v++ {
		if n+v.Overhead() <= v.DataBytes(l) {
			return v, nil
		}
	}
	return MaxVersion, fmt.Errorf("%w: %d bytes, at most %d fit at level %s",
		ErrTooLong, n, MaxVersion.DataBytes(l)-MaxVersion.Overhead(), l)
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) valid() bool {
	return L <= l && l <= H
}

func (l Level) String() string {
	if l.valid() {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// Bits accumulates the bit stream of a QR code: segments, then
// terminator and padding, then check bytes.
type Bits struct {
	buf  []byte
	nbit int
}

// NewBits returns Bits with room for all codewords of a QR code of the
// given version and level.
func NewBits(v Version, l Level) *Bits {
	return &Bits{buf: make([]byte, 0, vtab[v].bytes)}
}

func (b *Bits) Reset() {
	b.buf, b.nbit = b.buf[:0], 0
}

func (b *Bits) Bits() int {
	return b.nbit
}

// Bytes returns the bytes written so far.  b must end on a byte
// boundary.
func (b *Bits) Bytes() []byte {
	if b.nbit&7 != 0 {
		panic("qr: partial byte")
	}
	return b.buf
}

// Write appends the low nbit bits of v to b, most significant first.
// nbit must not exceed 32.
func (b *Bits) Write(v uint32, nbit int) {
	for nbit > 0 {
		free := -b.nbit & 7 // unused bits of the last byte
		if free == 0 {
			b.buf = append(b.buf, 0)
			free = 8
		}
		n := min(free, nbit)
		nbit -= n
		b.buf[len(b.buf)-1] |= byte(v>>uint(nbit)) & (1<<n - 1) << (free - n)
		b.nbit += n
	}
}

// padBytes alternate after the terminator until the data is full.
var padBytes = [2]uint32{0xec, 0x11}

// PadTo adds up to t zero terminator bits to b, then zero bits up to
// the byte boundary, then pad bytes until b holds n bits.  n must be a
// multiple of 8.
func (b *Bits) PadTo(t, n int) {
	b.Write(0, min(t, n-b.nbit))
	b.Write(0, -b.nbit&7)
	for i := 0; b.nbit < n; i++ {
		b.Write(padBytes[i&1], 8)
	}
}

// blockLen returns the data length of block i when nd bytes are split
// into nblock blocks.  The last nd%nblock blocks are one byte longer.
func blockLen(i, nblock, nd int) int {
	if i < nblock-nd%nblock {
		return nd / nblock
	}
	return nd/nblock + 1
}

// AddCheckBytes adds terminator, padding and check bytes to b for the
// given QR version and level.  The check bytes of each block follow all
// the data in block order.
func (b *Bits) AddCheckBytes(v Version, l Level) {
	nd := v.DataBytes(l)
	if b.nbit > nd*8 {
		panic("qr: too much data")
	}
	b.PadTo(4, nd*8)
	nblock, check := v.Blocks(l)
	b.buf = append(b.buf, make([]byte, nblock*check)...)
	b.nbit = len(b.buf) * 8
	data, ecc := b.buf[:nd], b.buf[nd:]
	rs := gf256.NewRSEncoder(Field, check)
	for i := 0; i < nblock; i++ {
		n := blockLen(i, nblock, nd)
		rs.ECC(data[:n], ecc[:check])
		data, ecc = data[n:], ecc[check:]
	}
}

// Interleave interleaves nblock blocks from src to dst, which must be
// of equal length.  The blocks in src are laid out one after another,
// the last len(src)%nblock of them one byte longer than the rest.
// dst takes byte 0 of every block, then byte 1, and so on.
func Interleave(dst, src []byte, nblock int) {
	short := nblock - len(src)%nblock
	for i := 0; i < nblock; i++ {
		n := blockLen(i, nblock, len(src))
		for j, c := range src[:n] {
			k := j*nblock + i
			if j == len(src)/nblock {
				// Only long blocks get here, after all the rest.
				k -= short
			}
			dst[k] = c
		}
		src = src[n:]
	}
}

// Permute returns a BitStream reading data and check bits in b
// with blocks interleaved for the given QR code version and level.
func (b *Bits) Permute(v Version, l Level) BitStream {
	src := b.Bytes()
	if len(src) != vtab[v].bytes {
		panic("qr: wrong data length")
	}
	nblock, _ := v.Blocks(l)
	if nblock == 1 {
		return NewBitStream(src)
	}
	nd := v.DataBytes(l)
	dst := make([]byte, len(src))
	Interleave(dst[:nd], src[:nd], nblock)
	Interleave(dst[nd:], src[nd:], nblock)
	return NewBitStream(dst)
}

// BitStream reads bits from a buffer, most significant first.
type BitStream struct {
	buf []byte
	off int // in bits
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{buf: b} }

// Bytes returns the data underlying s.
func (s *BitStream) Bytes() []byte { return s.buf }

// Next returns the next bit from s as 0 or 1, or 0 once s is
// exhausted.
func (s *BitStream) Next() byte {
	if s.off >= len(s.buf)*8 {
		return 0
	}
	c := s.buf[s.off>>3] << (s.off & 7) >> 7
	s.off++
	return c
}

// Encoding modes.  Both are encoded as QR byte mode segments.
const (
	Byte   Mode = iota // byte mode, any data
	Latin1             // byte mode, UTF-8 text encoded as ISO 8859-1
)

// A Mode selects how the text of a Segment is converted to bytes.
type Mode int

func (mode Mode) String() string {
	switch mode {
	case Byte:
		return "byte"
	case Latin1:
		return "latin-1"
	}
	return strconv.Itoa(int(mode))
}

// byteIndicator is the 4 bit mode indicator of byte mode.
const byteIndicator = 4

// A Segment describes a QR code segment.
type Segment struct {
	Text string // data to encode
	Mode Mode   // encoding mode
}

// SegmentError represents an invalid Segment.
type SegmentError Segment

func (e SegmentError) Error() string {
	switch e.Mode {
	case Byte, Latin1:
		return fmt.Sprintf("qr: non-%s string %#q", e.Mode, e.Text)
	}
	return fmt.Sprintf("qr: invalid mode %d", e.Mode)
}

// Transform returns seg with its text converted to the bytes stored
// in the QR code, as a Byte mode segment.
func (seg Segment) Transform() (Segment, error) {
	switch seg.Mode {
	case Byte:
		return seg, nil
	case Latin1:
		t, err := charmap.ISO8859_1.NewEncoder().String(seg.Text)
		if err != nil {
			return Segment{}, SegmentError(seg)
		}
		return Segment{t, Byte}, nil
	}
	return Segment{}, SegmentError(seg)
}

// EncodedLength returns the encoded length in bits of the transformed
// seg in a QR code of version v, including the header.
func (seg Segment) EncodedLength(v Version) int {
	return 4 + v.CountLength() + len(seg.Text)*8
}

// Encode writes seg encoded for the given QR version to b.
func (seg Segment) Encode(b *Bits, v Version) error {
	ts, err := seg.Transform()
	if err != nil {
		return err
	}
	n := v.CountLength()
	if len(ts.Text) >= 1<<n {
		return fmt.Errorf("%w: %d bytes in one segment", ErrTooLong, len(ts.Text))
	}
	b.Write(byteIndicator, 4)
	b.Write(uint32(len(ts.Text)), n)
	for _, c := range []byte(ts.Text) {
		b.Write(uint32(c), 8)
	}
	return nil
}

// EncodeCodewords returns the data codewords of text encoded in byte
// mode for the given version and level: the segment, terminator and
// padding, exactly v.DataBytes(l) bytes long.
func EncodeCodewords(text string, v Version, l Level) ([]byte, error) {
	if !v.valid() {
		return nil, ErrVersion
	}
	if !l.valid() {
		return nil, ErrLevel
	}
	b := NewBits(v, l)
	if err := (Segment{text, Byte}).Encode(b, v); err != nil {
		return nil, err
	}
	nb := v.DataBits(l)
	if b.Bits() > nb {
		return nil, fmt.Errorf("%w: cannot encode %d bits into %d-bit code",
			ErrTooLong, b.Bits(), nb)
	}
	b.PadTo(4, nb)
	return b.Bytes(), nil
}

// A Code is a square pixel grid.
type Code struct {
	Bitmap []byte // 1 is black, 0 is white
	Size   int    // number of pixels on a side
	Stride int    // number of bytes per row
	Mask   int    // data mask pattern
}

// Black reports whether the pixel at (x, y) is black.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7&^x)) != 0
}

// Encoder encodes a QR code of a fixed version and level.
type Encoder struct {
	p       *Plan
	b       *Bits
	scoring Scoring
}

// NewEncoder returns an Encoder for the given version and level.
func NewEncoder(version Version, level Level) (*Encoder, error) {
	p, err := makePlan(version, level)
	if err != nil {
		return nil, err
	}
	return &Encoder{p: p, b: NewBits(version, level)}, nil
}

// SetScoring sets the penalty rules used for choosing the mask.
// The default is Simplified.
func (e *Encoder) SetScoring(s Scoring) { e.scoring = s }

// Write adds text to e.
func (e *Encoder) Write(text ...Segment) error {
	for _, seg := range text {
		if err := seg.Encode(e.b, e.p.Version); err != nil {
			return err
		}
	}
	return nil
}

// Reset discards the data written to e.
func (e *Encoder) Reset() { e.b.Reset() }

// Code returns a QR code containing data written to e, and resets e.
// Every mask pattern is scored on the masked code before the format
// bits are added, and the first one with the lowest penalty wins.
func (e *Encoder) Code() (*Code, error) {
	defer e.Reset()
	p := e.p
	if n := e.b.Bits(); n > p.DataBits {
		return nil, fmt.Errorf("%w: cannot encode %d bits into %d-bit code",
			ErrTooLong, n, p.DataBits)
	}
	e.b.AddCheckBytes(p.Version, p.Level)
	stride := (p.Size + 7) >> 3
	data := make([]byte, p.Size*stride)
	p.Serialise(e.b.Permute(p.Version, p.Level), data)

	try := &Code{Bitmap: make([]byte, len(data)), Size: p.Size, Stride: stride}
	c := &Code{Bitmap: make([]byte, len(data)), Size: p.Size, Stride: stride, Mask: -1}
	best := 0
	for mask := range p.Pattern {
		p.Mask(try.Bitmap, data, mask)
		if pen := e.scoring.Penalty(try); c.Mask < 0 || pen < best {
			best, c.Mask = pen, mask
			copy(c.Bitmap, try.Bitmap)
		}
	}
	WriteFormat(c.Bitmap, p.Size, p.Level, c.Mask)
	return c, nil
}

// Encode is a wrapper around Write and Code.
func (e *Encoder) Encode(text ...Segment) (*Code, error) {
	if err := e.Write(text...); err != nil {
		e.Reset()
		return nil, err
	}
	return e.Code()
}

// Encode encodes text using an Encoder with the given version and level.
func Encode(version Version, level Level, text ...Segment) (*Code, error) {
	e, err := NewEncoder(version, level)
	if err != nil {
		return nil, err
	}
	return e.Encode(text...)
}

// A version describes metadata associated with a version.
type version struct {
	align int // alignment box centre, 0 if none
	bytes int // total number of codewords
	level [4]level
}

type level struct {
	nblock int // number of Reed-Solomon blocks
	check  int // check bytes per block
}
