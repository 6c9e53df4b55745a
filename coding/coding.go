// Copyright 2025 The QR1 Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level details of a simplified QR code
// pipeline: bit stream construction, a placeholder redundancy stage
// and matrix layout.
//
// The pipeline deviates from ISO/IEC 18004 on purpose.  Redundancy is
// a fixed echo of the leading bits rather than a Reed-Solomon code,
// the format information field is zeroed, a single alignment pattern
// candidate replaces the per-version position table, data modules are
// filled in raster order and exactly one mask is applied without
// scoring.  Grids it produces are not decodable by standard readers.
package coding

import (
	"errors"
	"strconv"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
)

// A Version represents a QR version.  The version specifies the size
// of the code: version v has 4v+17 modules on a side.
type Version int

// MinVersion is the minimum QR version.  There is no upper bound
// here: versions past the tabulated capacity share one approximate
// default, see Capacity.
const MinVersion Version = 1

func (v Version) String() string { return strconv.Itoa(int(v)) }

// Size returns the number of modules on a side of a code with
// version v.
func (v Version) Size() int { return int(v)*4 + 17 }

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
// The level only selects capacity and count field width; the
// placeholder redundancy stage provides no actual correction.
type Level int

const (
	L Level = iota
	M
	Q
	H
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// captab holds the tabulated payload capacity in bits.  Only version
// 1 is tabulated; all other versions fall back to defaultCapacity.
var captab = [H + 1]int{41, 34, 27, 17}

// defaultCapacity is the approximate capacity used for untabulated
// (version, level) pairs.  The value is plausible, not verified.
const defaultCapacity = 100

// Capacity returns the payload bit budget for the given version and
// level, before the redundancy stage.
func Capacity(v Version, l Level) int {
	if v == 1 && L <= l && l <= H {
		return captab[l]
	}
	return defaultCapacity
}

// countLength returns the width in bits of the character count field.
func countLength(v Version, l Level) int {
	if 1 <= v && v <= 9 {
		if l == L || l == M {
			return 10
		}
		return 8
	}
	return 12
}

// Bits is an append-only bit buffer.  Bits are packed into bytes most
// significant bit first; the trailing partial byte is zero padded.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for the payload and
// redundancy of a code with the given version and level.
func NewBits(v Version, l Level) *Bits {
	return &Bits{b: make([]byte, 0, (Capacity(v, l)+10+7)>>3)}
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Len returns the number of bits in b.
func (b *Bits) Len() int { return b.nbit }

// Bytes returns the bits in b packed into bytes, the last byte zero
// padded.
func (b *Bits) Bytes() []byte { return b.b }

// Write appends the nbit low bits of v to b, most significant first.
func (b *Bits) Write(v uint32, nbit int) {
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// At returns bit i of b as 0 or 1.
func (b *Bits) At(i int) byte {
	return b.b[i>>3] >> (7 &^ i) & 1
}

// Truncate drops all but the first n bits of b.
func (b *Bits) Truncate(n int) {
	if n >= b.nbit {
		return
	}
	b.b = b.b[:(n+7)>>3]
	if rem := n & 7; rem != 0 {
		b.b[len(b.b)-1] &= 0xff << (8 - rem)
	}
	b.nbit = n
}

// PadTo appends the 11101100 pad pattern until b holds at least n
// bits, then truncates b to exactly n bits.  The final pad group may
// be cut short.
func (b *Bits) PadTo(n int) {
	for b.nbit < n {
		b.Write(0xec, 8)
	}
	b.Truncate(n)
}

// Predefined encoding modes.
const (
	Numeric Mode = iota // numeric mode, decimal digits only
	Byte                // byte mode, any data
)

// A Mode is a data encoding mode.
type Mode int

// A modeEncoder implements a segment encoding.  The encoder calls a
// non-nil enc{N} repeatedly as long as N source bytes are available,
// in descending order of N.  If all are nil, each byte is encoded as
// 8 bits.
type modeEncoder struct {
	name      string // name for String
	indicator uint32 // 4 bit mode indicator
	enc3      func([3]byte) (uint32, int)
	enc2      func([2]byte) (uint32, int)
	enc1      func(byte) (uint32, int)
}

var modes = [...]modeEncoder{
	Numeric: {
		name:      "numeric",
		indicator: 1,
		enc1: func(b byte) (uint32, int) {
			return uint32(b), 4
		},
		enc2: func(b [2]byte) (uint32, int) {
			return uint32(b[0])*10 + uint32(b[1]) - '0'*11&0x7f, 7
		},
		enc3: func(b [3]byte) (uint32, int) {
			return uint32(b[0])*100 + uint32(b[1])*10 +
				uint32(b[2]) + -'0'*111&0x3ff, 10
		},
	},
	Byte: {
		name:      "byte",
		indicator: 4,
	},
}

func (mode Mode) String() string {
	if Numeric <= mode && mode <= Byte {
		return modes[mode].name
	}
	return strconv.Itoa(int(mode))
}

// PickMode selects the encoding mode for text: Numeric if every byte
// is a decimal digit, Byte otherwise.  The empty string is Byte.
func PickMode(text string) Mode {
	if text == "" {
		return Byte
	}
	for i := 0; i < len(text); i++ {
		if text[i]-'0' >= 10 {
			return Byte
		}
	}
	return Numeric
}

// Encode builds the bit stream for text: mode indicator, character
// count, payload, 4 bit terminator and pad bytes, always exactly
// Capacity(v, l) bits.  Input encoding to more bits than the capacity
// is silently truncated.
func Encode(v Version, l Level, text string) *Bits {
	b := NewBits(v, l)
	m := &modes[PickMode(text)]
	b.Write(m.indicator, 4)
	b.Write(uint32(len(text)), countLength(v, l))
	s := text
	if m.enc3 != nil {
		for len(s) >= 3 {
			b.Write(m.enc3([3]byte{s[0], s[1], s[2]}))
			s = s[3:]
		}
	}
	if m.enc2 != nil {
		for len(s) >= 2 {
			b.Write(m.enc2([2]byte{s[0], s[1]}))
			s = s[2:]
		}
	}
	if m.enc1 != nil {
		for len(s) >= 1 {
			b.Write(m.enc1(s[0]))
			s = s[1:]
		}
	}
	for i := 0; i < len(s); i++ {
		b.Write(uint32(s[i]), 8)
	}
	b.Write(0, 4)
	b.PadTo(Capacity(v, l))
	return b
}

// A Redundancy appends check bits to an encoded stream.  It is a slot
// for a real systematic error correcting code; the pipeline default
// is EchoRedundancy.
type Redundancy interface {
	Apply(b *Bits)
}

// EchoRedundancy is a placeholder redundancy scheme re-appending the
// first up to 10 bits of the stream.  It detects and corrects
// nothing.
type EchoRedundancy struct{}

func (EchoRedundancy) Apply(b *Bits) {
	n := min(10, b.Len())
	for i := 0; i < n; i++ {
		b.Write(uint32(b.At(i)), 1)
	}
}

// Generate runs the full pipeline for text: payload encoding, the
// redundancy stage and matrix construction.
func Generate(v Version, l Level, text string) (*Code, error) {
	p, err := NewPlan(v, l)
	if err != nil {
		return nil, err
	}
	b := Encode(v, l, text)
	p.Redundancy.Apply(b)
	return p.Build(b), nil
}
