// Copyright 2025 The QR1 Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Code is a square module grid.  Grid is stored in row major order;
// true is dark, false is light.
type Code struct {
	Grid []bool // modules, row major
	Size int    // number of modules on a side
}

// Black reports whether the module at (x, y) is dark.
// Out of range coordinates are light.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Grid[y*c.Size+x]
}

func (c *Code) set(x, y int, v bool) {
	c.Grid[y*c.Size+x] = v
}

func (c *Code) flip(x, y int) {
	c.Grid[y*c.Size+x] = !c.Grid[y*c.Size+x]
}

// A Mask decides which data modules to invert after placement.
type Mask interface {
	Invert(x, y int) bool
}

// FixedMask is the only mask the pipeline ever applies: modules where
// x+y is divisible by 3 are inverted.  There is no mask scoring.
type FixedMask struct{}

func (FixedMask) Invert(x, y int) bool { return (x+y)%3 == 0 }

// A Plan describes how to construct a code with a specific version
// and level.  A Plan is immutable once in use; Build allocates a
// fresh grid per call, so one Plan may serve concurrent callers.
type Plan struct {
	Version    Version
	Level      Level
	Mask       Mask       // data mask, FixedMask by default
	Redundancy Redundancy // check bits, EchoRedundancy by default
}

// NewPlan returns a Plan for a code with the given version and level.
func NewPlan(v Version, l Level) (*Plan, error) {
	if v < MinVersion {
		return nil, ErrVersion
	}
	if l < L || l > H {
		return nil, ErrLevel
	}
	return &Plan{
		Version:    v,
		Level:      l,
		Mask:       FixedMask{},
		Redundancy: EchoRedundancy{},
	}, nil
}

// isFunction reports whether the module at (x, y) in a grid of the
// given size belongs to a function pattern: the finder corners, the
// row and column 6 timing lines, or the format information margins
// (which cover the finders).  Function modules never carry data and
// are never masked.
func isFunction(x, y, siz int) bool {
	if x == 6 || y == 6 {
		return true
	}
	if x < 9 && y < 9 {
		return true
	}
	return x >= siz-8 && y < 9 || x < 9 && y >= siz-8
}

// Build constructs the module grid for the bit stream b.  Function
// patterns are stamped first, then data modules are filled in raster
// order and the mask is applied.
func (p *Plan) Build(b *Bits) *Code {
	siz := p.Version.Size()
	c := &Code{Grid: make([]bool, siz*siz), Size: siz}
	stampFinder(c, 0, 0)
	stampFinder(c, siz-7, 0)
	stampFinder(c, 0, siz-7)
	stampAlignment(c, p.Version)
	stampTiming(c)
	c.set(8, int(p.Version)*4+9, true) // dark module
	stampFormat(c)
	placeData(c, b)
	mask := p.Mask
	if mask == nil {
		mask = FixedMask{}
	}
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			if !isFunction(x, y, siz) && mask.Invert(x, y) {
				c.flip(x, y)
			}
		}
	}
	return c
}

// stampFinder draws a 7x7 finder pattern with its top left module at
// (x, y): a dark outer ring around a light ring around a dark 3x3
// core.  Stamping depends only on position, never on prior state.
func stampFinder(c *Code, x, y int) {
	for j := 0; j < 7; j++ {
		for i := 0; i < 7; i++ {
			c.set(x+i, y+j, i == 0 || i == 6 || j == 0 || j == 6 ||
				2 <= i && i <= 4 && 2 <= j && j <= 4)
		}
	}
}

// stampAlignment draws the single 5x5 alignment pattern candidate:
// none for version 1, centred at (size-7, size-7) for versions 2 to
// 6, at (size-9, size-9) above that.  The candidate is skipped if it
// lands on a finder margin.  One candidate instead of the standard's
// position table is a deliberate simplification.
func stampAlignment(c *Code, v Version) {
	if v == 1 {
		return
	}
	siz := c.Size
	x := siz - 7
	if v >= 7 {
		x = siz - 9
	}
	y := x
	if x < 9 && y < 9 || x > siz-10 && y < 9 || x < 9 && y > siz-10 {
		return
	}
	for j := -2; j <= 2; j++ {
		for i := -2; i <= 2; i++ {
			c.set(x+i, y+j, i == -2 || i == 2 || j == -2 || j == 2 ||
				i == 0 && j == 0)
		}
	}
}

// stampTiming draws the alternating timing lines along row 6 and
// column 6, between the finder margins.
func stampTiming(c *Code) {
	for i := 8; i <= c.Size-9; i++ {
		c.set(i, 6, i%2 == 0)
		c.set(6, i, i%2 == 0)
	}
}

// stampFormat clears the 15 format information modules around the top
// left finder.  The field is always zero: no level or mask metadata
// is encoded, another deliberate simplification.
func stampFormat(c *Code) {
	for i := 0; i < 15; i++ {
		if i < 8 {
			x := i
			if x == 6 {
				x = 7
			}
			c.set(x, 8, false)
		} else {
			c.set(8, 14-i, false)
		}
	}
}

// placeData fills non-function modules in raster order with bits from
// b, 1 as dark.  When b runs out the remaining modules stay light.
// Raster order instead of the standard's zigzag scan is a deliberate
// simplification.
func placeData(c *Code, b *Bits) {
	i, n := 0, b.Len()
	for y := 0; y < c.Size && i < n; y++ {
		for x := 0; x < c.Size && i < n; x++ {
			if !isFunction(x, y, c.Size) {
				c.set(x, y, b.At(i) != 0)
				i++
			}
		}
	}
}
