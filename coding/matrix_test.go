// Copyright 2025 The QR1 Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newGrid(siz int) *Code {
	return &Code{Grid: make([]bool, siz*siz), Size: siz}
}

func TestFinderShape(t *testing.T) {
	c := newGrid(21)
	stampFinder(c, 0, 0)
	// outer ring
	require.True(t, c.Black(0, 0))
	require.True(t, c.Black(6, 0))
	require.True(t, c.Black(0, 6))
	require.True(t, c.Black(6, 6))
	require.True(t, c.Black(3, 0))
	require.True(t, c.Black(0, 3))
	// light separator ring
	require.False(t, c.Black(1, 1))
	require.False(t, c.Black(5, 1))
	require.False(t, c.Black(1, 5))
	require.False(t, c.Black(5, 5))
	require.False(t, c.Black(3, 1))
	// dark core
	require.True(t, c.Black(2, 2))
	require.True(t, c.Black(3, 3))
	require.True(t, c.Black(4, 4))
}

func TestFinderIdempotent(t *testing.T) {
	// Stamping depends only on position, not on prior state:
	// re-stamping a stamped grid, or stamping over garbage, always
	// yields the same modules.
	c := newGrid(21)
	stampFinder(c, 0, 0)
	stampFinder(c, 14, 0)
	stampFinder(c, 0, 14)
	want := append([]bool(nil), c.Grid...)
	stampFinder(c, 0, 0)
	stampFinder(c, 14, 0)
	stampFinder(c, 0, 14)
	require.Equal(t, want, c.Grid)

	d := newGrid(21)
	for i := range d.Grid {
		d.Grid[i] = true
	}
	stampFinder(d, 0, 0)
	for j := 0; j < 7; j++ {
		for i := 0; i < 7; i++ {
			require.Equal(t, c.Black(i, j), d.Black(i, j))
		}
	}
}

func TestAlignmentSkippedForVersion1(t *testing.T) {
	c := newGrid(21)
	stampAlignment(c, 1)
	require.Equal(t, newGrid(21).Grid, c.Grid)
}

func TestAlignmentVersion2(t *testing.T) {
	c := newGrid(25)
	stampAlignment(c, 2)
	// centred at (18, 18): dark ring, light inner ring, dark centre
	require.True(t, c.Black(16, 16))
	require.True(t, c.Black(20, 20))
	require.True(t, c.Black(18, 16))
	require.True(t, c.Black(16, 18))
	require.False(t, c.Black(17, 17))
	require.False(t, c.Black(18, 17))
	require.True(t, c.Black(18, 18))
	// nothing outside the 5x5 box
	require.False(t, c.Black(15, 18))
	require.False(t, c.Black(21, 18))
}

func TestAlignmentVersion7(t *testing.T) {
	// Version 7 and above use the (size-9, size-9) candidate.
	c := newGrid(Version(7).Size())
	stampAlignment(c, 7)
	require.True(t, c.Black(36, 36))
	require.True(t, c.Black(34, 34))
	require.False(t, c.Black(35, 35))
}

func TestTiming(t *testing.T) {
	c := newGrid(21)
	stampTiming(c)
	for i := 8; i <= 12; i++ {
		require.Equal(t, i%2 == 0, c.Black(i, 6), "row module %d", i)
		require.Equal(t, i%2 == 0, c.Black(6, i), "column module %d", i)
	}
	// strictly between the finder margins
	require.False(t, c.Black(7, 6))
	require.False(t, c.Black(13, 6))
	require.False(t, c.Black(6, 7))
	require.False(t, c.Black(6, 13))
}

func TestFormatStrip(t *testing.T) {
	c := newGrid(21)
	for i := range c.Grid {
		c.Grid[i] = true
	}
	stampFormat(c)
	for _, x := range []int{0, 1, 2, 3, 4, 5, 7} {
		require.False(t, c.Black(x, 8), "module (%d, 8)", x)
	}
	for y := 0; y <= 6; y++ {
		require.False(t, c.Black(8, y), "module (8, %d)", y)
	}
	// the timing column at x=6 is not part of the strip
	require.True(t, c.Black(6, 8))
}

func TestFunctionPredicate(t *testing.T) {
	for _, tc := range []struct {
		x, y int
		want bool
	}{
		{0, 0, true},   // top left finder
		{8, 8, true},   // format margin
		{6, 15, true},  // timing column
		{15, 6, true},  // timing row
		{13, 0, true},  // top right format margin
		{8, 13, true},  // bottom left format margin, dark module
		{9, 0, false},  // first data module
		{12, 0, false}, // last data module of row 0
		{20, 20, false},
		{10, 10, false},
	} {
		require.Equal(t, tc.want, isFunction(tc.x, tc.y, 21),
			"module (%d, %d)", tc.x, tc.y)
	}
}

func TestDarkModule(t *testing.T) {
	p, err := NewPlan(1, M)
	require.NoError(t, err)
	c := p.Build(NewBits(1, M))
	require.True(t, c.Black(8, 13))
}

func TestPlaceDataRasterOrder(t *testing.T) {
	c := newGrid(21)
	var b Bits
	b.Write(0b1011, 4)
	placeData(c, &b)
	// row 0: modules 0-8 and 13-20 are function patterns, so the
	// first data bits land on (9,0) through (12,0)
	require.True(t, c.Black(9, 0))
	require.False(t, c.Black(10, 0))
	require.True(t, c.Black(11, 0))
	require.True(t, c.Black(12, 0))
	// stream exhausted, the rest stays light
	require.False(t, c.Black(9, 1))
}

func TestMaskSelfInverse(t *testing.T) {
	p, err := NewPlan(1, M)
	require.NoError(t, err)
	b := Encode(1, M, "HELLO QR")
	p.Redundancy.Apply(b)
	c := p.Build(b)
	masked := append([]bool(nil), c.Grid...)
	// applying the mask a second time restores pre-mask data values
	applyMask := func() {
		for y := 0; y < c.Size; y++ {
			for x := 0; x < c.Size; x++ {
				if !isFunction(x, y, c.Size) && p.Mask.Invert(x, y) {
					c.flip(x, y)
				}
			}
		}
	}
	applyMask()
	require.NotEqual(t, masked, c.Grid)
	applyMask()
	require.Equal(t, masked, c.Grid)
}

func TestBuildAllocatesFreshGrid(t *testing.T) {
	p, err := NewPlan(1, M)
	require.NoError(t, err)
	c1 := p.Build(Encode(1, M, "1234"))
	c2 := p.Build(Encode(1, M, "1234"))
	require.Equal(t, c1.Grid, c2.Grid)
	c1.Grid[0] = !c1.Grid[0]
	require.NotEqual(t, c1.Grid, c2.Grid)
}

func TestNewPlanErrors(t *testing.T) {
	_, err := NewPlan(0, M)
	require.ErrorIs(t, err, ErrVersion)
	_, err = NewPlan(-3, M)
	require.ErrorIs(t, err, ErrVersion)
	_, err = NewPlan(1, Level(4))
	require.ErrorIs(t, err, ErrLevel)
	_, err = NewPlan(1, Level(-1))
	require.ErrorIs(t, err, ErrLevel)
}
