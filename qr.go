// Copyright 2025 The QR1 Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr generates simplified QR code module grids.

The generated grids follow the structural rules of QR codes (finder,
alignment and timing patterns, a dark module, a format strip, masked
data modules) but use a placeholder redundancy stage, a zeroed format
field, one alignment candidate and one fixed mask.  They are meant for
display and further processing, not for standard compliant readers.
See package coding for details of the deviations.
*/
package qr

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"github.com/Ibragisha/QR1/coding"
)

// ErrArgs is returned by exporters for an invalid Code.
var ErrArgs = errors.New("qr: invalid arguments")

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota
	M
	Q
	H
)

// A Generator generates codes with a fixed version and error
// correction level.  A Generator is immutable and safe for concurrent
// use; every Generate call allocates its own bit stream and grid.
type Generator struct {
	version coding.Version
	level   coding.Level
}

// NewGenerator returns a Generator for the given version and level.
func NewGenerator(version int, level Level) (*Generator, error) {
	p, err := coding.NewPlan(coding.Version(version), coding.Level(level))
	if err != nil {
		return nil, err
	}
	return &Generator{version: p.Version, level: p.Level}, nil
}

// Generate returns the code for text.  Input encoding to more bits
// than the configured capacity is silently truncated.
func (g *Generator) Generate(text string) (*Code, error) {
	cc, err := coding.Generate(g.version, g.level, text)
	if err != nil {
		return nil, err
	}
	return &Code{Grid: cc.Grid, Size: cc.Size, Scale: 8, Border: 4}, nil
}

// Encode returns an encoding of text with the given version and
// error correction level.
func Encode(text string, version int, level Level) (*Code, error) {
	g, err := NewGenerator(version, level)
	if err != nil {
		return nil, err
	}
	return g.Generate(text)
}

// A Code is a square module grid.
// It implements direct text, PBM and PNG encoding, and image.Image
// through Image.
type Code struct {
	Grid    []bool // row major modules, true is dark
	Size    int    // number of modules on a side
	Scale   int    // image pixels per module
	Border  int    // quiet zone width in modules
	Reverse bool   // reverse colours
}

// Black reports whether the module at (x, y) is dark.
// Out of range coordinates are light.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Grid[y*c.Size+x]
}

func (c *Code) isValid() bool {
	return c.Size > 0 && len(c.Grid) == c.Size*c.Size &&
		c.Scale > 0 && c.Border >= 0
}

// String renders the code as text, one line per row, two characters
// per module: "██" for dark, spaces for light.  The quiet zone is
// not rendered.
func (c *Code) String() string {
	var b strings.Builder
	b.Grow(c.Size * (c.Size*len("██") + 1))
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			if c.Black(x, y) != c.Reverse {
				b.WriteString("██")
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Image returns an Image displaying the code, with Scale pixels per
// module and a Border module quiet zone on each side.
func (c *Code) Image() image.Image {
	return &codeImage{c}
}

// codeImage implements image.Image.
type codeImage struct {
	*Code
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (c *codeImage) Bounds() image.Rectangle {
	d := (c.Size + 2*c.Border) * c.Scale
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) At(x, y int) color.Color {
	if c.Black(x/c.Scale-c.Border, y/c.Scale-c.Border) != c.Reverse {
		return blackColor
	}
	return whiteColor
}

func (c *codeImage) ColorModel() color.Model {
	return color.GrayModel
}
