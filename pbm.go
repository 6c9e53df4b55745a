// Copyright 2025 The QR1 Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.
func (c *Code) EncodePBM(w io.Writer) error {
	if !c.isValid() {
		return ErrArgs
	}
	b := bufio.NewWriter(w)
	siz := c.Size
	scale := c.Scale
	bord := c.Border
	length := scale * (siz + bord*2)
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	row := make([]byte, (length+7)/8)
	var white byte
	if c.Reverse {
		white = 255
	}
	clearRow := func() {
		for i := range row {
			row[i] = white
		}
	}
	clearRow()
	for i := 0; i < scale*bord; i++ {
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	for y := 0; y < siz; y++ {
		clearRow()
		for x := 0; x < siz; x++ {
			if !c.Black(x, y) {
				continue
			}
			for px := (bord + x) * scale; px < (bord+x+1)*scale; px++ {
				row[px>>3] ^= byte(0x80) >> (px & 7)
			}
		}
		for i := 0; i < scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	if bord != 0 {
		clearRow()
		for i := 0; i < scale*bord; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	return b.Flush()
}
