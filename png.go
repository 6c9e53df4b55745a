// Copyright 2025 The QR1 Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"fmt"
	"image/png"
	"io"
)

// EncodePNG writes a PNG image displaying the code to w using the
// standard encoder.  Encoder failure is returned as a wrapped error;
// the core pipeline is never involved in it.
func (c *Code) EncodePNG(w io.Writer) error {
	if !c.isValid() {
		return ErrArgs
	}
	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("qr: png encode: %w", err)
	}
	return nil
}
