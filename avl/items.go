// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"
	"strings"
)

// Byte - a single byte key
type Byte byte

// Compare - byte value ordering
func (b Byte) Compare(x interface{}) int {
	y := x.(Byte)
	switch {
	case b < y:
		return -1
	case b > y:
		return +1
	}
	return 0
}

func (b Byte) String() string {
	return fmt.Sprintf("%q", byte(b))
}

// Uint16 - a 16 bit unsigned key
type Uint16 uint16

// Compare - numeric ordering
func (u Uint16) Compare(x interface{}) int {
	y := x.(Uint16)
	switch {
	case u < y:
		return -1
	case u > y:
		return +1
	}
	return 0
}

// String - a string key
type String string

// Compare - lexical byte ordering
func (s String) Compare(x interface{}) int {
	return strings.Compare(string(s), string(x.(String)))
}
