// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"
	"io"
	"os"
)

// to control the print routine
type branch int

const (
	rootBranch branch = iota
	leftBranch
	rightBranch
)

// Print - display an ASCII graphic representation of the tree on
// stdout, returns the depth
func (tree *Tree) Print(printData bool) int {
	return tree.Fprint(os.Stdout, printData)
}

// Fprint - as Print but to any writer
func (tree *Tree) Fprint(w io.Writer, printData bool) int {
	return printTree(w, tree.root, "", rootBranch, printData)
}

// internal print - returns the maximum depth of the tree
func printTree(w io.Writer, p *Node, prefix string, br branch, printData bool) int {
	if nil == p {
		return 0
	}
	rd := 0
	ld := 0
	if nil != p.right {
		t := "       "
		if leftBranch == br {
			t = "|      "
		}
		rd = printTree(w, p.right, prefix+t, rightBranch, printData)
	}
	switch br {
	case rootBranch:
		fmt.Fprintf(w, "%s|------+ ", prefix)
	case leftBranch:
		fmt.Fprintf(w, "%s\\------+ ", prefix)
	case rightBranch:
		fmt.Fprintf(w, "%s/------+ ", prefix)
	}
	if printData {
		fmt.Fprintf(w, "%v → %v ^%v %+2d/[%d,%d]\n", p.key, p.value, keyOf(p.up), p.balance, p.leftNodes, p.rightNodes)
	} else {
		fmt.Fprintf(w, "%v ^%v\n", p.key, keyOf(p.up))
	}
	if nil != p.left {
		t := "       "
		if rightBranch == br {
			t = "|      "
		}
		ld = printTree(w, p.left, prefix+t, leftBranch, printData)
	}
	if rd > ld {
		return 1 + rd
	}
	return 1 + ld
}
