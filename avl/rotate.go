// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avltree/fault"
)

// side - which child of a node, the value matches the sign of the
// balance factor of a node leaning that way
type side int

const (
	leftSide  side = -1
	rightSide side = +1
)

// the child slot on one side
func (p *Node) link(s side) **Node {
	if leftSide == s {
		return &p.left
	}
	return &p.right
}

// the sub-tree node count on one side
func (p *Node) nodes(s side) *int {
	if leftSide == s {
		return &p.leftNodes
	}
	return &p.rightNodes
}

// which side of p the child hangs from
func (p *Node) sideOf(child *Node) side {
	if p.left == child {
		return leftSide
	}
	return rightSide
}

// the link that holds p: a child slot of its parent or the root
func (tree *Tree) slot(p *Node) **Node {
	if nil == p.up {
		return &tree.root
	}
	return p.up.link(p.up.sideOf(p))
}

// adjust the sub-tree counts of all the ancestors of p
func addCounts(p *Node, delta int) {
	for up := p.up; nil != up; p, up = up, up.up {
		*up.nodes(up.sideOf(p)) += delta
	}
}

// rotate - rebalance the sub-tree at p whose s side is two levels
// taller than the other side.
//
// returns the new sub-tree root (already linked to p's old parent
// via its up pointer, the caller must store it in the parent's slot)
// and true if the result is one level shorter than the unbalanced
// sub-tree.  The result only keeps its height when the heavy child
// was balanced, which neither insert nor join can produce.
func rotate(p *Node, s side) (*Node, bool) {
	o := -s
	up := p.up
	p1 := *p.link(s)

	if int(o) != p1.balance {
		// single rotation
		*p.link(s) = *p1.link(o)
		*p1.link(o) = p

		*p.nodes(s) = *p1.nodes(o)
		*p1.nodes(o) = p.size()

		if c := *p.link(s); nil != c {
			c.up = p
		}
		p.up = p1
		p1.up = up

		if 0 == p1.balance {
			p.balance = int(s)
			p1.balance = int(o)
			return p1, false
		}
		p.balance = 0
		p1.balance = 0
		return p1, true
	}

	// double rotation
	p2 := *p1.link(o)
	*p1.link(o) = *p2.link(s)
	*p.link(s) = *p2.link(o)
	*p2.link(s) = p1
	*p2.link(o) = p

	*p1.nodes(o) = *p2.nodes(s)
	*p.nodes(s) = *p2.nodes(o)
	*p2.nodes(s) = p1.size()
	*p2.nodes(o) = p.size()

	switch p2.balance {
	case int(s):
		p.balance = int(o)
		p1.balance = 0
	case int(o):
		p.balance = 0
		p1.balance = int(s)
	default:
		p.balance = 0
		p1.balance = 0
	}
	p2.balance = 0

	if c := *p1.link(o); nil != c {
		c.up = p1
	}
	if c := *p.link(s); nil != c {
		c.up = p
	}
	p1.up = p2
	p.up = p2
	p2.up = up

	return p2, true
}

// grown - retrace upwards from p whose sub-tree has just become one
// level taller.  Stops as soon as an ancestor absorbs the growth or a
// rotation restores the previous height.
func (tree *Tree) grown(p *Node) {
	for up := p.up; nil != up; up = p.up {
		s := up.sideOf(p)
		switch up.balance {
		case int(-s):
			up.balance = 0
			return
		case 0:
			up.balance = int(s)
			p = up
		default:
			slot := tree.slot(up)
			q, shorter := rotate(up, s)
			*slot = q
			if !shorter {
				fault.Panic("rotation did not restore height")
			}
			return
		}
	}
	tree.height += 1
}

// shrunk - retrace upwards from p whose s side has just become one
// level shorter.  Unlike insert this may need a rotation at every
// level up to the root.
func (tree *Tree) shrunk(p *Node, s side) {
	for nil != p {
		up := p.up
		us := leftSide
		if nil != up {
			us = up.sideOf(p)
		}

		switch p.balance {
		case int(s):
			p.balance = 0
		case 0:
			p.balance = int(-s)
			return
		default:
			slot := tree.slot(p)
			q, shorter := rotate(p, -s)
			*slot = q
			if !shorter {
				return
			}
		}
		p, s = up, us
	}
	tree.height -= 1
}
