// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avltree/fault"
)

// Join - combine two trees and a separator into a single tree
//
// every key in left must be less than key and every key in right
// greater.  The taller tree is reused, so the cost is proportional
// to its height.  On success both input trees are left empty and
// all their nodes belong to the returned tree; on error nothing is
// changed.  The result runs the left tree's checker, or the right
// tree's if only that one has a checker.
func Join(left *Tree, key Item, value interface{}, right *Tree) (*Tree, error) {
	if nil == left || nil == right || left == right {
		return nil, fault.ErrInvalidTree
	}
	pool := left.nodePool()
	if pool != right.nodePool() {
		return nil, fault.ErrPoolMismatch
	}
	if last := left.Last(); nil != last && -1 != last.key.Compare(key) {
		return nil, fault.ErrInvalidSeparator
	}
	if first := right.First(); nil != first && +1 != first.key.Compare(key) {
		return nil, fault.ErrInvalidSeparator
	}

	n, err := pool.newNode(key, value)
	if nil != err {
		return nil, err
	}

	tree := &Tree{
		count:   left.count + 1 + right.count,
		pool:    pool,
		checker: left.checker,
	}
	if nil == tree.checker {
		tree.checker = right.checker
	}

	lh := left.height
	rh := right.height

	switch {
	case lh > rh+1:
		tree.root = left.root
		tree.height = lh
		tree.graft(n, right.root, rh, rightSide)

	case rh > lh+1:
		tree.root = right.root
		tree.height = rh
		tree.graft(n, left.root, lh, leftSide)

	default:
		n.left = left.root
		n.right = right.root
		n.leftNodes = left.count
		n.rightNodes = right.count
		n.balance = rh - lh
		if nil != n.left {
			n.left.up = n
		}
		if nil != n.right {
			n.right.up = n
		}
		tree.root = n
		tree.height = 1 + lh
		if rh > lh {
			tree.height = 1 + rh
		}
	}

	left.clear()
	right.clear()

	tree.postCheck("join")
	return tree, nil
}

// graft - walk down the s spine of the tree until the height is
// within one of h, then put n there with the sub-tree that was there
// on its inner side and short (of height h) on its outer side
func (tree *Tree) graft(n *Node, short *Node, h int, s side) {
	var parent *Node
	p := tree.root
	ph := tree.height

	for ph > h+1 {
		parent = p
		if int(-s) == p.balance {
			ph -= 2
		} else {
			ph -= 1
		}
		p = *p.link(s)
	}

	// p may be nil here: parent was one level above a missing child
	*n.link(-s) = p
	*n.nodes(-s) = p.size()
	*n.link(s) = short
	*n.nodes(s) = short.size()
	n.balance = int(s) * (h - ph)

	if nil != p {
		p.up = n
	}
	if nil != short {
		short.up = n
	}
	n.up = parent
	*parent.link(s) = n
	addCounts(n, 1+short.size())

	// the spine sub-tree is now exactly one level taller
	tree.grown(n)
}

// forget all nodes, they now belong to another tree
func (tree *Tree) clear() {
	tree.root = nil
	tree.count = 0
	tree.height = 0
}
