// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avltree/fault"
)

// Delete - removes a specific item from the tree and returns the
// data that was associated with it
func (tree *Tree) Delete(key Item) (interface{}, error) {
	q := tree.find(key)
	if nil == q {
		return nil, fault.ErrKeyNotFound
	}

	value := q.value // preserve the value part
	tree.unlink(q)
	tree.count -= 1
	tree.nodePool().freeNode(q) // return deleted node to pool

	tree.postCheck("delete")
	return value, nil
}

// detach q from the tree and rebalance
func (tree *Tree) unlink(q *Node) {
	if nil == q.left || nil == q.right {
		child := q.left
		if nil == child {
			child = q.right
		}

		up := q.up
		s := leftSide
		if nil != up {
			s = up.sideOf(q)
		}

		addCounts(q, -1)
		*tree.slot(q) = child
		if nil != child {
			child.up = up
		}
		tree.shrunk(up, s)
		return
	}

	// two children: the in-order successor moves into q's place
	r := q.right.first()
	start, s := r.up, leftSide

	if start == q {
		// r is q's right child and keeps its own right sub-tree
		start, s = r, rightSide
	} else {
		start.left = r.right
		if nil != r.right {
			r.right.up = start
		}
		for p := start; p != q; p = p.up {
			p.leftNodes -= 1
		}

		r.right = q.right
		r.right.up = r
		r.rightNodes = q.rightNodes - 1
	}

	r.left = q.left
	r.left.up = r
	r.leftNodes = q.leftNodes
	r.balance = q.balance

	*tree.slot(q) = r
	r.up = q.up
	addCounts(r, -1)

	tree.shrunk(start, s)
}
