// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avltree/fault"
)

// Insert - insert a new node into the tree
//
// the tree is left unchanged if the key is already present or the
// pool cannot supply a node
func (tree *Tree) Insert(key Item, value interface{}) error {
	var parent *Node
	s := leftSide

	for p := tree.root; nil != p; {
		switch p.key.Compare(key) {
		case +1: // p.key > key
			parent, s, p = p, leftSide, p.left
		case -1: // p.key < key
			parent, s, p = p, rightSide, p.right
		default:
			return fault.ErrDuplicateKey
		}
	}

	n, err := tree.nodePool().newNode(key, value)
	if nil != err {
		return err
	}

	n.up = parent
	if nil == parent {
		tree.root = n
	} else {
		*parent.link(s) = n
	}
	tree.count += 1
	addCounts(n, 1)

	tree.grown(n)
	tree.postCheck("insert")
	return nil
}
