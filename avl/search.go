// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Exists - true if the key is in the tree
func (tree *Tree) Exists(key Item) bool {
	return nil != tree.find(key)
}

// Search - find a specific item, returns the node and its in-order
// index or nil and -1 if not present
func (tree *Tree) Search(key Item) (*Node, int) {
	index := 0
	for p := tree.root; nil != p; {
		switch p.key.Compare(key) {
		case +1: // p.key > key
			p = p.left
		case -1: // p.key < key
			index += p.leftNodes + 1
			p = p.right
		default:
			return p, index + p.leftNodes
		}
	}
	return nil, -1
}

// internal: descend to the node holding key
func (tree *Tree) find(key Item) *Node {
	p := tree.root
	for nil != p {
		switch p.key.Compare(key) {
		case +1:
			p = p.left
		case -1:
			p = p.right
		default:
			return p
		}
	}
	return nil
}
