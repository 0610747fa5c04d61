// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avltree/fault"
)

// Tree - type to hold the root node of a tree
type Tree struct {
	root    *Node
	count   int
	height  int
	pool    *Pool
	checker Checker
}

// New - create an initially empty tree using the default node pool
func New() *Tree {
	return NewWithPool(defaultPool)
}

// NewWithPool - create an initially empty tree that allocates from
// a specific pool
func NewWithPool(pool *Pool) *Tree {
	if nil == pool {
		pool = defaultPool
	}
	return &Tree{
		root:   nil,
		count:  0,
		height: 0,
		pool:   pool,
	}
}

// SetChecker - install a hook run after every successful change,
// nil removes it
func (tree *Tree) SetChecker(checker Checker) {
	tree.checker = checker
}

// IsEmpty - true if tree contains no data
func (tree *Tree) IsEmpty() bool {
	return nil == tree.root
}

// Count - number of nodes currently in the tree
func (tree *Tree) Count() int {
	return tree.count
}

// Height - number of nodes on the longest path from the root
func (tree *Tree) Height() int {
	return tree.height
}

// Root - return the root node of the tree
func (tree *Tree) Root() *Node {
	return tree.root
}

// Pool - return the pool nodes are allocated from
func (tree *Tree) Pool() *Pool {
	return tree.nodePool()
}

// a zero value Tree allocates from the default pool
func (tree *Tree) nodePool() *Pool {
	if nil == tree.pool {
		return defaultPool
	}
	return tree.pool
}

// GetChildrenByDepth - returns all children in a specific depth of a tree
func (p *Node) GetChildrenByDepth(depth uint) []*Node {
	if depth == 0 {
		return []*Node{p}
	}

	nodes := []*Node{}
	if p.left != nil {
		nodes = append(nodes, p.left.GetChildrenByDepth(depth-1)...)
	}
	if p.right != nil {
		nodes = append(nodes, p.right.GetChildrenByDepth(depth-1)...)
	}
	return nodes
}

// Key - read the key from a node item
func (p *Node) Key() Item {
	return p.key
}

// Value - read the value from a node item
func (p *Node) Value() interface{} {
	return p.value
}

// Parent - return parent node of a node
func (p *Node) Parent() *Node {
	return p.up
}

// Left - return the left child
func (p *Node) Left() *Node {
	return p.left
}

// Right - return the right child
func (p *Node) Right() *Node {
	return p.right
}

// Balance - height of right sub-tree minus height of left sub-tree
func (p *Node) Balance() int {
	return p.balance
}

// Depth - get the depth of a node
func (p *Node) Depth() uint {
	count := uint(0)
	for parent := p.up; parent != nil; parent = parent.up {
		count += 1
	}
	return count
}

// size of the sub-tree rooted at p
func (p *Node) size() int {
	if nil == p {
		return 0
	}
	return 1 + p.leftNodes + p.rightNodes
}

// run the installed hook, a failure means the tree is corrupt
func (tree *Tree) postCheck(operation string) {
	if nil == tree.checker {
		return
	}
	if err := tree.checker.Check(tree); nil != err {
		fault.PanicWithError(operation, err)
	}
}
