// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"sync"

	"github.com/bitmark-inc/avltree/fault"
)

// Item - a key item must implement the Compare function
type Item interface {
	Compare(interface{}) int // for left/right ordering of items
}

// Node - a node in the tree
type Node struct {
	left       *Node       // left sub-tree
	right      *Node       // right sub-tree
	up         *Node       // points to parent node
	key        Item        // key part for ordering
	value      interface{} // value part for data storage
	balance    int         // -1, 0, +1
	leftNodes  int         // count of nodes in left sub-tree
	rightNodes int         // count of nodes in right sub-tree
}

// Pool - reclaimed nodes, shared by all trees created from it
type Pool struct {
	sync.Mutex
	free       *Node // linked list of reclaimed nodes
	limit      int   // maximum live nodes, zero for no limit
	totalNodes int   // total nodes created
	freeNodes  int   // number of nodes in the free list
}

// PoolStats - snapshot of pool usage
type PoolStats struct {
	Total int
	Free  int
	Live  int
	Limit int
}

// trees created by New use this pool
var defaultPool = &Pool{}

// NewPool - create a pool that can hold at most limit live nodes
// a limit of zero means no limit
func NewPool(limit int) (*Pool, error) {
	if limit < 0 {
		return nil, fault.ErrInvalidPoolLimit
	}
	return &Pool{limit: limit}, nil
}

// Stats - current node usage
func (pool *Pool) Stats() PoolStats {
	pool.Lock()
	defer pool.Unlock()
	return PoolStats{
		Total: pool.totalNodes,
		Free:  pool.freeNodes,
		Live:  pool.totalNodes - pool.freeNodes,
		Limit: pool.limit,
	}
}

// allocate a new node, reuses reclaimed nodes if any are available
func (pool *Pool) newNode(key Item, value interface{}) (*Node, error) {
	pool.Lock()
	defer pool.Unlock()

	if nil == pool.free {
		if 0 != pool.freeNodes {
			fault.Panic("pool corrupt")
		}
		if 0 != pool.limit && pool.totalNodes >= pool.limit {
			return nil, fault.ErrAllocationFailure
		}
		pool.totalNodes += 1
		return &Node{
			key:     key,
			value:   value,
			balance: 0,
		}, nil
	}

	p := pool.free
	pool.free = p.up
	p.key = key
	p.value = value
	p.balance = 0
	p.left = nil
	p.right = nil
	p.up = nil // ensure freelist pointer is cleared
	p.leftNodes = 0
	p.rightNodes = 0
	pool.freeNodes -= 1
	return p, nil
}

// reclaim a node and keep it in the pool
func (pool *Pool) freeNode(node *Node) {
	pool.Lock()
	defer pool.Unlock()

	node.up = pool.free // use as free list pointer

	node.left = nil
	node.right = nil
	node.key = nil
	node.value = nil
	node.balance = 0
	node.leftNodes = 0
	node.rightNodes = 0
	pool.freeNodes += 1

	pool.free = node
}
