// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"
)

// Invariant - a property every tree must keep
type Invariant int

// the invariants checked by Verify
const (
	ParentMismatch Invariant = iota
	DuplicateKey
	OrderViolation
	BalanceMismatch
	Unbalanced
	Cycle
	CountMismatch
	HeightMismatch
)

func (i Invariant) String() string {
	switch i {
	case ParentMismatch:
		return "parent mismatch"
	case DuplicateKey:
		return "duplicate key"
	case OrderViolation:
		return "order violation"
	case BalanceMismatch:
		return "balance mismatch"
	case Unbalanced:
		return "unbalanced"
	case Cycle:
		return "cycle"
	case CountMismatch:
		return "count mismatch"
	case HeightMismatch:
		return "height mismatch"
	default:
		return fmt.Sprintf("invariant(%d)", int(i))
	}
}

// VerificationError - the first broken invariant that was found
type VerificationError struct {
	Key       Item // nil for whole tree problems
	Invariant Invariant
	Detail    string
}

func (e *VerificationError) Error() string {
	if nil == e.Key {
		return fmt.Sprintf("tree: %s: %s", e.Invariant, e.Detail)
	}
	return fmt.Sprintf("node: %v: %s: %s", e.Key, e.Invariant, e.Detail)
}

//go:generate mockgen -destination=mocks/checker.go -package=mocks github.com/bitmark-inc/avltree/avl Checker

// Checker - hook run after each successful change to a tree
type Checker interface {
	Check(tree *Tree) error
}

// CheckerFunc - adapt an ordinary function to a Checker
type CheckerFunc func(tree *Tree) error

// Check - call f(tree)
func (f CheckerFunc) Check(tree *Tree) error {
	return f(tree)
}

// Pedantic - a checker that verifies the whole tree
var Pedantic Checker = CheckerFunc(func(tree *Tree) error {
	return tree.Verify()
})

// Verify - walk every node and check all the invariants
func (tree *Tree) Verify() error {
	v := verifier{
		visited: make(map[*Node]struct{}, tree.count),
	}
	height, count, err := v.walk(tree.root, nil, nil, nil)
	if nil != err {
		return err
	}
	if count != tree.count {
		return &VerificationError{
			Invariant: CountMismatch,
			Detail:    fmt.Sprintf("actual: %d  recorded: %d", count, tree.count),
		}
	}
	if height != tree.height {
		return &VerificationError{
			Invariant: HeightMismatch,
			Detail:    fmt.Sprintf("actual: %d  recorded: %d", height, tree.height),
		}
	}
	return nil
}

type verifier struct {
	visited  map[*Node]struct{}
	previous Item // last key seen in order
}

// returns height and number of nodes of the sub-tree at p, low and
// high are the exclusive bounds inherited from the path taken
func (v *verifier) walk(p *Node, up *Node, low Item, high Item) (int, int, error) {
	if nil == p {
		return 0, 0, nil
	}
	if _, ok := v.visited[p]; ok {
		return 0, 0, fail(p, Cycle, "node reached twice")
	}
	v.visited[p] = struct{}{}

	if p.up != up {
		return 0, 0, fail(p, ParentMismatch, fmt.Sprintf("actual: %v  expected: %v", keyOf(p.up), keyOf(up)))
	}
	if nil != low {
		switch p.key.Compare(low) {
		case 0:
			return 0, 0, fail(p, DuplicateKey, "equals an ancestor")
		case -1:
			return 0, 0, fail(p, OrderViolation, fmt.Sprintf("not above: %v", low))
		}
	}
	if nil != high {
		switch p.key.Compare(high) {
		case 0:
			return 0, 0, fail(p, DuplicateKey, "equals an ancestor")
		case +1:
			return 0, 0, fail(p, OrderViolation, fmt.Sprintf("not below: %v", high))
		}
	}

	lh, ln, err := v.walk(p.left, p, low, p.key)
	if nil != err {
		return 0, 0, err
	}

	if nil != v.previous && 0 == v.previous.Compare(p.key) {
		return 0, 0, fail(p, DuplicateKey, "equals in-order predecessor")
	}
	v.previous = p.key

	rh, rn, err := v.walk(p.right, p, p.key, high)
	if nil != err {
		return 0, 0, err
	}

	d := rh - lh
	if d < -1 || d > 1 {
		return 0, 0, fail(p, Unbalanced, fmt.Sprintf("heights left: %d  right: %d", lh, rh))
	}
	if d != p.balance {
		return 0, 0, fail(p, BalanceMismatch, fmt.Sprintf("actual: %+d  recorded: %+d", d, p.balance))
	}
	if ln != p.leftNodes || rn != p.rightNodes {
		return 0, 0, fail(p, CountMismatch, fmt.Sprintf("actual: [%d,%d]  recorded: [%d,%d]", ln, rn, p.leftNodes, p.rightNodes))
	}

	if lh > rh {
		return 1 + lh, 1 + ln + rn, nil
	}
	return 1 + rh, 1 + ln + rn, nil
}

func fail(p *Node, invariant Invariant, detail string) error {
	return &VerificationError{
		Key:       p.key,
		Invariant: invariant,
		Detail:    detail,
	}
}

func keyOf(p *Node) interface{} {
	if nil == p {
		return nil
	}
	return p.key
}

// CheckUp - check the up pointers for consistency
func (tree *Tree) CheckUp() bool {
	return checkup(tree.root, nil)
}

// internal: consistency checker
func checkup(p *Node, up *Node) bool {
	if nil == p {
		return true
	}
	if p.up != up {
		return false
	}
	return checkup(p.left, p) && checkup(p.right, p)
}
