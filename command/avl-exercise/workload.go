// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/avltree/avl"
	"github.com/bitmark-inc/avltree/fault"
)

// statistics - totals over all rounds
type statistics struct {
	Rounds          int
	Inserted        int
	Duplicates      int
	AllocationFails int
	Deleted         int
	Joined          int
	MaximumHeight   int
}

// a workload run
type exercise struct {
	log      *logger.L
	workload WorkloadType
	random   *rand.Rand
	pool     *avl.Pool
	stats    statistics
}

// run all the rounds of a workload
func run(log *logger.L, workload WorkloadType) (*statistics, error) {
	if err := workload.validate(); nil != err {
		return nil, err
	}

	seed := workload.Seed
	if 0 == seed {
		seed = time.Now().UnixNano()
	}
	log.Infof("seed: %d", seed)

	pool, err := avl.NewPool(workload.PoolLimit)
	if nil != err {
		return nil, err
	}

	e := &exercise{
		log:      log,
		workload: workload,
		random:   rand.New(rand.NewSource(seed)),
		pool:     pool,
	}

	for round := 1; round <= workload.Rounds; round += 1 {
		if err := e.round(round); nil != err {
			log.Errorf("round: %d  error: %s", round, err)
			return &e.stats, err
		}
		e.stats.Rounds += 1
	}

	s := pool.Stats()
	log.Infof("pool: total: %d  free: %d  live: %d", s.Total, s.Free, s.Live)
	if 0 != s.Live {
		return &e.stats, fmt.Errorf("pool still has: %d live nodes", s.Live)
	}
	return &e.stats, nil
}

// build two trees either side of the middle key, thin them out,
// join them and finally delete everything
func (e *exercise) round(round int) error {
	separator := e.workload.KeyRange / 2

	left := e.newTree()
	right := e.newTree()

	leftKeys := e.fill(left, 0, separator)
	rightKeys := e.fill(right, separator+1, e.workload.KeyRange)

	leftKeys = e.thin(left, leftKeys, e.workload.DeletePercent)
	rightKeys = e.thin(right, rightKeys, e.workload.DeletePercent)

	if err := verify(left, "left"); nil != err {
		return err
	}
	if err := verify(right, "right"); nil != err {
		return err
	}

	e.log.Debugf("round: %d  left: %d/%d  right: %d/%d", round, left.Count(), left.Height(), right.Count(), right.Height())

	tree, err := avl.Join(left, avl.Uint16(separator), round, right)
	if fault.ErrAllocationFailure == err {
		// no room for the separator: join without it
		e.stats.AllocationFails += 1
		e.log.Warnf("round: %d  separator: %s", round, err)
		if err := e.drain(left, leftKeys); nil != err {
			return err
		}
		return e.drain(right, rightKeys)
	}
	if nil != err {
		return err
	}
	e.stats.Joined += 1

	if err := verify(tree, "joined"); nil != err {
		return err
	}
	if tree.Height() > e.stats.MaximumHeight {
		e.stats.MaximumHeight = tree.Height()
	}
	if e.workload.Print {
		tree.Print(true)
	}

	e.log.Infof("round: %d  joined: count: %d  height: %d", round, tree.Count(), tree.Height())

	keys := append(leftKeys, avl.Uint16(separator))
	keys = append(keys, rightKeys...)
	return e.drain(tree, keys)
}

func (e *exercise) newTree() *avl.Tree {
	tree := avl.NewWithPool(e.pool)
	if e.workload.Pedantic {
		tree.SetChecker(avl.Pedantic)
	}
	return tree
}

// insert random keys in [low, high)
func (e *exercise) fill(tree *avl.Tree, low int, high int) []avl.Uint16 {
	keys := make([]avl.Uint16, 0, e.workload.Size)
	if high <= low {
		return keys
	}
	for i := 0; i < e.workload.Size; i += 1 {
		key := avl.Uint16(low + e.random.Intn(high-low))
		err := tree.Insert(key, i)
		switch {
		case nil == err:
			keys = append(keys, key)
			e.stats.Inserted += 1
		case fault.IsErrExists(err):
			e.stats.Duplicates += 1
		case fault.ErrAllocationFailure == err:
			e.stats.AllocationFails += 1
			e.log.Debugf("insert: %d  error: %s", key, err)
			return keys
		default:
			fault.PanicWithError("insert", err)
		}
	}
	return keys
}

// delete a percentage of the keys in random order, returns the rest
func (e *exercise) thin(tree *avl.Tree, keys []avl.Uint16, percent int) []avl.Uint16 {
	e.random.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	n := len(keys) * percent / 100
	for _, key := range keys[:n] {
		if _, err := tree.Delete(key); nil != err {
			fault.PanicWithError("delete", err)
		}
		e.stats.Deleted += 1
	}
	return keys[n:]
}

// delete every key, the tree must then be empty
func (e *exercise) drain(tree *avl.Tree, keys []avl.Uint16) error {
	e.thin(tree, keys, 100)
	if !tree.IsEmpty() {
		return fmt.Errorf("tree not empty: count: %d", tree.Count())
	}
	return nil
}

func verify(tree *avl.Tree, name string) error {
	if err := tree.Verify(); nil != err {
		return fmt.Errorf("%s: %s", name, err)
	}
	return nil
}
