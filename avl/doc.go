// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package avl - an AVL balanced tree with the addition of parent
// pointers to allow iteration through the nodes
//
// Note: an individual tree is not thread safe, so either access only
//       in a single go routine or use mutex/rwmutex to restrict
//       access.
//
// Insert and delete retrace upwards along the parent pointers
// instead of recursing, and the tree keeps its own height so that
// two trees can be joined around a separator key in logarithmic
// time.
//
// Each key is unique: inserting an existing key or deleting a
// missing one is reported as an error and leaves the tree as it
// was.  Delete does not copy data around, the successor node is
// moved into place, so nodes held by a caller stay valid unless
// they are the one deleted.
package avl
