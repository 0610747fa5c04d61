// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl_test

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sort"
	"testing"

	"github.com/bitmark-inc/avltree/avl"
	"github.com/bitmark-inc/avltree/fault"
)

func TestListShort(t *testing.T) {
	addList := []avl.String{
		"4201", "1254", "8608", "1639", "8950",
		"6740",
	}
	doList(t, addList)
	doTraverse(t, addList)
	doGet(t, addList)
}

// to make sure that lots of duplicates are rejected and do not
// increment the node count
func TestListDuplicates(t *testing.T) {
	addList := []avl.String{
		"1720", "0506", "8382", "6774", "1247",
		"1250", "1264", "1258", "1255", "2247",
		"2004", "2194", "2644", "2169", "8133",
		"2136", "9651", "4079", "1042", "3579",
		"3630", "1427", "5843", "9549", "5433",
		"1274", "9034", "4724", "6179", "5072",
		"9272", "4030", "4205", "3363", "8582",
		"1720", "0506", "8382", "6774", "1042",

		"1042", "1042", "1042", "1042", "1042",
		"1042", "1042", "1042", "1042", "1042",
		"1042", "1042", "1042", "1042", "1042",
	}
	doList(t, addList)
	doTraverse(t, addList)
	doGet(t, addList)
}

func TestListLong(t *testing.T) {
	addList := []avl.String{
		"8133", "2136", "9651", "4079", "1042",
		"3579", "3630", "1427", "5843", "9549",
		"5433", "1274", "9034", "4724", "6179",
		"5072", "9272", "4030", "4205", "3363",
		"8582", "1720", "0506", "8382", "6774",
		"3088", "2329", "9039", "6703", "1027",
		"7297", "6063", "4156", "1005", "0982",
		"3065", "2553", "0795", "8426", "2377",
		"0877", "9085", "5918", "2581", "7797",
		"3028", "5880", "3061", "5212", "6539",
		"1320", "3581", "3334", "4348", "2934",
		"8342", "8814", "8736", "1353", "3082",
		"9620", "0056", "5063", "1245", "7066",
		"7435", "2999", "7803", "1303", "1697",
		"0017", "4314", "9926", "7587", "2531",
		"8123", "5693", "7495", "9975", "5465",
		"4342", "7958", "7138", "9382", "0672",
		"5402", "0204", "2397", "2712", "0938",
		"9610", "3611", "2140", "4289", "9271",
		"4786", "4145", "1066", "4366", "6716",
		"8579", "1012", "5935", "8278", "5761",
		"1871", "6257", "2649", "8643", "1239",
		"3416", "6146", "7127", "9517", "5788",
		"9025", "6880", "9064", "4849", "4503",
		"4898", "6815", "8811", "6745", "6907",
		"7503", "9869", "5491", "9940", "5955",
		"3764", "3254", "8048", "5339", "2406",
		"3137", "0251", "0486", "4202", "1844",
		"1741", "7154", "4286", "5160", "9472",
		"2998", "1935", "4758", "6478", "9572",
		"9254", "6848", "3126", "1848", "7692",
		"2791", "1504", "3469", "9701", "5077",
		"7928", "7978", "5383", "4319", "8197",
		"9227", "1166", "4216", "0866", "1791",
		"5395", "4310", "4452", "6140", "1494",
		"8859", "3394", "5507", "7295", "5408",
		"7789", "8237", "6990", "6882", "8243",
		"8894", "4352", "6727", "7019", "3126",
		"3102", "2948", "8242", "5027", "8892",
		"3492", "1323", "1101", "4526", "5177",
		"6175", "6664", "2742", "6094", "9877",
		"2534", "2105", "6588", "9982", "3696",
		"3480", "2244", "7487", "2844", "3199",
		"5829", "6952", "6915", "0905", "7615",
	}

	doList(t, addList)
	doTraverse(t, addList)
	doGet(t, addList)
}

// build a tree, reporting duplicates
func build(t *testing.T, addList []avl.String) (*avl.Tree, map[avl.String]struct{}) {
	unique := make(map[avl.String]struct{})
	tree := avl.New()
	for _, key := range addList {
		err := tree.Insert(key, "data:"+string(key))
		if _, ok := unique[key]; ok {
			if !fault.IsErrExists(err) {
				t.Fatalf("duplicate: %q  error: %v", key, err)
			}
			continue
		}
		if nil != err {
			t.Fatalf("insert: %q  error: %s", key, err)
		}
		unique[key] = struct{}{}
	}
	return tree, unique
}

func mustVerify(t *testing.T, tree *avl.Tree, when string) {
	if err := tree.Verify(); nil != err {
		t.Errorf("%s: inconsistent tree: %s", when, err)
		depth := tree.Print(true)
		t.Logf("depth: %d", depth)
		t.Fatal("inconsistent tree")
	}
}

func doList(t *testing.T, addList []avl.String) {

	for i := 0; i < len(addList)+1; i += 1 {

		alreadyDeleted := make(map[avl.String]struct{})

		tree, _ := build(t, addList)
		mustVerify(t, tree, "add")

		for _, key := range addList {
			if _, ok := alreadyDeleted[key]; ok {
				continue
			}
			if len(alreadyDeleted) >= i {
				break
			}
			alreadyDeleted[key] = struct{}{}
			dv, err := tree.Delete(key)
			if nil != err {
				t.Fatalf("delete: %q  error: %s", key, err)
			}
			ev := "data:" + string(key)
			if dv != ev {
				t.Fatalf("delete returned: %q  expected: %q", dv, ev)
			}
			mustVerify(t, tree, "delete")
		}

		for _, key := range addList {
			if _, ok := alreadyDeleted[key]; ok {
				continue
			}
			alreadyDeleted[key] = struct{}{}
			dv, err := tree.Delete(key)
			if nil != err {
				t.Fatalf("delete: %q  error: %s", key, err)
			}
			ev := "data:" + string(key)
			if dv != ev {
				t.Fatalf("delete returned: %q  expected: %q", dv, ev)
			}
		}
		mustVerify(t, tree, "remainder")

		if !tree.IsEmpty() {
			t.Errorf("remainder:remaining nodes")
			depth := tree.Print(true)
			t.Logf("depth: %d", depth)
			t.Fatal("remaining nodes")
		}
		if 0 != tree.Height() {
			t.Fatalf("empty tree height: %d", tree.Height())
		}
	}
}

// traverse the tree forwards and backwards to check iterators
func doTraverse(t *testing.T, addList []avl.String) {

	tree, unique := build(t, addList)

	p := tree.First()
	if nil == p {
		t.Fatalf("no first item")
	}

	expected := make([]string, 0, len(unique))
	for key := range unique {
		expected = append(expected, string(key))
	}
	sort.Strings(expected)

	n := 0
	for i := 0; nil != p; i += 1 {
		if 0 != p.Key().Compare(avl.String(expected[i])) {
			t.Fatalf("next item: actual: %q  expected: %q", p.Key(), expected[i])
		}
		n += 1
		p = p.Next()
	}

	if n != len(expected) {
		t.Fatalf("item count: actual: %d  expected: %d", n, len(expected))
	}

	p = tree.Last()
	if nil == p {
		t.Fatalf("no last item")
	}

	n = 0
	for i := len(expected) - 1; nil != p; i -= 1 {
		if 0 != p.Key().Compare(avl.String(expected[i])) {
			t.Fatalf("prev item: actual: %q  expected: %q", p.Key(), expected[i])
		}
		n += 1
		p = p.Prev()
	}

	if n != len(expected) {
		t.Fatalf("item count: actual: %d  expected: %d", n, len(expected))
	}
	if n != tree.Count() {
		t.Fatalf("tree count: actual: %d  expected: %d", tree.Count(), len(expected))
	}

	// delete remainder
	for _, key := range expected {
		if _, err := tree.Delete(avl.String(key)); nil != err {
			t.Fatalf("delete: %q  error: %s", key, err)
		}
	}

	if !tree.IsEmpty() {
		t.Errorf("remainder:remaining nodes")
		depth := tree.Print(true)
		t.Logf("depth: %d", depth)
		t.Fatalf("remaining nodes")
	}
	if 0 != tree.Count() {
		t.Fatalf("remaining count not zero: %d", tree.Count())
	}
}

// use indexing to fetch each item
func doGet(t *testing.T, addList []avl.String) {

	tree, unique := build(t, addList)

	expected := make([]string, 0, len(unique))
	for key := range unique {
		expected = append(expected, string(key))
	}
	sort.Strings(expected)

	if len(expected) != tree.Count() {
		t.Fatalf("expected: %d items, but tree count: %d", len(expected), tree.Count())
	}

	for index, key := range expected {
		node := tree.Get(index)
		if nil == node {
			t.Fatalf("[%d] key: %q not in tree (nil result)", index, key)
		}
		if 0 != node.Key().Compare(avl.String(key)) {
			t.Fatalf("[%d]: expected: %q but found: %q", index, key, node.Key())
		}
		node1, index1 := tree.Search(avl.String(key))
		if nil == node1 {
			t.Fatalf("[%d]: search: %q returned nil", index, key)
		}
		if index != index1 {
			t.Errorf("[%d]: search: %q index: %d expected: %d", index, key, index1, index)
		}
	}
	if nil != tree.Get(-1) || nil != tree.Get(len(expected)) {
		t.Fatal("out of range index returned a node")
	}

	// delete even elements
	for index, key := range expected {
		if 0 == index%2 {
			if _, err := tree.Delete(avl.String(key)); nil != err {
				t.Fatalf("delete: %q  error: %s", key, err)
			}
		}
	}
	mustVerify(t, tree, "delete even")

	// check odd elements are all present
	for index, key := range expected {
		if 0 == index%2 {
			continue
		}
		index >>= 1 // 1,3,5, … → 0,1,2, …
		node := tree.Get(index)
		if nil == node {
			t.Fatalf("[%d] key: %q not in tree (nil result)", index, key)
		}
		if 0 != node.Key().Compare(avl.String(key)) {
			t.Fatalf("[%d]: expected: %q but found: %q", index, key, node.Key())
		}
	}
}

func makeKey() avl.String {
	b := make([]byte, 4)
	_, err := rand.Read(b)
	if nil != err {
		panic("rand failed")
	}
	n := int(binary.BigEndian.Uint32(b))
	return avl.String(fmt.Sprintf("%04d", n%10000))
}

func TestRandomTree(t *testing.T) {

	randomTree(t, 2200, 2000)
	randomTree(t, 3400, 2760)
	randomTree(t, 5467, 1234)

	for i := 0; i < 5; i += 1 {
		randomTree(t, 2100, 2000)
	}
}

func randomTree(t *testing.T, total int, toDelete int) {

	if toDelete > total {
		t.Fatalf("failed: total: %d  < deletions: %d", total, toDelete)
	}

	tree := avl.New()
	d := make([]avl.String, 0, toDelete)

	for i := 0; i < total; i += 1 {
		key := makeKey()
		if nil == tree.Insert(key, "data:"+string(key)) && len(d) < toDelete {
			d = append(d, key)
		}
	}
	mustVerify(t, tree, "random add")

	for _, key := range d {
		if _, err := tree.Delete(key); nil != err {
			t.Fatalf("delete: %q  error: %s", key, err)
		}
		mustVerify(t, tree, "random delete")
	}

	// add back the test value
	testKey := avl.String("500")
	const testValue = "just testing data: test 500 value"
	if err := tree.Insert(testKey, testValue); nil != err {
		t.Fatalf("insert test key error: %s", err)
	}
	mustVerify(t, tree, "test key")

	tv, _ := tree.Search(testKey)
	if nil == tv {
		t.Fatalf("could not find test key: %q", testKey)
	}
	if testKey != tv.Key() {
		t.Fatalf("test key mismatch: actual: %q  expected: %q", tv.Key(), testKey)
	}
	if testValue != tv.Value() {
		t.Fatalf("test value mismatch: actual: %q  expected: %q", tv.Value(), testValue)
	}

	// delete the test value, and check it return the correct
	// value and is no longer in the tree
	value, err := tree.Delete(testKey)
	if nil != err {
		t.Fatalf("delete test key error: %s", err)
	}
	if value != testValue {
		t.Fatalf("delete value mismatch: actual: %q  expected: %q", value, testValue)
	}
	if tree.Exists(testKey) {
		t.Fatalf("test key not deleted")
	}
}

// check that nodes keep constant address when tree is re-balanced
func TestNodeStability(t *testing.T) {
	addList := []avl.String{
		"01", "02", "03", "04", "05",
		"06", "07", "08", "09", "10",
	}

	tree, _ := build(t, addList)
	mustVerify(t, tree, "add")

	oKey := avl.String("05")
	oIndex := 4 // zero based index

	node1, index1 := tree.Search(oKey)
	if oIndex != index1 {
		t.Errorf("index1: %d  expected %d", index1, oIndex)
	}

	// an existing key is not overwritten
	err := tree.Insert(oKey, "new content for 05")
	if fault.ErrDuplicateKey != err {
		t.Fatalf("overwrite: error: %v", err)
	}
	if "data:05" != node1.Value() {
		t.Fatalf("node data actual: %q  expected: %q", node1.Value(), "data:05")
	}

	// delete a node with two children so the successor moves
	dKey := avl.String("04")
	if _, err := tree.Delete(dKey); nil != err {
		t.Fatalf("delete: error: %s", err)
	}

	node2, index2 := tree.Search(oKey)
	if oIndex-1 != index2 {
		t.Errorf("index2: %d  expected %d", index2, oIndex-1)
	}
	if node1 != node2 {
		t.Fatalf("node moved from: %p → %p", node1, node2)
	}
	mustVerify(t, tree, "delete")
}

func TestGetDepthInTree(t *testing.T) {
	addList := []avl.String{
		"01", "02", "03", "04", "05",
		"06", "07",
	}

	tree, _ := build(t, addList)

	if d := tree.First().Next().Depth(); d != 1 {
		t.Fatalf("incorrect node depth: %d", d)
	}

	if d := tree.First().Next().Next().Depth(); d != 2 {
		t.Fatalf("incorrect node depth: %d", d)
	}
}

func TestGetChildrenByDepth(t *testing.T) {
	addList := []avl.String{
		"01", "02", "03", "04", "05",
		"06", "07",
	}

	tree, _ := build(t, addList)

	if len(tree.Root().GetChildrenByDepth(1)) != 2 {
		t.Fatalf("incorrect children number in depth 1")
	}

	if len(tree.Root().GetChildrenByDepth(2)) != 4 {
		t.Fatalf("incorrect children number in depth 2")
	}
}
