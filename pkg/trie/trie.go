/*
 * Copyright (C) 2025 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

// Package trie implements a path compressed binary trie (Patricia trie) keyed by IPv4 prefixes,
// answering which stored prefixes are supernets of an address or range.
//
// A Trie is not safe for concurrent mutation. Build it completely, then it can be
// queried from any number of goroutines since lookups never write.
package trie

import (
	"fmt"
	"strings"

	"github.com/netobserv/netipv4trie/pkg/prefix"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidKey = errors.New("invalid trie key")

// Entry is a stored value along with its absolute key.
type Entry[V any] struct {
	Key   prefix.BitString
	Value V
}

// Relation links an entry to its nearest stored supernet, if any.
type Relation[V any] struct {
	Child     Entry[V]
	Parent    Entry[V]
	HasParent bool
}

// Trie maps IPv4 prefixes to values. The zero value is an empty trie ready to use.
type Trie[V any] struct {
	// root is a sentinel with an empty fragment. It only holds a value for the /0 key.
	root *node[V]
	size int
}

func New[V any]() *Trie[V] {
	return &Trie[V]{root: &node[V]{}}
}

// Len returns the number of stored keys.
func (t *Trie[V]) Len() int {
	return t.size
}

// Insert stores value under key. Inserting an existing key replaces its value and leaves the
// shape of the trie untouched.
func (t *Trie[V]) Insert(key prefix.BitString, value V) error {
	if !key.Valid() {
		return errors.Wrapf(ErrInvalidKey, "%q", string(key))
	}
	if t.root == nil {
		t.root = &node[V]{}
	}
	if key.Len() == 0 {
		if !t.root.hasValue {
			t.size++
		}
		t.root.setValue(value)
		return nil
	}

	parent, suffix := t.root, key
	for {
		slot := parent.slot(suffix.Bit(0))
		n := *slot
		if n == nil {
			*slot = newLeaf(suffix, value)
			t.size++
			return nil
		}

		common := suffix.CommonPrefixLen(n.fragment)
		switch {
		case common == suffix.Len() && common == n.fragment.Len():
			// key already there, possibly as a pure branch
			if !n.hasValue {
				t.size++
			}
			n.setValue(value)
			return nil
		case common == suffix.Len():
			// key is a supernet of n: n keeps the head of its fragment and takes the value
			n.pushDown(common)
			n.setValue(value)
			t.size++
			return nil
		case common == n.fragment.Len():
			parent, suffix = n, suffix.Slice(common, suffix.Len())
		default:
			// key and n diverge inside the fragment: n becomes a branch
			n.pushDown(common)
			n.clearValue()
			n.attach(newLeaf(suffix.Slice(common, suffix.Len()), value))
			t.size++
			return nil
		}
	}
}

// FindAncestors returns the values of the stored supernets of key, broadest first.
// With inclusive set, the value stored under key itself comes last.
func (t *Trie[V]) FindAncestors(key prefix.BitString, inclusive bool) []V {
	var values []V
	t.ancestors(key, inclusive, func(_ prefix.BitString, n *node[V]) {
		values = append(values, n.value)
	})
	return values
}

// FindAncestorEntries is FindAncestors returning the keys along with the values.
func (t *Trie[V]) FindAncestorEntries(key prefix.BitString, inclusive bool) []Entry[V] {
	var entries []Entry[V]
	t.ancestors(key, inclusive, func(k prefix.BitString, n *node[V]) {
		entries = append(entries, Entry[V]{Key: k, Value: n.value})
	})
	return entries
}

// LongestMatch returns the value of the most specific stored prefix covering key, key included.
func (t *Trie[V]) LongestMatch(key prefix.BitString) (V, bool) {
	var (
		found V
		ok    bool
	)
	t.ancestors(key, true, func(_ prefix.BitString, n *node[V]) {
		found, ok = n.value, true
	})
	return found, ok
}

// Get returns the value stored exactly under key.
func (t *Trie[V]) Get(key prefix.BitString) (V, bool) {
	var (
		found V
		ok    bool
	)
	t.ancestors(key, true, func(k prefix.BitString, n *node[V]) {
		if k.Len() == key.Len() {
			found, ok = n.value, true
		}
	})
	return found, ok
}

// ancestors walks down along key and calls fn, root to leaf, for every node holding a value
// whose absolute key is a strict prefix of key, or equals key when inclusive.
func (t *Trie[V]) ancestors(key prefix.BitString, inclusive bool, fn func(prefix.BitString, *node[V])) {
	if t.root == nil || !key.Valid() {
		return
	}
	n, depth := t.root, 0
	for n != nil {
		suffix := key.Slice(depth, key.Len())
		common := suffix.CommonPrefixLen(n.fragment)
		if common < n.fragment.Len() {
			// key leaves the trie in the middle of this edge
			return
		}
		depth += common
		if common == suffix.Len() {
			if inclusive && n.hasValue {
				fn(key.Slice(0, depth), n)
			}
			return
		}
		if n.hasValue {
			fn(key.Slice(0, depth), n)
		}
		n = n.child(key.Bit(depth))
	}
}

// Walk calls fn for every stored entry, supernets before subnets and '0' branches before '1'
// branches, until fn returns false.
func (t *Trie[V]) Walk(fn func(Entry[V]) bool) {
	if t.root == nil {
		return
	}
	walk(t.root, "", fn)
}

func walk[V any](n *node[V], parentKey prefix.BitString, fn func(Entry[V]) bool) bool {
	if n == nil {
		return true
	}
	key := parentKey + n.fragment
	if n.hasValue && !fn(Entry[V]{Key: key, Value: n.value}) {
		return false
	}
	return walk(n.left, key, fn) && walk(n.right, key, fn)
}

// ChildParents pairs every stored entry with its nearest stored supernet, in Walk order.
func (t *Trie[V]) ChildParents() []Relation[V] {
	var relations []Relation[V]
	if t.root == nil {
		return relations
	}
	var visit func(n *node[V], parentKey prefix.BitString, nearest *Entry[V])
	visit = func(n *node[V], parentKey prefix.BitString, nearest *Entry[V]) {
		if n == nil {
			return
		}
		key := parentKey + n.fragment
		if n.hasValue {
			rel := Relation[V]{Child: Entry[V]{Key: key, Value: n.value}}
			if nearest != nil {
				rel.Parent, rel.HasParent = *nearest, true
			}
			relations = append(relations, rel)
			nearest = &rel.Child
		}
		visit(n.left, key, nearest)
		visit(n.right, key, nearest)
	}
	visit(t.root, "", nil)
	return relations
}

// InsertCIDR encodes an address or CIDR and stores value under it. Nothing is modified
// when the text can't be encoded.
func (t *Trie[V]) InsertCIDR(text string, value V) error {
	key, err := prefix.Encode(text)
	if err != nil {
		return err
	}
	log.Debugf("inserting %s with key %s", text, key)
	return t.Insert(key, value)
}

// FindParents is FindAncestors for an address or CIDR.
func (t *Trie[V]) FindParents(text string, inclusive bool) ([]V, error) {
	key, err := prefix.Encode(text)
	if err != nil {
		return nil, err
	}
	log.Debugf("searching %s with key %s", text, key)
	return t.FindAncestors(key, inclusive), nil
}

// String dumps the edges of the trie, one per line, indented by depth. Branches without value
// are shown with a dash.
func (t *Trie[V]) String() string {
	var sb strings.Builder
	if t.root == nil {
		return "/\n"
	}
	var dump func(n *node[V], depth int)
	dump = func(n *node[V], depth int) {
		if n == nil {
			return
		}
		label := string(n.fragment)
		if depth == 0 {
			label = "/"
		}
		sb.WriteString(strings.Repeat("  ", depth))
		if n.hasValue {
			fmt.Fprintf(&sb, "%s [%v]\n", label, n.value)
		} else {
			sb.WriteString(label + " -\n")
		}
		dump(n.left, depth+1)
		dump(n.right, depth+1)
	}
	dump(t.root, 0)
	return sb.String()
}
