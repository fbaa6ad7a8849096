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

package trie

import (
	"github.com/netobserv/netipv4trie/pkg/prefix"
)

// node is an edge of the trie. fragment is relative to the parent: the absolute key of a node
// is the concatenation of the fragments from the root down to it. A node without value only
// exists to fork two deeper keys, so it always has both children.
type node[V any] struct {
	fragment prefix.BitString
	value    V
	hasValue bool
	left     *node[V] // next bit is '0'
	right    *node[V] // next bit is '1'
}

func newLeaf[V any](fragment prefix.BitString, value V) *node[V] {
	return &node[V]{fragment: fragment, value: value, hasValue: true}
}

// slot returns where a child starting with bit b hangs.
func (n *node[V]) slot(b byte) **node[V] {
	if b == '0' {
		return &n.left
	}
	return &n.right
}

func (n *node[V]) child(b byte) *node[V] {
	return *n.slot(b)
}

// attach places c under n according to the first bit of its fragment.
func (n *node[V]) attach(c *node[V]) {
	*n.slot(c.fragment.Bit(0)) = c
}

func (n *node[V]) setValue(v V) {
	n.value = v
	n.hasValue = true
}

func (n *node[V]) clearValue() {
	var zero V
	n.value = zero
	n.hasValue = false
}

// pushDown moves the tail of the fragment, starting at offset, into a new child that takes over
// the value and the children of n. n is left with the head of its fragment and no children.
func (n *node[V]) pushDown(offset int) *node[V] {
	c := &node[V]{
		fragment: n.fragment.Slice(offset, n.fragment.Len()),
		value:    n.value,
		hasValue: n.hasValue,
		left:     n.left,
		right:    n.right,
	}
	n.fragment = n.fragment.Slice(0, offset)
	n.left, n.right = nil, nil
	n.attach(c)
	return c
}
