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

package prefix

// MaxBits is the length of the key of a single IPv4 address.
const MaxBits = 32

// BitString is a sequence of '0' and '1' digits, most significant bit first.
// The key of an address is MaxBits long, the key of a CIDR is as long as its mask.
type BitString string

func (b BitString) Len() int {
	return len(b)
}

// Bit returns the i-th digit, '0' or '1'.
func (b BitString) Bit(i int) byte {
	return b[i]
}

// CommonPrefixLen returns the number of leading digits b and o have in common.
func (b BitString) CommonPrefixLen(o BitString) int {
	n := min(len(b), len(o))
	i := 0
	for i < n && b[i] == o[i] {
		i++
	}
	return i
}

func (b BitString) Slice(from, to int) BitString {
	return b[from:to]
}

// HasPrefix reports whether o is a prefix of b, i.e. whether the range of o covers b.
func (b BitString) HasPrefix(o BitString) bool {
	return len(o) <= len(b) && b[:len(o)] == o
}

// Valid reports whether b only holds binary digits and fits an IPv4 address.
func (b BitString) Valid() bool {
	if len(b) > MaxBits {
		return false
	}
	for i := 0; i < len(b); i++ {
		if b[i] != '0' && b[i] != '1' {
			return false
		}
	}
	return true
}

func (b BitString) String() string {
	return string(b)
}
