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

// Package prefix turns IPv4 addresses and CIDR ranges into the fixed width bit strings used as trie keys.
package prefix

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const octets = 4

// IsCIDR tells whether the text carries a mask; it does not validate anything else.
func IsCIDR(text string) bool {
	return strings.Contains(text, "/")
}

// Encode returns the key of an address ("10.0.0.1", MaxBits digits) or of a CIDR
// ("10.0.0.0/8", as many digits as the mask). Host bits beyond the mask are ignored.
func Encode(text string) (BitString, error) {
	addrText, maskText, hasMask := strings.Cut(text, "/")
	ip, err := AddrToUint32(addrText)
	if err != nil {
		return "", calculationError(text, err)
	}
	mask := MaxBits
	if hasMask {
		m, ok := parseDecimal(maskText, MaxBits)
		if !ok {
			return "", calculationError(text, &MaskRangeError{Input: text, Mask: maskText})
		}
		mask = int(m)
	}
	return render(ip, mask), nil
}

// EncodePrefix is Encode for an already parsed IPv4 prefix.
func EncodePrefix(p netip.Prefix) (BitString, error) {
	if !p.IsValid() || !p.Addr().Is4() {
		return "", calculationError(p.String(), &AddressParseError{Input: p.String(), Reason: "not an IPv4 prefix"})
	}
	a4 := p.Addr().As4()
	return render(binary.BigEndian.Uint32(a4[:]), p.Bits()), nil
}

// EncodeAddr returns the MaxBits long key of an IPv4 (or IPv4-mapped IPv6) address.
func EncodeAddr(a netip.Addr) (BitString, error) {
	a = a.Unmap()
	if !a.Is4() {
		return "", calculationError(a.String(), &AddressParseError{Input: a.String(), Reason: "not an IPv4 address"})
	}
	a4 := a.As4()
	return render(binary.BigEndian.Uint32(a4[:]), MaxBits), nil
}

// Decode renders a key back as a CIDR, the bits beyond the key being zero.
func Decode(b BitString) (string, error) {
	if !b.Valid() {
		return "", errors.Errorf("invalid key %q", string(b))
	}
	var ip uint32
	if b.Len() > 0 {
		v, err := strconv.ParseUint(string(b), 2, MaxBits)
		if err != nil {
			return "", err
		}
		ip = uint32(v) << (MaxBits - b.Len())
	}
	return fmt.Sprintf("%s/%d", Uint32ToAddr(ip), b.Len()), nil
}

// AddrToUint32 packs a dotted quad, first octet most significant.
func AddrToUint32(text string) (uint32, error) {
	parts := strings.Split(text, ".")
	if len(parts) != octets {
		return 0, &AddressParseError{Input: text, Reason: fmt.Sprintf("expected %d octets, got %d", octets, len(parts))}
	}
	var ip uint32
	for i, part := range parts {
		v, ok := parseDecimal(part, 255)
		if !ok {
			return 0, &AddressParseError{Input: text, Reason: fmt.Sprintf("octet %q is not a number between 0 and 255", part)}
		}
		ip |= uint32(v) << ((octets - 1 - i) * 8)
	}
	return ip, nil
}

func Uint32ToAddr(ip uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", ip>>24&0xff, ip>>16&0xff, ip>>8&0xff, ip&0xff)
}

// render keeps the top mask bits of ip as exactly mask digits. A sentinel bit is set
// just above the kept bits so that leading zeros survive the base 2 formatting, then stripped.
func render(ip uint32, mask int) BitString {
	top := uint64(ip) >> (MaxBits - mask)
	return BitString(strconv.FormatUint(top|1<<mask, 2)[1:])
}

// parseDecimal accepts plain ASCII digits only: no sign, no spaces, no hex.
func parseDecimal(s string, maxValue uint64) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v > maxValue {
		return 0, false
	}
	return v, true
}
