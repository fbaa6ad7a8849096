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

// Package labeler resolves the owners of IP addresses and ranges from a set of declared subnets,
// and writes them into flow records.
package labeler

import (
	"net/netip"

	"github.com/netobserv/netipv4trie/pkg/api"
	"github.com/netobserv/netipv4trie/pkg/config"
	"github.com/netobserv/netipv4trie/pkg/operational"
	"github.com/netobserv/netipv4trie/pkg/prefix"
	"github.com/netobserv/netipv4trie/pkg/trie"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	selectLongest  = api.LabelSelectName("Longest")
	selectBroadest = api.LabelSelectName("Broadest")
	selectAll      = api.LabelSelectName("All")
)

// Labeler is read-only once built and can be shared between goroutines.
type Labeler struct {
	subnets *trie.Trie[string]
	metrics *metrics
}

// Subnet is a declared range along with the nearest declared range enclosing it.
type Subnet struct {
	CIDR        string `json:"cidr"`
	Owner       string `json:"owner"`
	ParentCIDR  string `json:"parentCidr,omitempty"`
	ParentOwner string `json:"parentOwner,omitempty"`
}

// New loads every CIDR of every category. When a range is declared twice, the last declaration wins.
func New(cfg api.SubnetLabels, opMetrics *operational.Metrics) (*Labeler, error) {
	if opMetrics == nil {
		opMetrics = operational.NewMetrics(nil, nil)
	}
	m := newMetrics(opMetrics)
	subnets := trie.New[string]()
	for _, category := range cfg {
		if category.Name == "" {
			m.error("config")
			return nil, errors.New("subnet category without name")
		}
		for _, cidr := range category.CIDRs {
			key, err := prefix.Encode(cidr)
			if err != nil {
				m.error("config")
				return nil, errors.Wrapf(err, "subnet %s", category.Name)
			}
			if previous, found := subnets.Get(key); found && previous != category.Name {
				log.Warnf("%s is declared by both %s and %s, keeping %s", cidr, previous, category.Name, category.Name)
			}
			log.Debugf("subnet %s: %s -> %s", category.Name, cidr, key)
			if err := subnets.Insert(key, category.Name); err != nil {
				return nil, errors.Wrapf(err, "subnet %s", category.Name)
			}
		}
	}
	m.entries.Set(float64(subnets.Len()))
	log.Infof("labeler loaded %d subnets", subnets.Len())
	return &Labeler{subnets: subnets, metrics: m}, nil
}

// ValidateRules checks the rules before any flow gets processed.
func ValidateRules(rules api.LabelRules) error {
	for i := range rules {
		rule := &rules[i]
		if rule.Input == "" || rule.Output == "" {
			return errors.Errorf("rule %d: input and output are required", i)
		}
		if rule.Select != "" && !api.IsEnumValue(api.LabelSelectEnum{}, rule.Select) {
			return errors.Errorf("rule %d: unknown select %q", i, rule.Select)
		}
	}
	return nil
}

func (l *Labeler) Len() int {
	return l.subnets.Len()
}

// Owners returns the owners of the ranges enclosing target, broadest first. With inclusive set,
// the owner of exactly target, if any, comes last.
func (l *Labeler) Owners(target string, inclusive bool) ([]string, error) {
	key, err := prefix.Encode(target)
	if err != nil {
		l.metrics.error("parse")
		return nil, err
	}
	return l.OwnersOfKey(key, inclusive), nil
}

// OwnersOfKey is Owners for an already encoded target.
func (l *Labeler) OwnersOfKey(key prefix.BitString, inclusive bool) []string {
	owners := l.subnets.FindAncestors(key, inclusive)
	l.metrics.lookup(len(owners))
	return owners
}

// OwnersOf is Owners for a parsed address. Non IPv4 addresses have no owner.
func (l *Labeler) OwnersOf(addr netip.Addr, inclusive bool) []string {
	key, err := prefix.EncodeAddr(addr)
	if err != nil {
		l.metrics.error("parse")
		return nil
	}
	return l.OwnersOfKey(key, inclusive)
}

// OwnersOfPrefix is Owners for a parsed range. Non IPv4 ranges have no owner.
func (l *Labeler) OwnersOfPrefix(p netip.Prefix, inclusive bool) []string {
	key, err := prefix.EncodePrefix(p)
	if err != nil {
		l.metrics.error("parse")
		return nil
	}
	return l.OwnersOfKey(key, inclusive)
}

// Owner returns the owner of the most specific range covering target, target itself included.
func (l *Labeler) Owner(target string) (string, bool, error) {
	key, err := prefix.Encode(target)
	if err != nil {
		l.metrics.error("parse")
		return "", false, err
	}
	owner, found := l.subnets.LongestMatch(key)
	if found {
		l.metrics.lookup(1)
	} else {
		l.metrics.lookup(0)
	}
	return owner, found, nil
}

// Subnets lists the declared ranges, enclosing ranges first.
func (l *Labeler) Subnets() []Subnet {
	relations := l.subnets.ChildParents()
	result := make([]Subnet, 0, len(relations))
	for _, rel := range relations {
		// keys come from Encode, they always decode
		cidr, _ := prefix.Decode(rel.Child.Key)
		s := Subnet{CIDR: cidr, Owner: rel.Child.Value}
		if rel.HasParent {
			s.ParentCIDR, _ = prefix.Decode(rel.Parent.Key)
			s.ParentOwner = rel.Parent.Value
		}
		result = append(result, s)
	}
	return result
}

// Apply writes the owners of the address found in rule.Input into rule.Output.
// The flow is left untouched when the input is missing, unparsable or has no owner.
func (l *Labeler) Apply(flow config.GenericMap, rule *api.LabelRule) {
	inclusive := !rule.ExcludeExact
	var owners []string
	switch v := flow[rule.Input].(type) {
	case netip.Addr:
		owners = l.OwnersOf(v, inclusive)
	case netip.Prefix:
		owners = l.OwnersOfPrefix(v, inclusive)
	case string:
		if v == "" {
			return
		}
		var err error
		if owners, err = l.Owners(v, inclusive); err != nil {
			log.Debugf("can't label %s from field %s: %v", v, rule.Input, err)
			return
		}
	}
	if len(owners) == 0 {
		return
	}
	switch rule.Select {
	case selectAll:
		flow[rule.Output] = owners
	case selectBroadest:
		flow[rule.Output] = owners[0]
	case selectLongest, "":
		flow[rule.Output] = owners[len(owners)-1]
	default:
		log.Errorf("unknown select %q in rule %+v", rule.Select, rule)
	}
}

// Transform applies every rule to every flow, in place.
func (l *Labeler) Transform(flows []config.GenericMap, rules api.LabelRules) []config.GenericMap {
	for _, flow := range flows {
		for i := range rules {
			l.Apply(flow, &rules[i])
		}
	}
	return flows
}
