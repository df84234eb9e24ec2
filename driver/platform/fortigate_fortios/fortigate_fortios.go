// Copyright 2024 The Hierconfig Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fortigate_fortios implements the FORTIGATE_FORTIOS driver,
// grounded in
// original_source/hier_config/platforms/fortigate_fortios/driver.py.
// It differs from fortinet_fortios only in allowing unlimited duplicate
// children under any parent (an empty-lineage
// parent_allows_duplicate_child rule matches everywhere) and in how
// negate_with derives the clean "unset <keyword>" form.
package fortigate_fortios

import (
	"strings"

	"github.com/netconfd/hierconfig/driver"
	"github.com/netconfd/hierconfig/matcher"
	"github.com/netconfd/hierconfig/rules"
	"github.com/netconfd/hierconfig/tree"
)

// Driver is the FORTIGATE_FORTIOS platform driver.
type Driver struct {
	driver.Base
}

// New constructs the FORTIGATE_FORTIOS driver.
func New() driver.Driver {
	d := &Driver{}
	d.Base = driver.NewBase(d, rules.FortigateFortiOS, ruleSet())
	d.Base.SetDeclarationPrefix("set ")
	d.Base.SetNegationPrefix("unset ")
	return d
}

func init() { driver.Register(rules.FortigateFortiOS, New) }

// NegateWith returns a clean "unset <keyword>" negation for any "set
// <keyword> ..." line, falling back to the negation_negate_with_rules
// table for anything else.
func (d *Driver) NegateWith(n *tree.Node) string {
	if strings.HasPrefix(n.Text(), "set ") {
		fields := strings.Fields(n.Text())
		if len(fields) >= 2 {
			return "unset " + fields[1]
		}
	}
	return d.Base.NegateWith(n)
}

// IdempotentFor treats two "set <keyword> ..." lines as idempotent
// replacements of one another whenever the keyword matches, falling
// back to the declarative table otherwise.
func (d *Driver) IdempotentFor(config *tree.Node, others []*tree.Node) *tree.Node {
	if strings.HasPrefix(config.Text(), "set ") {
		selfWords := strings.Fields(config.Text())
		if len(selfWords) > 1 {
			for _, other := range others {
				otherWords := strings.Fields(other.Text())
				if strings.HasPrefix(other.Text(), "set ") && len(otherWords) > 1 && otherWords[1] == selfWords[1] {
					return other
				}
			}
		}
	}
	return d.Base.IdempotentFor(config, others)
}

func ruleSet() *driver.Rules {
	return &driver.Rules{Set: rules.Set{
		SectionalExiting: []rules.SectionalExiting{
			{Lineage: []matcher.Rule{matcher.StartsWith("config")}, ExitText: "end"},
			{Lineage: []matcher.Rule{matcher.StartsWith("config"), matcher.StartsWith("edit")}, ExitText: "next"},
		},
		ParentAllowsDuplicateChild: []rules.ParentAllowsDuplicateChild{
			{Lineage: nil},
		},
	}}
}
