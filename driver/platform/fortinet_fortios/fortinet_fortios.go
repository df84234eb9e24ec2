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

// Package fortinet_fortios implements the FORTINET_FORTIOS driver,
// grounded in
// original_source/hier_config/platforms/fortinet_fortios/driver.py: a
// "set "/"unset " style driver whose "config ... end"/"edit ... next"
// blocks require duplicate "end"/"next" children, and whose idempotence
// is keyed on the set/unset keyword rather than the whole line.
package fortinet_fortios

import (
	"strings"

	"github.com/netconfd/hierconfig/driver"
	"github.com/netconfd/hierconfig/matcher"
	"github.com/netconfd/hierconfig/rules"
	"github.com/netconfd/hierconfig/tree"
)

// Driver is the FORTINET_FORTIOS platform driver.
type Driver struct {
	driver.Base
}

// New constructs the FORTINET_FORTIOS driver.
func New() driver.Driver {
	d := &Driver{}
	d.Base = driver.NewBase(d, rules.FortinetFortiOS, ruleSet())
	d.Base.SetDeclarationPrefix("set ")
	d.Base.SetNegationPrefix("unset ")
	return d
}

func init() { driver.Register(rules.FortinetFortiOS, New) }

// SwapNegation toggles between "set "/"unset " forms. Unsetting keeps
// only the keyword ("unset description", not "unset description foo"),
// since FortiOS's unset syntax takes no value.
func (d *Driver) SwapNegation(n *tree.Node) *tree.Node {
	text := n.Text()
	switch {
	case strings.HasPrefix(text, d.NegationPrefix()):
		n.SetText(d.DeclarationPrefix() + strings.TrimPrefix(text, d.NegationPrefix()))
	case strings.HasPrefix(text, d.DeclarationPrefix()):
		rest := strings.TrimPrefix(text, d.DeclarationPrefix())
		fields := strings.Fields(rest)
		if len(fields) > 0 {
			n.SetText(d.NegationPrefix() + fields[0])
		}
	}
	return n
}

// IdempotentFor treats two "set <keyword> ..." lines as idempotent
// replacements of one another whenever the keyword matches, falling
// back to the declarative table otherwise.
func (d *Driver) IdempotentFor(config *tree.Node, others []*tree.Node) *tree.Node {
	if strings.HasPrefix(config.Text(), d.DeclarationPrefix()) {
		selfWords := strings.Fields(config.Text())
		if len(selfWords) > 1 {
			for _, other := range others {
				otherWords := strings.Fields(other.Text())
				if strings.HasPrefix(other.Text(), d.DeclarationPrefix()) && len(otherWords) > 1 && otherWords[1] == selfWords[1] {
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
			{Lineage: []matcher.Rule{matcher.StartsWith("config ")}, ExitText: "end"},
			{Lineage: []matcher.Rule{matcher.StartsWith("config "), matcher.StartsWith("edit ")}, ExitText: "next"},
		},
		ParentAllowsDuplicateChild: []rules.ParentAllowsDuplicateChild{
			{Lineage: []matcher.Rule{matcher.StartsWith("end")}},
		},
	}}
}
