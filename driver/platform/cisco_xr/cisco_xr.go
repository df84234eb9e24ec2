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

// Package cisco_xr implements the CISCO_XR driver, grounded in
// original_source/hier_config/platforms/cisco_xr/driver.py. Its
// idempotent_for override recognizes ACL entries as idempotent by
// sequence number alone, exercised by scenario S4 (duplicate
// route-policy negation) and S5 (ACL sequence-number idempotence) in
// spec.md §8.
package cisco_xr

import (
	"strings"

	"github.com/netconfd/hierconfig/driver"
	"github.com/netconfd/hierconfig/matcher"
	"github.com/netconfd/hierconfig/rules"
	"github.com/netconfd/hierconfig/tree"
)

// Driver is the CISCO_XR platform driver.
type Driver struct {
	driver.Base
}

// New constructs the CISCO_XR driver.
func New() driver.Driver {
	d := &Driver{}
	d.Base = driver.NewBase(d, rules.CiscoXR, ruleSet())
	return d
}

func init() { driver.Register(rules.CiscoXR, New) }

var aclParents = []string{"ipv4 access-list ", "ipv6 access-list "}

// IdempotentFor treats two ACL entries under the same ACL as idempotent
// replacements of one another when they share a leading sequence number,
// falling back to the declarative idempotent_commands table otherwise.
func (d *Driver) IdempotentFor(config *tree.Node, others []*tree.Node) *tree.Node {
	parent := config.Parent()
	if !parent.IsRoot() {
		for _, p := range aclParents {
			if strings.HasPrefix(parent.Text(), p) {
				selfSN := firstField(config.Text())
				for _, other := range others {
					if firstField(other.Text()) == selfSN {
						return other
					}
				}
				break
			}
		}
	}
	return d.Base.IdempotentFor(config, others)
}

func firstField(text string) string {
	if i := strings.IndexByte(text, ' '); i >= 0 {
		return text[:i]
	}
	return text
}

func ruleSet() *driver.Rules {
	return &driver.Rules{Set: rules.Set{
		SectionalExiting: []rules.SectionalExiting{
			{Lineage: []matcher.Rule{matcher.StartsWith("route-policy")}, ExitText: "end-policy"},
			{Lineage: []matcher.Rule{matcher.StartsWith("prefix-set")}, ExitText: "end-set"},
			{Lineage: []matcher.Rule{matcher.StartsWith("policy-map")}, ExitText: "end-policy-map"},
			{Lineage: []matcher.Rule{matcher.StartsWith("class-map")}, ExitText: "end-class-map"},
			{Lineage: []matcher.Rule{matcher.StartsWith("community-set")}, ExitText: "end-set"},
			{Lineage: []matcher.Rule{matcher.StartsWith("extcommunity-set")}, ExitText: "end-set"},
			{Lineage: []matcher.Rule{matcher.StartsWith("template")}, ExitText: "end-template"},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface")}, ExitText: "root"},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp")}, ExitText: "root"},
		},
		SectionalOverwrite: []rules.SectionalOverwrite{
			{Lineage: []matcher.Rule{matcher.StartsWith("template")}},
		},
		SectionalOverwriteNoNegate: []rules.SectionalOverwriteNoNegate{
			{Lineage: []matcher.Rule{matcher.StartsWith("as-path-set")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("prefix-set")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("route-policy")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("extcommunity-set")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("community-set")}},
		},
		Ordering: []rules.Ordering{
			{Lineage: []matcher.Rule{matcher.StartsWith("vrf ")}, Weight: -200},
			{Lineage: []matcher.Rule{matcher.StartsWith("no vrf ")}, Weight: 200},
		},
		IndentAdjust: []rules.IndentAdjust{
			{StartExpression: `^\s*template`, EndExpression: `^\s*end-template`},
		},
		ParentAllowsDuplicateChild: []rules.ParentAllowsDuplicateChild{
			{Lineage: []matcher.Rule{matcher.StartsWith("route-policy")}},
		},
		PerLineSub: []rules.PerLineSub{
			{Search: `^Building configuration.*`, Replace: ""},
			{Search: `^Current configuration.*`, Replace: ""},
			{Search: `^ntp clock-period .*`, Replace: ""},
			{Search: `.*speed.*`, Replace: ""},
			{Search: `.*duplex.*`, Replace: ""},
			{Search: `.*negotiation auto.*`, Replace: ""},
			{Search: `.*parity none.*`, Replace: ""},
			{Search: `^end-policy$`, Replace: " end-policy"},
			{Search: `^end-set$`, Replace: " end-set"},
			{Search: `^end$`, Replace: ""},
			{Search: `^\s*[#!].*`, Replace: ""},
		},
		IdempotentCommands: []rules.IdempotentCommands{
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("vrf"), matcher.StartsWith("address-family"), matcher.StartsWith("additional-paths selection route-policy")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("bgp router-id")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("neighbor-group"), matcher.StartsWith("address-family"), matcher.StartsWith("soft-reconfiguration inbound")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("vrf"), matcher.StartsWith("neighbor"), matcher.StartsWith("address-family"), matcher.StartsWith("soft-reconfiguration inbound")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("vrf"), matcher.StartsWith("neighbor"), matcher.StartsWith("address-family"), matcher.StartsWith("maximum-prefix")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("vrf"), matcher.StartsWith("neighbor"), matcher.StartsWith("password")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("vrf"), matcher.StartsWith("neighbor"), matcher.StartsWith("description")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("neighbor"), matcher.StartsWith("description")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("neighbor"), matcher.StartsWith("password")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router ospf"), matcher.StartsWith("area"), matcher.StartsWith("interface"), matcher.StartsWith("cost")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router ospf"), matcher.StartsWith("router-id")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router ospf"), matcher.StartsWith("area"), matcher.StartsWith("message-digest-key")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router ospf"), matcher.StartsWith("max-metric router-lsa")}},
			{Lineage: []matcher.Rule{matcher.Eq("l2vpn"), matcher.StartsWith("router-id")}},
			{Lineage: []matcher.Rule{matcher.ReSearch(`logging \d+.\d+.\d+.\d+ vrf MGMT`)}},
			{Lineage: []matcher.Rule{matcher.Eq("line default"), matcher.StartsWith("access-class ingress")}},
			{Lineage: []matcher.Rule{matcher.Eq("line default"), matcher.StartsWith("transport input")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("hostname")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("logging source-interface")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("ipv4 address")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("snmp-server community")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("snmp-server location")}},
			{Lineage: []matcher.Rule{matcher.Eq("line console"), matcher.StartsWith("exec-timeout")}},
			{Lineage: []matcher.Rule{matcher.Eq("mpls ldp"), matcher.StartsWith("session protection duration")}},
			{Lineage: []matcher.Rule{matcher.Eq("mpls ldp"), matcher.StartsWith("igp sync delay")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("mtu")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("banner")}},
		},
	}}
}
