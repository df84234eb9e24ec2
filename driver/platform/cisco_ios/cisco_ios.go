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

// Package cisco_ios implements the CISCO_IOS driver, grounded in
// original_source/hier_config/platforms/cisco_ios/driver.py. It carries
// the logging-console negate_with rule and the three ACL post-load
// callbacks exercised by scenario S2 (spec.md §8) and S5.
package cisco_ios

import (
	"strconv"
	"strings"

	"github.com/netconfd/hierconfig/driver"
	"github.com/netconfd/hierconfig/matcher"
	"github.com/netconfd/hierconfig/rules"
	"github.com/netconfd/hierconfig/tree"
)

// Driver is the CISCO_IOS platform driver.
type Driver struct {
	driver.Base
}

// New constructs the CISCO_IOS driver.
func New() driver.Driver {
	d := &Driver{}
	d.Base = driver.NewBase(d, rules.CiscoIOS, ruleSet())
	return d
}

func init() { driver.Register(rules.CiscoIOS, New) }

func ruleSet() *driver.Rules {
	return &driver.Rules{
		Set: rules.Set{
			NegateWith: []rules.NegateWith{
				{
					Lineage: []matcher.Rule{matcher.StartsWith("logging console ")},
					Use:     "logging console debugging",
				},
			},
			SectionalExiting: []rules.SectionalExiting{
				{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("template peer-policy")}, ExitText: "exit-peer-policy"},
				{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("template peer-session")}, ExitText: "exit-peer-session"},
				{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("address-family")}, ExitText: "exit-address-family"},
			},
			Ordering: []rules.Ordering{
				{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("switchport mode ")}, Weight: -10},
				{Lineage: []matcher.Rule{matcher.StartsWith("no vlan filter")}, Weight: 200},
				{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("no shutdown")}, Weight: 200},
				{Lineage: []matcher.Rule{matcher.StartsWith("aaa group server tacacs+ "), matcher.StartsWith("no server ")}, Weight: 10},
				{Lineage: []matcher.Rule{matcher.StartsWith("no tacacs-server ")}, Weight: 10},
			},
			PerLineSub: []rules.PerLineSub{
				{Search: `^Building configuration.*`, Replace: ""},
				{Search: `^Current configuration.*`, Replace: ""},
				{Search: `^! Last configuration change.*`, Replace: ""},
				{Search: `^! NVRAM config last updated.*`, Replace: ""},
				{Search: `^ntp clock-period .*`, Replace: ""},
				{Search: `^version.*`, Replace: ""},
				{Search: `^ logging event link-status$`, Replace: ""},
				{Search: `^ logging event subif-link-status$`, Replace: ""},
				{Search: `^\s*ipv6 unreachables disable$`, Replace: ""},
				{Search: `^end$`, Replace: ""},
				{Search: `^\s*[#!].*`, Replace: ""},
				{Search: `^ no ip address`, Replace: ""},
				{Search: `^ exit-peer-policy`, Replace: ""},
				{Search: `^ exit-peer-session`, Replace: ""},
				{Search: `^ exit-address-family`, Replace: ""},
				{Search: `^crypto key generate rsa general-keys.*$`, Replace: ""},
			},
			IdempotentCommands: []rules.IdempotentCommands{
				{Lineage: []matcher.Rule{matcher.StartsWith("vlan"), matcher.StartsWith("name")}},
				{Lineage: []matcher.Rule{matcher.StartsWith("interface "), matcher.StartsWith("description ")}},
				{Lineage: []matcher.Rule{matcher.StartsWith("interface "), matcher.StartsWith("ip address ")}},
				{Lineage: []matcher.Rule{matcher.StartsWith("interface "), matcher.StartsWith("switchport mode ")}},
				{Lineage: []matcher.Rule{matcher.StartsWith("interface "), matcher.StartsWith("authentication host-mode ")}},
				{Lineage: []matcher.Rule{matcher.StartsWith("interface "), matcher.StartsWith("authentication event server dead action authorize vlan ")}},
				{Lineage: []matcher.Rule{matcher.StartsWith("errdisable recovery interval ")}},
				{Lineage: []matcher.Rule{matcher.ReSearch(`^(no )?logging console.*`)}},
			},
			UnusedObjectRules: []rules.UnusedObjectRule{
				{
					ObjectType:          "acl",
					DefinitionMatch:     []matcher.Rule{matcher.ReSearch(`^ip access-list (standard|extended) \S+$`)},
					DefinitionNameRegex: `^ip access-list (?:standard|extended) (\S+)$`,
					ReferencePatterns: []rules.ReferencePattern{
						{
							MatchRules:    []matcher.Rule{matcher.StartsWith("interface"), matcher.ReSearch(`^ip access-group \S+ (in|out)$`)},
							ExtractRegex:  `^ip access-group (\S+) (?:in|out)$`,
							ReferenceType: "ip access-group",
							CaptureGroup:  1,
						},
					},
					RemovalTemplate:    "no ip access-list extended {name}",
					RemovalOrderWeight: 5,
					RequireExactMatch:  true,
				},
			},
		},
		PostLoadCallbacks: []driver.PostLoadCallback{
			removeIPv6ACLSequenceNumbers,
			removeIPv4ACLRemarks,
			addACLSequenceNumbers,
		},
	}
}

// removeIPv6ACLSequenceNumbers strips the leading "sequence N" token IOS
// always emits on IPv6 ACL entries, so the tree compares on content, not
// on device-assigned sequence numbers.
func removeIPv6ACLSequenceNumbers(root *tree.Node) {
	for _, acl := range root.GetChildren(matcher.StartsWith("ipv6 access-list ")) {
		for _, entry := range acl.Children() {
			if strings.HasPrefix(entry.Text(), "sequence") {
				fields := strings.Fields(entry.Text())
				if len(fields) > 2 {
					entry.SetText(strings.Join(fields[2:], " "))
				}
			}
		}
	}
}

// removeIPv4ACLRemarks drops "remark" lines from IPv4 ACLs; remarks carry
// no semantic weight and otherwise cause spurious diffs.
func removeIPv4ACLRemarks(root *tree.Node) {
	for _, acl := range root.GetChildren(matcher.StartsWith("ip access-list ")) {
		for _, entry := range append([]*tree.Node(nil), acl.Children()...) {
			if strings.HasPrefix(entry.Text(), "remark") {
				entry.Delete()
			}
		}
	}
}

// addACLSequenceNumbers renumbers IPv4 ACL entries by tens, mirroring
// what IOS itself would assign, so permit/deny lines compare positionally
// the same way the device does.
func addACLSequenceNumbers(root *tree.Node) {
	for _, child := range root.Children() {
		if !strings.HasPrefix(child.Text(), "ip access-list") {
			continue
		}
		seq := 10
		for _, sub := range child.Children() {
			if strings.HasPrefix(sub.Text(), "permit") || strings.HasPrefix(sub.Text(), "deny") {
				sub.SetText(strconv.Itoa(seq) + " " + sub.Text())
				seq += 10
			}
		}
	}
}
