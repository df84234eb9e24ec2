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

// Package cisco_nxos implements the CISCO_NXOS driver, grounded in
// original_source/hier_config/platforms/cisco_nxos/driver.py.
package cisco_nxos

import (
	"github.com/netconfd/hierconfig/driver"
	"github.com/netconfd/hierconfig/matcher"
	"github.com/netconfd/hierconfig/rules"
)

// Driver is the CISCO_NXOS platform driver.
type Driver struct {
	driver.Base
}

// New constructs the CISCO_NXOS driver.
func New() driver.Driver {
	d := &Driver{}
	d.Base = driver.NewBase(d, rules.CiscoNXOS, ruleSet())
	return d
}

func init() { driver.Register(rules.CiscoNXOS, New) }

func ruleSet() *driver.Rules {
	return &driver.Rules{Set: rules.Set{
		PerLineSub: []rules.PerLineSub{
			{Search: `^Building configuration.*`, Replace: ""},
			{Search: `^Current configuration.*`, Replace: ""},
			{Search: `^ntp clock-period .*`, Replace: ""},
			{Search: `^snmp-server location  `, Replace: "snmp-server location "},
			{Search: `^version.*`, Replace: ""},
			{Search: `^boot (system|kickstart) .*`, Replace: ""},
			{Search: `!.*`, Replace: ""},
		},
		IdempotentCommandsAvoid: []rules.IdempotentCommandsAvoid{
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.ReSearch(`ip address.*secondary`)}},
		},
		IdempotentCommands: []rules.IdempotentCommands{
			{Lineage: []matcher.Rule{matcher.StartsWith("power redundancy-mode")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("cli alias name wr ")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("aaa authentication login console")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("port-channel load-balance")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("hostname ")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("ip tftp source-interface")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("ip telnet source-interface")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("ip tacacs source-interface")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("logging source-interface")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("hardware access-list tcam region ifacl")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("hardware access-list tcam region vacl")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("hardware access-list tcam region qos")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("hardware access-list tcam region racl")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("hardware access-list tcam region ipv6-racl")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("hardware access-list tcam region e-ipv6-racl")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("hardware access-list tcam region l3qos")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router ospf"), matcher.StartsWith("vrf"), matcher.StartsWith("maximum-paths")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router ospf"), matcher.StartsWith("vrf"), matcher.StartsWith("log-adjacency-changes")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router ospf"), matcher.StartsWith("maximum-paths")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router ospf"), matcher.StartsWith("log-adjacency-changes")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("vrf"), matcher.StartsWith("address-family"), matcher.StartsWith("maximum-paths")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("address-family"), matcher.StartsWith("maximum-paths")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("template"), matcher.StartsWith("address-family"), matcher.StartsWith("send-community")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.ReSearch(`^hsrp \d+`), matcher.StartsWith("ip")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.ReSearch(`^hsrp \d+`), matcher.StartsWith("priority")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.ReSearch(`^hsrp \d+`), matcher.StartsWith("authentication md5 key-string")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("ip address")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("duplex")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("speed")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("switchport mode")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("switchport access vlan")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("switchport trunk native vlan")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("switchport trunk allowed vlan")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("udld port")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("ip ospf cost")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("ipv6 link-local")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("ospfv3 cost")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("mtu")}},
			{Lineage: []matcher.Rule{matcher.Eq("line console"), matcher.StartsWith("exec-timeout")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("line vty"), matcher.StartsWith("transport input")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("line vty"), matcher.StartsWith("ipv6 access-class")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("line vty"), matcher.StartsWith("access-class")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("bgp router-id")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.ReSearch(`neighbor \S+ description`)}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router ospf"), matcher.StartsWith("router-id")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router ospf"), matcher.StartsWith("log-adjacency-changes")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("ipv6 router ospf"), matcher.StartsWith("router-id")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("ipv6 router ospf"), matcher.StartsWith("log-adjacency-changes")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("mac address-table aging-time")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("snmp-server community")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("snmp-server location")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("vpc domain"), matcher.StartsWith("role priority")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("banner")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("username admin password 5")}},
			{Lineage: []matcher.Rule{matcher.Eq("policy-map type control-plane copp-system-policy"), matcher.StartsWith("class"), matcher.StartsWith("police")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("vrf"), matcher.StartsWith("neighbor"), matcher.StartsWith("address-family"), matcher.StartsWith("soft-reconfiguration inbound")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("vrf"), matcher.StartsWith("neighbor"), matcher.StartsWith("password")}},
		},
		NegationDefaultWhen: []rules.NegationDefaultWhen{
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.Rule{Startswith: []string{"ip ospf bfd"}, ReSearch: `standby \d+ authentication md5 key-string`}}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("neighbor"), matcher.StartsWith("address-family"), matcher.Eq("send-community")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.Has("ip ospf passive-interface")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.Has("ospfv3 passive-interface")}},
		},
		NegateWith: []rules.NegateWith{
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("address-family"), matcher.StartsWith("maximum-paths ibgp")}, Use: "default maximum-paths ibgp"},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("vrf"), matcher.StartsWith("address-family"), matcher.StartsWith("maximum-paths ibgp")}, Use: "default maximum-paths ibgp"},
			{Lineage: []matcher.Rule{matcher.Eq("line vty"), matcher.StartsWith("session-limit")}, Use: "session-limit 32"},
		},
	}}
}
