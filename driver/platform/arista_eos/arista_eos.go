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

// Package arista_eos implements the ARISTA_EOS driver, grounded in
// original_source/hier_config/platforms/arista_eos/driver.py.
package arista_eos

import (
	"github.com/netconfd/hierconfig/driver"
	"github.com/netconfd/hierconfig/matcher"
	"github.com/netconfd/hierconfig/rules"
)

// Driver is the ARISTA_EOS platform driver.
type Driver struct {
	driver.Base
}

// New constructs the ARISTA_EOS driver.
func New() driver.Driver {
	d := &Driver{}
	d.Base = driver.NewBase(d, rules.AristaEOS, ruleSet())
	return d
}

func init() { driver.Register(rules.AristaEOS, New) }

func ruleSet() *driver.Rules {
	return &driver.Rules{Set: rules.Set{
		SectionalExiting: []rules.SectionalExiting{
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("template peer-policy")}, ExitText: "exit-peer-policy"},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("template peer-session")}, ExitText: "exit-peer-session"},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("address-family")}, ExitText: "exit-address-family"},
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
		},
		IdempotentCommands: []rules.IdempotentCommands{
			{Lineage: []matcher.Rule{matcher.StartsWith("hostname")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("logging source-interface")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("ip address")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("line vty"), matcher.StartsWith("transport input")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("line vty"), matcher.StartsWith("access-class")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("line vty"), matcher.StartsWith("ipv6 access-class")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.ReSearch(`standby \d+ (priority|authentication md5)`)}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.StartsWith("bgp router-id")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router ospf"), matcher.StartsWith("router-id")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router ospf"), matcher.StartsWith("max-lsa")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router ospf"), matcher.StartsWith("maximum-paths")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("ipv6 router ospf"), matcher.StartsWith("router-id")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router ospf"), matcher.StartsWith("log-adjacency-changes")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("ipv6 router ospf"), matcher.StartsWith("log-adjacency-changes")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("router bgp"), matcher.ReSearch(`neighbor \S+ description`)}},
			{Lineage: []matcher.Rule{matcher.StartsWith("snmp-server community")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("snmp-server location")}},
			{Lineage: []matcher.Rule{matcher.Eq("line con 0"), matcher.StartsWith("exec-timeout")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("ip ospf message-digest-key")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("logging buffered")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("tacacs-server key")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("logging facility")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("vlan internal allocation policy")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("username admin")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("snmp-server user")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("banner")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("ntp source")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("management"), matcher.StartsWith("idle-timeout")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("aaa authentication enable default group tacacs+")}},
			{Lineage: []matcher.Rule{matcher.Eq("control-plane"), matcher.Eq("ip access-group CPP in")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.StartsWith("mtu")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("snmp-server source-interface")}},
			{Lineage: []matcher.Rule{matcher.StartsWith("ip tftp client source-interface")}},
		},
		NegationDefaultWhen: []rules.NegationDefaultWhen{
			{Lineage: []matcher.Rule{matcher.StartsWith("interface"), matcher.Eq("logging event link-status")}},
		},
	}}
}
