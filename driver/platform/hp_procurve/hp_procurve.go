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

// Package hp_procurve implements the HP_PROCURVE driver, grounded in
// original_source/hier_config/platforms/hp_procurve/driver.py. Besides
// the declarative rule table it layers regex-driven idempotent_for and
// negate_with helpers for aaa/radius/tacacs commands whose idempotence
// depends on a fixed-width word prefix rather than a lineage, and three
// post-load callbacks that normalize VLAN/port-range syntax into one
// line per interface.
package hp_procurve

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/netconfd/hierconfig/driver"
	"github.com/netconfd/hierconfig/matcher"
	"github.com/netconfd/hierconfig/rules"
	"github.com/netconfd/hierconfig/tree"
)

// Driver is the HP_PROCURVE platform driver.
type Driver struct {
	driver.Base
}

// New constructs the HP_PROCURVE driver.
func New() driver.Driver {
	d := &Driver{}
	d.Base = driver.NewBase(d, rules.HPProcurve, ruleSet())
	return d
}

func init() { driver.Register(rules.HPProcurve, New) }

type prefixRule struct {
	expr      string
	re        *regexp.Regexp
	stopIndex int
}

var idempotentPrefixRules = []prefixRule{
	{expr: `^aaa port-access authenticator \S+ (tx-period|supplicant-timeout) \d+$`, stopIndex: 5},
	{expr: `^aaa port-access \S+ auth-(priority|order) `, stopIndex: 4},
	{expr: `^aaa port-access authenticator \S+ client-limit \d+$`, stopIndex: 5},
	{expr: `^aaa port-access mac-based \S+ (addr-limit|logoff-period) \d+$`, stopIndex: 5},
	{expr: `^aaa port-access \S+ critical-auth user-role `, stopIndex: 5},
	{expr: `^radius-server host \S+ encrypted-key \S+$`, stopIndex: 4},
}

type negateWithRule struct {
	expr     string
	re       *regexp.Regexp
	endIndex int
	prepend  string
	append   string
}

var negateWithRules = []negateWithRule{
	{expr: `^aaa port-access authenticator \S+ (tx-period|supplicant-timeout) \d+$`, endIndex: 5, prepend: "", append: "30"},
	{expr: `^aaa port-access authenticator \S+ client-limit \d+$`, endIndex: 5, prepend: "no", append: ""},
	{expr: `^aaa port-access mac-based \S+ addr-limit \d+$`, endIndex: 5, prepend: "", append: "1"},
	{expr: `^aaa port-access mac-based \S+ logoff-period \d+$`, endIndex: 5, prepend: "", append: "300"},
	{expr: `^aaa port-access \S+ critical-auth user-role `, endIndex: 5, prepend: "no", append: ""},
	{expr: `^tacacs-server host \S+ `, endIndex: 3, prepend: "no", append: ""},
	{expr: `^radius-server host \S+ time-window \d+$`, endIndex: 4, prepend: "", append: "300"},
	{expr: `^radius-server host \S+ time-window plus-or-minus-time-window$`, endIndex: 4, prepend: "", append: "positive-time-window"},
	{expr: `^radius-server host \S+ encrypted-key \S+$`, endIndex: 3, prepend: "no", append: ""},
}

func init() {
	for i := range idempotentPrefixRules {
		idempotentPrefixRules[i].re = regexp.MustCompile(idempotentPrefixRules[i].expr)
	}
	for i := range negateWithRules {
		negateWithRules[i].re = regexp.MustCompile(negateWithRules[i].expr)
	}
}

// IdempotentFor adds HP Procurve's word-prefix idempotence for top-level
// aaa/radius commands on top of the declarative table.
func (d *Driver) IdempotentFor(config *tree.Node, others []*tree.Node) *tree.Node {
	if result := d.Base.IdempotentFor(config, others); result != nil {
		return result
	}
	if config.Parent() != config.Root() {
		return nil
	}
	for _, r := range idempotentPrefixRules {
		if !r.re.MatchString(config.Text()) {
			continue
		}
		words := strings.Fields(config.Text())
		stop := r.stopIndex
		if stop > len(words) {
			stop = len(words)
		}
		prefix := strings.Join(words[:stop], " ")
		for _, other := range others {
			if strings.HasPrefix(other.Text(), prefix) {
				return other
			}
		}
	}
	return nil
}

// NegateWith adds HP Procurve's regex-driven negation templates on top
// of the negation_negate_with_rules table.
func (d *Driver) NegateWith(n *tree.Node) string {
	if result := d.Base.NegateWith(n); result != "" {
		return result
	}
	if n.Parent() != n.Root() {
		return ""
	}
	for _, r := range negateWithRules {
		if !r.re.MatchString(n.Text()) {
			continue
		}
		words := strings.Fields(n.Text())
		end := r.endIndex
		if end > len(words) {
			end = len(words)
		}
		parts := []string{}
		if r.prepend != "" {
			parts = append(parts, r.prepend)
		}
		parts = append(parts, words[:end]...)
		if r.append != "" {
			parts = append(parts, r.append)
		}
		return strings.TrimSpace(strings.Join(parts, " "))
	}
	return ""
}

func ruleSet() *driver.Rules {
	return &driver.Rules{
		Set: rules.Set{
			NegateWith: []rules.NegateWith{
				{Lineage: []matcher.Rule{matcher.StartsWith("interface "), matcher.Eq("disable")}, Use: "enable"},
				{Lineage: []matcher.Rule{matcher.StartsWith("interface "), matcher.StartsWith("name ")}, Use: "no name"},
			},
			PerLineSub: []rules.PerLineSub{
				{Search: `^\s*[#!].*`, Replace: ""},
				{Search: `^; .*`, Replace: ""},
				{Search: `^Running configuration:*`, Replace: ""},
			},
			IdempotentCommands: []rules.IdempotentCommands{
				{Lineage: []matcher.Rule{matcher.StartsWith("aaa authentication port-access eap-radius")}},
				{Lineage: []matcher.Rule{matcher.StartsWith("aaa accounting update periodic ")}},
				{Lineage: []matcher.Rule{matcher.StartsWith("interface "), matcher.StartsWith("untagged vlan ")}},
				{Lineage: []matcher.Rule{matcher.StartsWith("interface "), matcher.StartsWith("name ")}},
			},
			Ordering: []rules.Ordering{
				{Lineage: []matcher.Rule{matcher.ReSearch(`^no aaa port-access \S+ auth-priority`)}, Weight: -10},
				{Lineage: []matcher.Rule{matcher.ReSearch(`^no aaa port-access authenticator \S+$`)}, Weight: -10},
				{Lineage: []matcher.Rule{matcher.ReSearch(`^aaa server-group radius \S+ host `)}, Weight: 10},
				{Lineage: []matcher.Rule{matcher.StartsWith("interface "), matcher.StartsWith("no tagged vlan ", "no untagged vlan ")}, Weight: 10},
				{Lineage: []matcher.Rule{matcher.StartsWith("no tacacs-server ")}, Weight: 10},
				{Lineage: []matcher.Rule{matcher.ReSearch(`^no radius-server host \S+ dyn-authorization$`)}, Weight: 15},
				{Lineage: []matcher.Rule{matcher.ReSearch(`^no aaa server-group radius \S+ host `)}, Weight: 20},
				{Lineage: []matcher.Rule{matcher.ReSearch(`^no radius-server host \S+$`)}, Weight: 30},
			},
		},
		PostLoadCallbacks: []driver.PostLoadCallback{
			fixupAAAPortAccess,
			fixupDeviceProfile,
			fixupVLAN,
		},
	}
}

var aaaPortAccessExpr = regexp.MustCompile(`^aaa port-access (authenticator|mac-based) [0-9,/\-Ttrk]+$`)

// fixupAAAPortAccess expands "aaa port-access ... 1/15-1/20,1/26-..." range
// syntax into one line per interface.
func fixupAAAPortAccess(root *tree.Node) {
	for _, line := range append([]*tree.Node(nil), root.GetChildren(matcher.ReSearch(aaaPortAccessExpr.String()))...) {
		words := strings.Fields(line.Text())
		if len(words) < 4 {
			continue
		}
		if !strings.ContainsAny(words[3], "-,") {
			continue
		}
		for _, iface := range expandRange(words[3]) {
			root.AddChild("aaa port-access " + words[2] + " " + iface)
		}
		line.Delete()
	}
}

// fixupVLAN moves "vlan N / untagged|tagged <range>" config onto the
// individual interface stanzas, the representation this model diffs on.
func fixupVLAN(root *tree.Node) {
	for _, vlan := range append([]*tree.Node(nil), root.GetChildren(matcher.StartsWith("vlan "))...) {
		fields := strings.Fields(vlan.Text())
		if len(fields) < 2 {
			continue
		}
		vlanID := fields[1]
		if untagged := vlan.GetChild(matcher.StartsWith("untagged ")); untagged != nil {
			names := expandRange(strings.Fields(untagged.Text())[1])
			sort.Strings(names)
			for _, name := range names {
				root.AddChildrenDeep([]string{"interface " + name, "untagged vlan " + vlanID})
			}
			untagged.Delete()
		}
		if tagged := vlan.GetChild(matcher.StartsWith("tagged ")); tagged != nil {
			names := expandRange(strings.Fields(tagged.Text())[1])
			sort.Strings(names)
			for _, name := range names {
				root.AddChildrenDeep([]string{"interface " + name, "tagged vlan " + vlanID})
			}
			tagged.Delete()
		}
		if noUntagged := vlan.GetChild(matcher.StartsWith("no untagged ")); noUntagged != nil {
			noUntagged.Delete()
		}
	}
}

// fixupDeviceProfile splits a comma/range "tagged-vlan" list under a
// device-profile into one line per VLAN.
func fixupDeviceProfile(root *tree.Node) {
	for _, profile := range root.GetChildren(matcher.StartsWith("device-profile name ")) {
		taggedVlan := profile.GetChild(matcher.StartsWith("tagged-vlan "))
		if taggedVlan == nil {
			continue
		}
		words := strings.Fields(taggedVlan.Text())
		if len(words) < 2 || !strings.ContainsAny(words[1], "-,") {
			continue
		}
		vlans := expandRange(words[1])
		sort.Slice(vlans, func(i, j int) bool {
			ni, _ := strconv.Atoi(vlans[i])
			nj, _ := strconv.Atoi(vlans[j])
			return ni < nj
		})
		for _, v := range vlans {
			profile.AddChild("tagged-vlan " + v)
		}
		taggedVlan.Delete()
	}
}

// expandRange expands HP Procurve interface/VLAN ranges like
// "1/2-5,2/22-45" or "Trk1-Trk4" into individual tokens, grounded in
// original_source/hier_config/platforms/hp_procurve/functions.py's
// hp_procurve_expand_range.
func expandRange(s string) []string {
	var out []string
	for _, seg := range strings.Split(s, ",") {
		startStop := strings.SplitN(seg, "-", 2)
		if len(startStop) != 2 {
			out = append(out, seg)
			continue
		}
		start, end := startStop[0], startStop[1]
		stackMember, startPrefix := "", ""
		var startNum, endNum int
		switch {
		case strings.HasPrefix(start, "Trk"):
			stackMember = "Trk"
			startNum, _ = strconv.Atoi(strings.TrimPrefix(start, "Trk"))
			endNum, _ = strconv.Atoi(strings.TrimPrefix(end, "Trk"))
		case strings.Contains(start, "/"):
			parts := strings.SplitN(start, "/", 2)
			stackMember = parts[0] + "/"
			sn := parts[1]
			en := end[strings.LastIndex(end, "/")+1:]
			for _, letter := range []string{"A", "B", "C", "D"} {
				if strings.HasPrefix(sn, letter) {
					startPrefix = letter
					sn = strings.TrimPrefix(sn, letter)
					en = strings.TrimPrefix(en, letter)
					break
				}
			}
			startNum, _ = strconv.Atoi(sn)
			endNum, _ = strconv.Atoi(en)
		default:
			startNum, _ = strconv.Atoi(start)
			endNum, _ = strconv.Atoi(end)
		}
		for p := startNum; p <= endNum; p++ {
			out = append(out, stackMember+startPrefix+strconv.Itoa(p))
		}
	}
	return out
}
