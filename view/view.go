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

// Package view implements read-only per-platform accessors over a parsed
// tree, grounded in original_source/hier_config/platforms/view_base.py
// and the per-platform view.py files (cisco_ios, cisco_nxos, cisco_xr,
// arista_eos, hp_procurve). view_base.py exposes a much larger surface
// (duplex, PoE, NAC, stack members, ...) than a remediation engine needs;
// this package keeps the subset that a remediation or report caller
// plausibly wants to ask about a config — hostname, interfaces, VLANs —
// and returns ErrUnsupportedPlatform for every platform the original's
// get_hconfig_view also has no view for.
package view

import (
	"errors"
	"strconv"
	"strings"

	"github.com/netconfd/hierconfig/matcher"
	"github.com/netconfd/hierconfig/rules"
	"github.com/netconfd/hierconfig/tree"
)

// ErrUnsupportedPlatform is returned by New for a platform with no
// registered view (original_source's get_hconfig_view raises ValueError
// for the same condition).
var ErrUnsupportedPlatform = errors.New("view: unsupported platform")

var supported = map[rules.Platform]bool{
	rules.CiscoIOS:   true,
	rules.CiscoNXOS:  true,
	rules.CiscoXR:    true,
	rules.AristaEOS:  true,
	rules.HPProcurve: true,
}

// ConfigView is a read-only accessor over a parsed tree. It never mutates
// the tree it wraps.
type ConfigView struct {
	root *tree.Node
}

// New wraps root in a ConfigView, or returns ErrUnsupportedPlatform if
// root's driver platform has no view implementation.
func New(root *tree.Node) (*ConfigView, error) {
	if !supported[root.Driver().Platform()] {
		return nil, ErrUnsupportedPlatform
	}
	return &ConfigView{root: root}, nil
}

// Hostname returns the configured hostname, if any.
func (v *ConfigView) Hostname() (string, bool) {
	n := v.root.GetChild(matcher.StartsWith("hostname "))
	if n == nil {
		return "", false
	}
	return strings.TrimPrefix(n.Text(), "hostname "), true
}

// InterfaceView is a read-only accessor over one "interface ..." section.
type InterfaceView struct {
	node *tree.Node
}

// Node returns the underlying tree node (callers needing anything beyond
// this package's accessors can walk it directly).
func (iv InterfaceView) Node() *tree.Node { return iv.node }

// Name returns the interface's name, e.g. "GigabitEthernet0/1".
func (iv InterfaceView) Name() string {
	return strings.TrimSpace(strings.TrimPrefix(iv.node.Text(), "interface"))
}

// Description returns the interface's configured description, if any.
func (iv InterfaceView) Description() (string, bool) {
	n := iv.node.GetChild(matcher.StartsWith("description "))
	if n == nil {
		return "", false
	}
	return strings.TrimPrefix(n.Text(), "description "), true
}

// Enabled reports whether the interface is administratively up (no
// "shutdown" child).
func (iv InterfaceView) Enabled() bool {
	return iv.node.GetChild(matcher.Eq("shutdown")) == nil
}

// NativeVlan returns the access/native VLAN ID configured on the
// interface, if any: the access VLAN is read first, then a trunk's
// native VLAN.
func (iv InterfaceView) NativeVlan() (int, bool) {
	for _, prefix := range []string{"switchport access vlan ", "switchport trunk native vlan "} {
		n := iv.node.GetChild(matcher.StartsWith(prefix))
		if n == nil {
			continue
		}
		id, err := strconv.Atoi(strings.TrimPrefix(n.Text(), prefix))
		if err != nil {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

// IsBundleMember reports whether the interface belongs to a port-channel.
func (iv InterfaceView) IsBundleMember() (string, bool) {
	n := iv.node.GetChild(matcher.ReSearch(`^channel-group \d+`))
	if n == nil {
		return "", false
	}
	fields := strings.Fields(n.Text())
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}

// InterfaceViews returns a view over every top-level "interface ..."
// section.
func (v *ConfigView) InterfaceViews() []InterfaceView {
	nodes := v.root.GetChildren(matcher.StartsWith("interface "))
	out := make([]InterfaceView, len(nodes))
	for i, n := range nodes {
		out[i] = InterfaceView{node: n}
	}
	return out
}

// InterfaceViewByName returns the named interface's view, if present.
func (v *ConfigView) InterfaceViewByName(name string) (InterfaceView, bool) {
	for _, iv := range v.InterfaceViews() {
		if iv.Name() == name {
			return iv, true
		}
	}
	return InterfaceView{}, false
}

// InterfaceNamesMentioned returns the names of the top-level
// "interface ..." sections; a name mentioned only elsewhere in the config
// (e.g. in an access-group or OSPF network statement) is not included.
func (v *ConfigView) InterfaceNamesMentioned() map[string]struct{} {
	out := map[string]struct{}{}
	for _, iv := range v.InterfaceViews() {
		out[iv.Name()] = struct{}{}
	}
	return out
}

// Vlan is one "vlan N" section's id and configured name.
type Vlan struct {
	ID   int
	Name string
}

// Vlans returns every configured VLAN.
func (v *ConfigView) Vlans() []Vlan {
	var out []Vlan
	for _, n := range v.root.GetChildren(matcher.StartsWith("vlan ")) {
		id, err := strconv.Atoi(strings.TrimPrefix(n.Text(), "vlan "))
		if err != nil {
			continue
		}
		vlan := Vlan{ID: id}
		if nameNode := n.GetChild(matcher.StartsWith("name ")); nameNode != nil {
			vlan.Name = strings.TrimPrefix(nameNode.Text(), "name ")
		}
		out = append(out, vlan)
	}
	return out
}
