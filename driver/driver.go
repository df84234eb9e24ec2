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

// Package driver implements component D: per-platform behavior hooks
// layered on top of the declarative rule.Set tables. Base supplies the
// default implementation of every hook (grounded in
// original_source/hier_config/platforms/driver_base.py); concrete
// platform types under driver/platform/* embed Base and override only
// the hooks their platform's original driver.py overrides.
package driver

import (
	"errors"
	"strings"

	"github.com/netconfd/hierconfig/rules"
	"github.com/netconfd/hierconfig/tree"
)

// ErrUnsupportedPlatform is returned by a registry lookup for a platform
// with no registered driver (original's get_hconfig_driver raises
// ValueError for the same condition).
var ErrUnsupportedPlatform = errors.New("driver: unsupported platform")

// Driver is the full hook surface a platform must implement; it is a
// superset of tree.Driver so that tree never needs to know about rules
// directly beyond what tree.Driver already requires.
type Driver interface {
	tree.Driver
	NegateWith(n *tree.Node) string
	PostLoadCallbacks() []PostLoadCallback
}

// PostLoadCallback runs once after parsing and sectional-exit stripping,
// before the tree is handed back to the caller (spec.md §4.5 step 9).
type PostLoadCallback func(*tree.Node)

// Rules augments rules.Set with the post-load callbacks a driver owns.
// Callbacks are kept out of rules.Set itself so that package rules never
// needs to import tree (see DESIGN.md).
type Rules struct {
	rules.Set
	PostLoadCallbacks []PostLoadCallback
}

// Base implements every Driver hook with the platform-agnostic default
// behavior from driver_base.py. Concrete platform types embed Base and
// shadow individual methods to override them; Base stores a self
// pointer so its own composite methods (Negate) dispatch back through
// the concrete type's overrides rather than its own defaults, mirroring
// Python's virtual dispatch through self.
type Base struct {
	self              Driver
	platform          rules.Platform
	negationPrefix    string
	declarationPrefix string
	rules             *Rules
}

// NewBase constructs a Base bound to self (the concrete platform driver
// being built) with the given platform identity and rule table. Callers
// that need non-default negation/declaration prefixes should follow with
// SetNegationPrefix/SetDeclarationPrefix.
func NewBase(self Driver, platform rules.Platform, r *Rules) Base {
	return Base{
		self:              self,
		platform:          platform,
		negationPrefix:    "no ",
		declarationPrefix: "",
		rules:             r,
	}
}

// SetNegationPrefix overrides the default "no " prefix (e.g. "undo " for
// HP Comware, "unset " for Fortinet/FortiGate, "delete " for set-style
// platforms).
func (b *Base) SetNegationPrefix(p string) { b.negationPrefix = p }

// SetDeclarationPrefix overrides the default empty declaration prefix
// (e.g. "set " for Juniper/VyOS/Fortinet/FortiGate).
func (b *Base) SetDeclarationPrefix(p string) { b.declarationPrefix = p }

func (b Base) Platform() rules.Platform   { return b.platform }
func (b Base) NegationPrefix() string     { return b.negationPrefix }
func (b Base) DeclarationPrefix() string  { return b.declarationPrefix }
func (b Base) Rules() *rules.Set          { return &b.rules.Set }
func (b Base) PostLoadCallbacks() []PostLoadCallback { return b.rules.PostLoadCallbacks }

// ConfigPreprocessor is a no-op by default; the Juniper driver overrides
// it to flatten brace-delimited config into set commands.
func (b Base) ConfigPreprocessor(text string) string { return text }

// SwapNegation toggles n's text between declared and negated form using
// the driver's negation/declaration prefixes (driver_base.py's
// swap_negation).
func (b Base) SwapNegation(n *tree.Node) *tree.Node {
	text := n.Text()
	if strings.HasPrefix(text, b.negationPrefix) {
		n.SetText(strings.TrimPrefix(text, b.negationPrefix))
	} else {
		n.SetText(b.negationPrefix + text)
	}
	return n
}

// NegateWith applies the driver's negation_negate_with_rules table,
// returning "" when nothing matches (driver_base.py's
// negation_negate_with_check). Platform overrides that add extra
// hand-written rules should fall back to this via Base.NegateWith.
func (b Base) NegateWith(n *tree.Node) string {
	for _, rule := range b.rules.NegateWith {
		if n.IsLineageMatch(rule.Lineage) {
			return rule.Use
		}
	}
	return ""
}

func negationDefaultWhenMatches(n *tree.Node, ruleset []rules.NegationDefaultWhen) bool {
	for _, rule := range ruleset {
		if n.IsLineageMatch(rule.Lineage) {
			return true
		}
	}
	return false
}

// Negate implements the full negation algorithm: a negate_with hit wins
// outright; otherwise a negation_default_when hit switches the negation
// form to "default "/un-prefixing; otherwise the driver's (possibly
// overridden) SwapNegation applies. Negate dispatches through b.self so
// that a platform override of NegateWith/SwapNegation is honored even
// though Negate itself is only ever defined on Base.
func (b Base) Negate(n *tree.Node) *tree.Node {
	if use := b.self.NegateWith(n); use != "" {
		n.SetText(use)
		return n
	}
	if negationDefaultWhenMatches(n, b.rules.NegationDefaultWhen) {
		text := n.Text()
		if strings.HasPrefix(text, b.negationPrefix) {
			n.SetText(strings.TrimPrefix(text, b.negationPrefix))
		} else {
			n.SetText("default " + text)
		}
		return n
	}
	return b.self.SwapNegation(n)
}

// IdempotentFor implements the default idempotent-command lookup: for
// each idempotent_commands rule whose lineage matches config, return the
// first of others whose lineage also matches it (driver_base.py's
// idempotent_for). Platforms with extra ad hoc idempotence call this
// too: cisco_xr, fortinet_fortios and fortigate_fortios fall back to it
// after their own checks fail, while hp_procurve consults it first and
// runs its own checks only when it finds nothing.
func (b Base) IdempotentFor(config *tree.Node, others []*tree.Node) *tree.Node {
	for _, rule := range b.rules.IdempotentCommands {
		if !config.IsLineageMatch(rule.Lineage) {
			continue
		}
		for _, other := range others {
			if other.IsLineageMatch(rule.Lineage) {
				return other
			}
		}
	}
	return nil
}

// Registry maps platforms to constructor functions; platform packages
// register themselves in their init() via Register, mirroring the
// original's get_hconfig_driver dispatch table but without constructors.go
// needing to import every platform package.
var registry = map[rules.Platform]func() Driver{}

// Register associates a platform with a driver constructor. Called from
// each driver/platform/* package's init().
func Register(p rules.Platform, ctor func() Driver) {
	registry[p] = ctor
}

// Get returns a freshly constructed Driver for platform, or
// ErrUnsupportedPlatform if no driver/platform/* package registered one.
func Get(p rules.Platform) (Driver, error) {
	ctor, ok := registry[p]
	if !ok {
		return nil, ErrUnsupportedPlatform
	}
	return ctor(), nil
}
