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

// Package rules holds the declarative, immutable rule tables (component C)
// that a Driver consults. Every rule category here is grounded in
// original_source/hier_config/models.py and the per-platform driver rule
// tables under original_source/hier_config/platforms/*/driver.py.
package rules

import "github.com/netconfd/hierconfig/matcher"

// Platform is the closed enumeration of network operating systems the
// driver registry knows how to build a Driver for (spec.md §6).
type Platform int

const (
	Unknown Platform = iota
	AristaEOS
	CiscoIOS
	CiscoNXOS
	CiscoXR
	Generic
	HPComware5
	HPProcurve
	JuniperJunos
	VyOS
	FortinetFortiOS
	FortigateFortiOS
)

func (p Platform) String() string {
	switch p {
	case AristaEOS:
		return "ARISTA_EOS"
	case CiscoIOS:
		return "CISCO_IOS"
	case CiscoNXOS:
		return "CISCO_NXOS"
	case CiscoXR:
		return "CISCO_XR"
	case Generic:
		return "GENERIC"
	case HPComware5:
		return "HP_COMWARE5"
	case HPProcurve:
		return "HP_PROCURVE"
	case JuniperJunos:
		return "JUNIPER_JUNOS"
	case VyOS:
		return "VYOS"
	case FortinetFortiOS:
		return "FORTINET_FORTIOS"
	case FortigateFortiOS:
		return "FORTIGATE_FORTIOS"
	default:
		return "UNKNOWN"
	}
}

// SectionalExiting closes a matched section with a synthesized exit_text
// line at emission time (it is never stored in the parsed tree).
type SectionalExiting struct {
	Lineage  []matcher.Rule
	ExitText string
}

// SectionalOverwrite causes the differ to negate-and-recreate a whole
// changed section rather than compute an interior delta.
type SectionalOverwrite struct {
	Lineage []matcher.Rule
}

// SectionalOverwriteNoNegate is SectionalOverwrite without the preceding
// negation (re-add only).
type SectionalOverwriteNoNegate struct {
	Lineage []matcher.Rule
}

// Ordering assigns an emission order_weight to matched nodes.
type Ordering struct {
	Lineage []matcher.Rule
	Weight  int
}

// IndentAdjust treats lines between two regex matches as one level deeper
// during parsing (used for constructs the parser otherwise misindents).
type IndentAdjust struct {
	StartExpression string
	EndExpression   string
}

// ParentAllowsDuplicateChild permits duplicate-text children under a
// matched parent lineage.
type ParentAllowsDuplicateChild struct {
	Lineage []matcher.Rule
}

// FullTextSub is applied once to the entire pre-parse text.
type FullTextSub struct {
	Search  string
	Replace string
}

// PerLineSub is applied to each physical line, after banner aggregation.
type PerLineSub struct {
	Search  string
	Replace string
}

// IdempotentCommands declares that two commands sharing this lineage
// replace one another rather than coexist.
type IdempotentCommands struct {
	Lineage []matcher.Rule
}

// IdempotentCommandsAvoid excludes matches from idempotent treatment.
type IdempotentCommandsAvoid struct {
	Lineage []matcher.Rule
}

// NegationDefaultWhen switches negation to the "default " form instead of
// the driver's negation prefix.
type NegationDefaultWhen struct {
	Lineage []matcher.Rule
}

// NegateWith replaces negation with a verbatim replacement line.
type NegateWith struct {
	Lineage []matcher.Rule
	Use     string
}

// TagRule is applied by the workflow façade to tag matched remediation
// subtrees for selective application.
type TagRule struct {
	Lineage   []matcher.Rule
	ApplyTags []string
}

// Set is the full table of declarative rules a Driver owns. All fields are
// immutable once a Driver is constructed (spec.md §5). Post-load callbacks
// are not part of Set because they close over the concrete tree type; see
// driver.Rules, which embeds Set and adds them.
type Set struct {
	SectionalExiting           []SectionalExiting
	SectionalOverwrite         []SectionalOverwrite
	SectionalOverwriteNoNegate []SectionalOverwriteNoNegate
	Ordering                   []Ordering
	IndentAdjust               []IndentAdjust
	ParentAllowsDuplicateChild []ParentAllowsDuplicateChild
	FullTextSub                []FullTextSub
	PerLineSub                 []PerLineSub
	IdempotentCommands         []IdempotentCommands
	IdempotentCommandsAvoid    []IdempotentCommandsAvoid
	NegationDefaultWhen        []NegationDefaultWhen
	NegateWith                 []NegateWith
	UnusedObjectRules          []UnusedObjectRule
}

// ReferencePattern locates lines that reference an object and extracts the
// referenced name from them.
type ReferencePattern struct {
	MatchRules     []matcher.Rule
	ExtractRegex   string
	ReferenceType  string
	IgnorePatterns []string
	CaptureGroup   int // default 1 when zero
}

// UnusedObjectRule drives the unused-object analyzer (component H).
type UnusedObjectRule struct {
	ObjectType      string
	DefinitionMatch []matcher.Rule
	// DefinitionNameRegex extracts the defined object's name from a line
	// that DefinitionMatch matched; capture group 1 is used when the regex
	// has one, otherwise the whole match.
	DefinitionNameRegex string
	ReferencePatterns   []ReferencePattern
	RemovalTemplate     string
	RemovalOrderWeight  int
	CaseSensitive       bool
	AllowInComment      bool
	RequireExactMatch   bool
}
