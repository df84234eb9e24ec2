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

// Package rulesio loads rules.UnusedObjectRule and rules.TagRule tables
// from YAML or JSON documents, grounded in
// original_source/hier_config/unused_object_helpers.py's
// load_unused_object_rules_from_yaml/load_unused_object_rules_from_json:
// a deployment wants to add or adjust unused-object and tagging rules
// without recompiling a driver/platform package. YAML decoding uses
// gopkg.in/yaml.v3; JSON uses stdlib encoding/json, since both decode
// into the same intermediate document shape below.
package rulesio

import (
	"encoding/json"
	"fmt"

	"github.com/netconfd/hierconfig/matcher"
	"github.com/netconfd/hierconfig/rules"
	"gopkg.in/yaml.v3"
)

// matcherRuleDoc is the wire shape of a matcher.Rule: exactly one of its
// fields should be set per entry.
type matcherRuleDoc struct {
	Equals     []string `yaml:"equals,omitempty" json:"equals,omitempty"`
	StartsWith []string `yaml:"starts_with,omitempty" json:"starts_with,omitempty"`
	EndsWith   []string `yaml:"ends_with,omitempty" json:"ends_with,omitempty"`
	Contains   []string `yaml:"contains,omitempty" json:"contains,omitempty"`
	ReSearch   string   `yaml:"re_search,omitempty" json:"re_search,omitempty"`
}

func (d matcherRuleDoc) toRule() matcher.Rule {
	return matcher.Rule{
		Equals:     d.Equals,
		Startswith: d.StartsWith,
		Endswith:   d.EndsWith,
		Contains:   d.Contains,
		ReSearch:   d.ReSearch,
	}.Compile()
}

func toLineage(docs []matcherRuleDoc) []matcher.Rule {
	out := make([]matcher.Rule, len(docs))
	for i, d := range docs {
		out[i] = d.toRule()
	}
	return out
}

type referencePatternDoc struct {
	MatchRules     []matcherRuleDoc `yaml:"match_rules" json:"match_rules"`
	ExtractRegex   string           `yaml:"extract_regex" json:"extract_regex"`
	ReferenceType  string           `yaml:"reference_type" json:"reference_type"`
	IgnorePatterns []string         `yaml:"ignore_patterns,omitempty" json:"ignore_patterns,omitempty"`
	CaptureGroup   int              `yaml:"capture_group,omitempty" json:"capture_group,omitempty"`
}

// unusedObjectRuleDoc is the wire shape of a rules.UnusedObjectRule.
type unusedObjectRuleDoc struct {
	ObjectType          string                `yaml:"object_type" json:"object_type"`
	DefinitionMatch     []matcherRuleDoc      `yaml:"definition_match" json:"definition_match"`
	DefinitionNameRegex string                `yaml:"definition_name_regex" json:"definition_name_regex"`
	ReferencePatterns   []referencePatternDoc `yaml:"reference_patterns" json:"reference_patterns"`
	RemovalTemplate     string                `yaml:"removal_template" json:"removal_template"`
	RemovalOrderWeight  int                   `yaml:"removal_order_weight,omitempty" json:"removal_order_weight,omitempty"`
	CaseSensitive       bool                  `yaml:"case_sensitive,omitempty" json:"case_sensitive,omitempty"`
	AllowInComment      bool                  `yaml:"allow_in_comment,omitempty" json:"allow_in_comment,omitempty"`
	RequireExactMatch   bool                  `yaml:"require_exact_match,omitempty" json:"require_exact_match,omitempty"`
}

func (d unusedObjectRuleDoc) toRule() rules.UnusedObjectRule {
	patterns := make([]rules.ReferencePattern, len(d.ReferencePatterns))
	for i, p := range d.ReferencePatterns {
		patterns[i] = rules.ReferencePattern{
			MatchRules:     toLineage(p.MatchRules),
			ExtractRegex:   p.ExtractRegex,
			ReferenceType:  p.ReferenceType,
			IgnorePatterns: p.IgnorePatterns,
			CaptureGroup:   p.CaptureGroup,
		}
	}
	return rules.UnusedObjectRule{
		ObjectType:          d.ObjectType,
		DefinitionMatch:     toLineage(d.DefinitionMatch),
		DefinitionNameRegex: d.DefinitionNameRegex,
		ReferencePatterns:   patterns,
		RemovalTemplate:     d.RemovalTemplate,
		RemovalOrderWeight:  d.RemovalOrderWeight,
		CaseSensitive:       d.CaseSensitive,
		AllowInComment:      d.AllowInComment,
		RequireExactMatch:   d.RequireExactMatch,
	}
}

// tagRuleDoc is the wire shape of a rules.TagRule.
type tagRuleDoc struct {
	Lineage   []matcherRuleDoc `yaml:"lineage" json:"lineage"`
	ApplyTags []string         `yaml:"apply_tags" json:"apply_tags"`
}

func (d tagRuleDoc) toRule() rules.TagRule {
	return rules.TagRule{Lineage: toLineage(d.Lineage), ApplyTags: d.ApplyTags}
}

// rulesDoc is the top-level document shape both loaders
// decode into: a list under "unused_object_rules" and, optionally, one
// under "tag_rules".
type rulesDoc struct {
	UnusedObjectRules []unusedObjectRuleDoc `yaml:"unused_object_rules" json:"unused_object_rules"`
	TagRules          []tagRuleDoc          `yaml:"tag_rules" json:"tag_rules"`
}

// LoadUnusedObjectRulesYAML parses a YAML document's "unused_object_rules"
// list into rules.UnusedObjectRule values.
func LoadUnusedObjectRulesYAML(data []byte) ([]rules.UnusedObjectRule, error) {
	var doc rulesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("rulesio: decode yaml: %w", err)
	}
	return toUnusedObjectRules(doc.UnusedObjectRules), nil
}

// LoadUnusedObjectRulesJSON parses a JSON document's "unused_object_rules"
// list into rules.UnusedObjectRule values.
func LoadUnusedObjectRulesJSON(data []byte) ([]rules.UnusedObjectRule, error) {
	var doc rulesDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("rulesio: decode json: %w", err)
	}
	return toUnusedObjectRules(doc.UnusedObjectRules), nil
}

// LoadTagRulesYAML parses a YAML document's "tag_rules" list into
// rules.TagRule values.
func LoadTagRulesYAML(data []byte) ([]rules.TagRule, error) {
	var doc rulesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("rulesio: decode yaml: %w", err)
	}
	return toTagRules(doc.TagRules), nil
}

func toUnusedObjectRules(docs []unusedObjectRuleDoc) []rules.UnusedObjectRule {
	out := make([]rules.UnusedObjectRule, len(docs))
	for i, d := range docs {
		out[i] = d.toRule()
	}
	return out
}

func toTagRules(docs []tagRuleDoc) []rules.TagRule {
	out := make([]rules.TagRule, len(docs))
	for i, d := range docs {
		out[i] = d.toRule()
	}
	return out
}
