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

// Package unused implements component H: scanning a config tree for
// objects a driver's rules.UnusedObjectRule table says are "defined" but
// never "referenced" (original_source/hier_config/unused_object_helpers.py),
// and synthesizing the removal command for each. Scenario S6 (spec.md §8):
// an IOS ACL defined but never applied under an interface.
package unused

import (
	"regexp"
	"strings"

	"github.com/derekparker/trie"
	"github.com/golang/glog"
	"github.com/netconfd/hierconfig/rules"
	"github.com/netconfd/hierconfig/tree"
)

// Finding is one unreferenced object: its type, extracted name, the
// definition node it was found on, and the rendered removal command (empty
// when the rule's RemovalTemplate referenced an unknown placeholder).
type Finding struct {
	ObjectType string
	Name       string
	Node       *tree.Node
	Removal    string
}

// Analyze runs every UnusedObjectRule the tree's driver carries against
// root and returns every unreferenced definition found, in rule-table
// order.
func Analyze(root *tree.Node) []Finding {
	drv := root.Driver()
	if drv == nil {
		return nil
	}
	var out []Finding
	for _, rule := range drv.Rules().UnusedObjectRules {
		out = append(out, analyzeRule(root, rule)...)
	}
	return out
}

func analyzeRule(root *tree.Node, rule rules.UnusedObjectRule) []Finding {
	nameRe, err := regexp.Compile(caseWrap(rule.DefinitionNameRegex, rule.CaseSensitive))
	if err != nil {
		glog.Errorf("unused: bad DefinitionNameRegex for %s: %v", rule.ObjectType, err)
		return nil
	}

	refs := collectReferences(root, rule)

	var out []Finding
	for _, def := range root.GetChildrenDeep(rule.DefinitionMatch) {
		name, ok := extract(nameRe, 1, def.Text())
		if !ok {
			continue
		}
		if referenced(refs, name, rule.RequireExactMatch) {
			continue
		}
		out = append(out, Finding{
			ObjectType: rule.ObjectType,
			Name:       name,
			Node:       def,
			Removal:    renderRemoval(rule.RemovalTemplate, rule.ObjectType, name),
		})
	}
	return out
}

// collectReferences builds a trie over every name extracted by rule's
// ReferencePatterns, matched anywhere in the tree (derekparker/trie, as
// gnmidiff's setrequest.go and set_to_get.go use it for path membership
// and conflict lookups — here it is a name index instead of a path index).
func collectReferences(root *tree.Node, rule rules.UnusedObjectRule) *trie.Trie {
	t := trie.New()
	for _, pat := range rule.ReferencePatterns {
		extractRe, err := regexp.Compile(caseWrap(pat.ExtractRegex, rule.CaseSensitive))
		if err != nil {
			glog.Errorf("unused: bad ExtractRegex for %s/%s: %v", rule.ObjectType, pat.ReferenceType, err)
			continue
		}
		ignore := compileAll(pat.IgnorePatterns)

		for _, n := range root.AllChildren() {
			if !n.IsLineageMatch(pat.MatchRules) {
				continue
			}
			for _, line := range scanLines(n, rule.AllowInComment) {
				if anyMatches(ignore, line) {
					continue
				}
				if name, ok := extract(extractRe, pat.CaptureGroup, line); ok {
					t.Add(name, nil)
				}
			}
		}
	}
	return t
}

// scanLines returns the text a reference pattern may match against: the
// node's own line, plus its comments when allowInComment lets a reference
// noted only in a comment count.
func scanLines(n *tree.Node, allowInComment bool) []string {
	out := []string{n.Text()}
	if allowInComment {
		out = append(out, n.SortedComments()...)
	}
	return out
}

func compileAll(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if re, err := regexp.Compile(p); err == nil {
			out = append(out, re)
		}
	}
	return out
}

func anyMatches(res []*regexp.Regexp, line string) bool {
	for _, re := range res {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// caseWrap folds a pattern to case-insensitive matching unless the rule
// demands exact case.
func caseWrap(pattern string, caseSensitive bool) string {
	if caseSensitive || pattern == "" {
		return pattern
	}
	return "(?i)" + pattern
}

// extract returns the capture group (1 by default; CaptureGroup 0 also
// means "default to 1") from the first match of re in line, falling back
// to the whole match when the regex has no groups.
func extract(re *regexp.Regexp, group int, line string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	idx := group
	if idx == 0 {
		idx = 1
	}
	if idx >= len(m) {
		return m[0], true
	}
	return m[idx], true
}

// referenced reports whether name appears in refs. With exact matching it
// looks for name itself among the trie's keys (PrefixSearch(name) always
// includes exact matches, since every key is its own prefix); otherwise it
// accepts any reference name that merely contains name as a substring.
func referenced(refs *trie.Trie, name string, exact bool) bool {
	if exact {
		for _, k := range refs.PrefixSearch(name) {
			if k == name {
				return true
			}
		}
		return false
	}
	for _, k := range refs.Keys() {
		if strings.Contains(k, name) {
			return true
		}
	}
	return false
}

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

// renderRemoval substitutes {name} and {type} placeholders in tmpl.
// An unknown placeholder is logged and the removal is skipped: the result
// is "", so a misconfigured rule table never produces a malformed device
// command.
func renderRemoval(tmpl, objectType, name string) string {
	unknown := false
	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(ph string) string {
		switch ph[1 : len(ph)-1] {
		case "name":
			return name
		case "type":
			return objectType
		default:
			glog.Warningf("unused: unknown removal template placeholder %s, skipping removal", ph)
			unknown = true
			return ph
		}
	})
	if unknown {
		return ""
	}
	return out
}
