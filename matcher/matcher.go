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

// Package matcher implements the text-matching primitive (component A of
// the hierconfig design) that every other package consults to decide
// whether a configuration line belongs to a rule.
package matcher

import (
	"regexp"
	"strings"
)

// Rule bundles an optional set of predicates against a single line of
// text. A Rule matches a text when every predicate that was specified
// matches; a Rule with no predicates set matches every text.
//
// Equals/Startswith/Endswith/Contains accept either a single string or a
// set of strings; Startswith/Endswith/Contains match if ANY member of the
// set matches. Equals matches if the text equals the string, or is a
// member of the set.
type Rule struct {
	Equals     []string
	Startswith []string
	Endswith   []string
	Contains   []string
	ReSearch   string

	// set by Compile; when nil, Matches compiles ReSearch on each call.
	re *regexp.Regexp
}

// Eq returns a Rule that matches text equal to s.
func Eq(s string) Rule { return Rule{Equals: []string{s}} }

// StartsWith returns a Rule that matches text with the given prefix.
func StartsWith(s ...string) Rule { return Rule{Startswith: s} }

// EndsWith returns a Rule that matches text with the given suffix.
func EndsWith(s ...string) Rule { return Rule{Endswith: s} }

// Has returns a Rule that matches text containing the given substring.
func Has(s ...string) Rule { return Rule{Contains: s} }

// ReSearch returns a Rule that matches text against a regular expression.
func ReSearch(expr string) Rule { return Rule{ReSearch: expr} }

// IsZero reports whether r specifies no predicates at all.
func (r Rule) IsZero() bool {
	return len(r.Equals) == 0 && len(r.Startswith) == 0 && len(r.Endswith) == 0 &&
		len(r.Contains) == 0 && r.ReSearch == ""
}

// Matches reports whether text satisfies every predicate named in r.
// Matches never returns an error: matchers are pure predicates, and an
// invalid regular expression is a programmer error that panics via
// MustCompile, in Compile or in the first Matches call that needs it.
func (r Rule) Matches(text string) bool {
	if len(r.Equals) > 0 && !oneOf(text, r.Equals) {
		return false
	}
	if len(r.Startswith) > 0 && !anyFunc(r.Startswith, func(p string) bool { return strings.HasPrefix(text, p) }) {
		return false
	}
	if len(r.Endswith) > 0 && !anyFunc(r.Endswith, func(p string) bool { return strings.HasSuffix(text, p) }) {
		return false
	}
	if len(r.Contains) > 0 && !anyFunc(r.Contains, func(p string) bool { return strings.Contains(text, p) }) {
		return false
	}
	if r.ReSearch != "" {
		re := r.re
		if re == nil {
			re = regexp.MustCompile(r.ReSearch)
		}
		if !re.MatchString(text) {
			return false
		}
	}
	return true
}

// Compile pre-compiles the ReSearch expression, if any, so that repeated
// calls to Matches do not re-compile it. rulesio calls this on the rules
// it loads; the drivers' built-in rule tables are not compiled this way.
func (r Rule) Compile() Rule {
	if r.ReSearch != "" && r.re == nil {
		r.re = regexp.MustCompile(r.ReSearch)
	}
	return r
}

func oneOf(text string, set []string) bool {
	return anyFunc(set, func(s string) bool { return text == s })
}

func anyFunc(set []string, pred func(string) bool) bool {
	for _, s := range set {
		if pred(s) {
			return true
		}
	}
	return false
}

// LineageMatches reports whether a sequence of Rules matches a lineage of
// texts root->node (inclusive of node, exclusive of the root itself). The
// lengths must match exactly; rule i is checked against ancestorTexts[i].
func LineageMatches(rs []Rule, ancestorTexts []string) bool {
	if len(rs) != len(ancestorTexts) {
		return false
	}
	for i, r := range rs {
		if !r.Matches(ancestorTexts[i]) {
			return false
		}
	}
	return true
}
