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

// Package parser implements component E: turning raw device-config text
// into a tree.Node tree, grounded in
// original_source/hier_config/constructors.py's get_hconfig/
// _load_from_string_lines/_analyze_indent/_adjust_indent/
// _config_from_string_lines_end_of_banner_test.
package parser

import (
	"errors"
	"regexp"
	"strings"

	"github.com/netconfd/hierconfig/driver"
	"github.com/netconfd/hierconfig/tree"
)

// ErrUnterminatedBanner is returned when the text ends while a banner
// opened by a "banner <name> <delimiter>" line is still open.
var ErrUnterminatedBanner = errors.New("parser: unterminated banner")

var bannerOpen = regexp.MustCompile(`^\s*banner\s+\S+\s+(\S)\s*$`)

// Parse builds a tree bound to drv from text: the full_text_sub table runs
// first, then the driver's own ConfigPreprocessor (the Juniper driver's
// brace-to-set flattening), then line-oriented loading, sectional-exit
// stripping, and finally the driver's post-load callbacks, in that order
// (constructors.py's get_hconfig).
func Parse(drv driver.Driver, text string) (*tree.Node, error) {
	text = applyFullTextSub(drv, text)
	text = drv.ConfigPreprocessor(text)

	root := tree.NewRoot(drv)
	if err := loadLines(drv, root, strings.Split(text, "\n")); err != nil {
		return nil, err
	}
	stripSectionalExits(drv, root)
	for _, cb := range drv.PostLoadCallbacks() {
		cb(root)
	}
	return root, nil
}

// ParseLines is Parse for text already split into physical lines (e.g.
// collected from a line-oriented transport), skipping full_text_sub (which
// only makes sense against a whole blob).
func ParseLines(drv driver.Driver, lines []string) (*tree.Node, error) {
	root := tree.NewRoot(drv)
	if err := loadLines(drv, root, lines); err != nil {
		return nil, err
	}
	stripSectionalExits(drv, root)
	for _, cb := range drv.PostLoadCallbacks() {
		cb(root)
	}
	return root, nil
}

func applyFullTextSub(drv driver.Driver, text string) string {
	for _, rule := range drv.Rules().FullTextSub {
		re, err := regexp.Compile(rule.Search)
		if err != nil {
			continue
		}
		text = re.ReplaceAllString(text, rule.Replace)
	}
	return text
}

// compilePerLineSub caches PerLineSub regex compilation for one Parse
// call; the rule table is static per driver but cheap enough to compile on
// each call rather than adding a caching layer to package driver.
func compilePerLineSub(drv driver.Driver) []perLineRule {
	rs := drv.Rules().PerLineSub
	out := make([]perLineRule, 0, len(rs))
	for _, r := range rs {
		re, err := regexp.Compile(r.Search)
		if err != nil {
			continue
		}
		out = append(out, perLineRule{re: re, replace: r.Replace})
	}
	return out
}

type perLineRule struct {
	re      *regexp.Regexp
	replace string
}

type indentAdjustRule struct {
	start *regexp.Regexp
	end   *regexp.Regexp
}

func compileIndentAdjust(drv driver.Driver) []indentAdjustRule {
	rs := drv.Rules().IndentAdjust
	out := make([]indentAdjustRule, 0, len(rs))
	for _, r := range rs {
		start, err := regexp.Compile(r.StartExpression)
		if err != nil {
			continue
		}
		end, err := regexp.Compile(r.EndExpression)
		if err != nil {
			continue
		}
		out = append(out, indentAdjustRule{start: start, end: end})
	}
	return out
}

// loadLines drives banner aggregation, per-line substitution, indent-adjust
// bookkeeping, and indent-based parent resolution over lines.
func loadLines(drv driver.Driver, root *tree.Node, lines []string) error {
	subs := compilePerLineSub(drv)
	adjusts := compileIndentAdjust(drv)

	current := root
	mostRecent := root
	adjustBonus := 0

	for i := 0; i < len(lines); i++ {
		raw := lines[i]

		if m := bannerOpen.FindStringSubmatch(raw); m != nil {
			delim := m[1]
			text, consumed, ok := collectBanner(raw, delim, lines[i+1:])
			if !ok {
				return ErrUnterminatedBanner
			}
			i += consumed
			child := current.AddChild(text)
			child.SetRealIndentLevel(indentOf(raw) + adjustBonus)
			mostRecent = child
			continue
		}

		line := raw
		for _, s := range subs {
			line = s.re.ReplaceAllString(line, s.replace)
		}
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		indent := indentOf(raw) + adjustBonus
		for indent <= current.RealIndentLevel() {
			current = current.Parent()
		}
		if indent > mostRecent.RealIndentLevel() && mostRecent != current {
			current = mostRecent
		}

		child := current.AddChild(text)
		child.SetRealIndentLevel(indent)
		mostRecent = child

		for _, a := range adjusts {
			switch {
			case a.start.MatchString(text):
				adjustBonus++
			case a.end.MatchString(text) && adjustBonus > 0:
				adjustBonus--
			}
		}
	}
	return nil
}

// collectBanner aggregates banner lines starting at open (already matched)
// through the first following line containing delim, joining them with
// newlines into a single node's text (constructors.py's
// _config_from_string_lines_end_of_banner_test). Returns the combined
// text, how many of rest were consumed, and whether a terminator was
// found.
func collectBanner(open, delim string, rest []string) (string, int, bool) {
	var b strings.Builder
	b.WriteString(strings.TrimRight(open, "\r"))
	for i, l := range rest {
		b.WriteByte('\n')
		b.WriteString(strings.TrimRight(l, "\r"))
		if strings.Contains(l, delim) {
			return b.String(), i + 1, true
		}
	}
	return "", len(rest), false
}

func indentOf(line string) int {
	n := 0
	for _, r := range line {
		if r == ' ' {
			n++
			continue
		}
		if r == '\t' {
			n += 8
			continue
		}
		break
	}
	return n
}

// stripSectionalExits removes lines synthesized purely by a section's
// parser framing (e.g. IOS's "exit-peer-policy") that a
// SectionalExiting rule declares, matched against the line's parent's
// lineage (constructors.py strips these from all_children() after load).
func stripSectionalExits(drv driver.Driver, root *tree.Node) {
	rules := drv.Rules().SectionalExiting
	if len(rules) == 0 {
		return
	}
	for _, n := range root.AllChildren() {
		parent := n.Parent()
		for _, rule := range rules {
			if n.Text() == rule.ExitText && parent.IsLineageMatch(rule.Lineage) {
				n.Delete()
				break
			}
		}
	}
}
