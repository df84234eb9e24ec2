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

// Package emit implements component G: rendering a tree.Node tree back to
// device text. Sectional-exit lines are never stored in the tree
// (rules.SectionalExiting's doc comment, and parser's stripSectionalExits); this package
// synthesizes them at render time per driver rule, the mirror image of
// the parser stripping them on the way in. Tag-based filtering reuses
// tree.Node.AddAncestorCopyOf to keep just enough ancestor context around
// a selected leaf set to be readable (spec.md §4/§6).
package emit

import (
	"sort"
	"strings"

	"github.com/netconfd/hierconfig/tree"
)

// Text renders every descendant of root, depth-first, in
// (order_weight, insertion_order) sibling order, with synthesized
// sectional-exit lines appended after a matched section's children.
func Text(root *tree.Node, style string) string {
	var b strings.Builder
	for _, c := range sortedChildren(root) {
		renderSubtree(&b, c, style)
	}
	return b.String()
}

// FilteredText renders only the nodes passing the tag include/exclude
// filter (tree.Node.AllChildrenSortedByTags), reattached under a fresh
// tree via AddAncestorCopyOf so each selected leaf keeps its ancestor
// lineage for context; shared ancestors collapse onto the same copy.
func FilteredText(root *tree.Node, include, exclude map[string]struct{}, style string) string {
	filtered := tree.NewRoot(root.Driver())
	for _, n := range root.AllChildrenSortedByTags(include, exclude) {
		filtered.AddAncestorCopyOf(n)
	}
	return Text(filtered, style)
}

// sortedChildren returns n's direct children in (order_weight,
// insertion_order) order; tree.Node keeps this sort internal to its own
// recursive traversals, so emit reimplements the one-level sort it needs
// to interleave rendering with sectional-exit synthesis.
func sortedChildren(n *tree.Node) []*tree.Node {
	kids := append([]*tree.Node(nil), n.Children()...)
	sort.SliceStable(kids, func(i, j int) bool {
		return kids[i].OrderWeight() < kids[j].OrderWeight()
	})
	return kids
}

func renderSubtree(b *strings.Builder, n *tree.Node, style string) {
	b.WriteString(n.CiscoStyleText(style, ""))
	b.WriteByte('\n')
	for _, c := range sortedChildren(n) {
		renderSubtree(b, c, style)
	}
	writeSectionalExit(b, n)
}

// writeSectionalExit appends a driver's SectionalExiting rule's exit_text
// after n's rendered children when n's own lineage matches the rule
// (cisco_ios's "exit-peer-policy"/"exit-peer-session"/"exit-address-family"
// under router bgp, stripped by the parser and never stored — spec.md §4,
// scenario S4).
func writeSectionalExit(b *strings.Builder, n *tree.Node) {
	if n.IsRoot() {
		return
	}
	drv := n.Driver()
	if drv == nil {
		return
	}
	for _, rule := range drv.Rules().SectionalExiting {
		if n.IsLineageMatch(rule.Lineage) {
			b.WriteString(strings.Repeat("  ", n.Depth()))
			b.WriteString(rule.ExitText)
			b.WriteByte('\n')
			return
		}
	}
}
