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

// Package tree implements the hierarchical configuration model (component
// B): an ordered tree of command lines with per-node metadata. A single
// Node type represents both the root and ordinary children, unlike the
// original Python implementation's separate HConfig/HConfigChild classes
// (original_source/hier_config/root.py, child.py) — root is simply the
// Node whose parent pointer is nil, and Node.Parent mirrors the Python
// root's "returns itself" behavior by computing it rather than storing a
// self-cycle (spec.md §9).
package tree

import (
	"regexp"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/netconfd/hierconfig/matcher"
	"github.com/netconfd/hierconfig/rules"
)

// UntaggedMarker is the distinguished "untagged" marker a leaf with an
// empty tag set reports, per spec.md §3: "a leaf with empty tag set is
// reported as {∅}".
const UntaggedMarker = "\x00untagged\x00"

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeText trims and collapses internal whitespace, as every driver's
// parser and AddChild must (spec.md §4.2).
func NormalizeText(text string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
}

// Driver is the subset of driver behavior the tree needs in order to
// implement duplicate-child rules, negation, and idempotence without
// importing the driver package (which itself imports tree). Concrete
// implementations live in package driver.
type Driver interface {
	Platform() rules.Platform
	NegationPrefix() string
	DeclarationPrefix() string
	SwapNegation(n *Node) *Node
	Negate(n *Node) *Node
	IdempotentFor(n *Node, others []*Node) *Node
	ConfigPreprocessor(text string) string
	Rules() *rules.Set
}

// Instance records per-device provenance attached to a node when trees
// from multiple devices are merged for reporting (spec.md §3).
type Instance struct {
	DeviceID string
	Tags     map[string]struct{}
	Comments map[string]struct{}
}

// Node is a single line of hierarchical configuration, or (when Parent()
// returns itself) the root of a tree.
type Node struct {
	text            string
	parent          *Node
	children        []*Node
	childIndex      map[string]*Node
	tags            map[string]struct{}
	comments        map[string]struct{}
	orderWeight     int
	newInConfig     bool
	instances       []Instance
	realIndentLevel int
	driver          Driver // only populated on the root
}

// NewRoot creates an empty tree bound to drv.
func NewRoot(drv Driver) *Node {
	return &Node{
		driver:          drv,
		childIndex:      map[string]*Node{},
		realIndentLevel: -1,
		orderWeight:     500,
	}
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Parent returns n's parent, or n itself if n is the root (spec.md §3:
// "Root exposes itself as its own parent to uniformize traversal").
func (n *Node) Parent() *Node {
	if n.parent == nil {
		return n
	}
	return n.parent
}

// Root returns the Node at the base of the tree.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Driver returns the driver bound to the tree this node belongs to.
func (n *Node) Driver() Driver { return n.Root().driver }

// Text returns the node's normalized command line. The root's Text is "".
func (n *Node) Text() string { return n.text }

// SetText overwrites the node's text directly, bypassing duplicate-child
// bookkeeping in the parent's index. Callers that need the index kept
// consistent should prefer Node.Negate, which rebuilds the parent's index
// after the driver has rewritten the text.
func (n *Node) SetText(text string) { n.text = text }

// Depth returns the distance to the root (root's depth is 0).
func (n *Node) Depth() int {
	d := 0
	for cur := n; cur.parent != nil; cur = cur.parent {
		d++
	}
	return d
}

// IsBranch reports whether n has children, or is the root (which is
// always considered a branch, even when empty).
func (n *Node) IsBranch() bool { return n.IsRoot() || len(n.children) > 0 }

// IsLeaf is the complement of IsBranch.
func (n *Node) IsLeaf() bool { return !n.IsBranch() }

// Children returns n's direct children in insertion order. The returned
// slice must not be mutated by callers.
func (n *Node) Children() []*Node { return n.children }

// OrderWeight returns the node's emission order weight (default 500).
func (n *Node) OrderWeight() int { return n.orderWeight }

// SetOrderWeight sets the node's emission order weight.
func (n *Node) SetOrderWeight(w int) { n.orderWeight = w }

// NewInConfig reports whether the diff introduced this node as an
// addition not already present on the source side.
func (n *Node) NewInConfig() bool { return n.newInConfig }

// SetNewInConfig marks the node (but not its descendants; callers that
// want the recursive behavior spec.md §4.6 describes should walk
// AllChildren themselves).
func (n *Node) SetNewInConfig(v bool) { n.newInConfig = v }

// RealIndentLevel returns the column at which the parser read this line.
// The root's sentinel is below zero.
func (n *Node) RealIndentLevel() int { return n.realIndentLevel }

// SetRealIndentLevel is parser bookkeeping, exported for package parser.
func (n *Node) SetRealIndentLevel(lvl int) { n.realIndentLevel = lvl }

// Instances returns the per-device provenance records attached by Merge.
func (n *Node) Instances() []Instance { return n.instances }

// Comments returns the free-form annotation set attached during diff.
func (n *Node) Comments() map[string]struct{} {
	if n.comments == nil {
		return map[string]struct{}{}
	}
	return n.comments
}

// AddComment attaches a free-form annotation to the node.
func (n *Node) AddComment(c string) {
	if n.comments == nil {
		n.comments = map[string]struct{}{}
	}
	n.comments[c] = struct{}{}
}

// SortedComments returns Comments in ascending order, for rendering.
func (n *Node) SortedComments() []string {
	out := make([]string, 0, len(n.comments))
	for c := range n.comments {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Tags returns the recursive view over leaf tags described in spec.md §3:
// reading on a branch returns the union over its leaves; a leaf with no
// tags of its own reports the distinguished UntaggedMarker.
func (n *Node) Tags() map[string]struct{} {
	if n.IsBranch() {
		found := map[string]struct{}{}
		for _, c := range n.children {
			for t := range c.Tags() {
				found[t] = struct{}{}
			}
		}
		return found
	}
	if len(n.tags) == 0 {
		return map[string]struct{}{UntaggedMarker: {}}
	}
	out := make(map[string]struct{}, len(n.tags))
	for t := range n.tags {
		out[t] = struct{}{}
	}
	return out
}

// SetTags replaces the tag set of every leaf under n (invariant 6: tags on
// a branch is a derived view; writing to a branch replaces the tag set of
// every leaf beneath it).
func (n *Node) SetTags(tags map[string]struct{}) {
	if n.IsBranch() {
		for _, c := range n.children {
			c.SetTags(tags)
		}
		return
	}
	cp := make(map[string]struct{}, len(tags))
	for t := range tags {
		cp[t] = struct{}{}
	}
	n.tags = cp
}

// AddTags adds to (rather than replacing) the tag set of every leaf under n.
func (n *Node) AddTags(tags map[string]struct{}) {
	if n.IsBranch() {
		for _, c := range n.children {
			c.AddTags(tags)
		}
		return
	}
	if n.tags == nil {
		n.tags = map[string]struct{}{}
	}
	for t := range tags {
		n.tags[t] = struct{}{}
	}
}

// duplicateChildAllowed determines whether duplicate(identical text)
// children are allowed directly under n (spec.md §4.2, invariant 3).
func (n *Node) duplicateChildAllowed() bool {
	drv := n.Driver()
	if drv == nil {
		return false
	}
	for _, rule := range drv.Rules().ParentAllowsDuplicateChild {
		if n.IsLineageMatch(rule.Lineage) {
			return true
		}
	}
	return false
}

// addChildOptions configures AddChild.
type addChildOptions struct {
	returnIfPresent bool
	forceDuplicate  bool
}

// AddChildOption configures AddChild's duplicate-handling behavior.
type AddChildOption func(*addChildOptions)

// ReturnIfPresent suppresses the duplicate-warning log entry when the
// child already exists (spec.md §4.2).
func ReturnIfPresent() AddChildOption {
	return func(o *addChildOptions) { o.returnIfPresent = true }
}

// ForceDuplicate allows a duplicate-text child to be created even when no
// parent_allows_duplicate_child rule matches.
func ForceDuplicate() AddChildOption {
	return func(o *addChildOptions) { o.forceDuplicate = true }
}

// AddChild normalizes text and either returns the existing first-occurrence
// child with that text, or creates and appends a new one (spec.md §4.2).
// Multi-line text, such as an aggregated banner, is only trimmed, so its
// line breaks are kept.
func (n *Node) AddChild(text string, opts ...AddChildOption) *Node {
	var cfg addChildOptions
	for _, o := range opts {
		o(&cfg)
	}
	if strings.Contains(text, "\n") {
		text = strings.TrimSpace(text)
	} else {
		text = NormalizeText(text)
	}

	existing, present := n.childIndex[text]
	if !present {
		return n.newChild(text)
	}
	if n.duplicateChildAllowed() || cfg.forceDuplicate {
		return n.newChild(text)
	}
	if !cfg.returnIfPresent && !strings.HasPrefix(text, "remark ") {
		glog.V(1).Infof("duplicate section under %v: %q", n.Path(), text)
	}
	return existing
}

func (n *Node) newChild(text string) *Node {
	child := &Node{
		parent:          n,
		text:            text,
		orderWeight:     500,
		realIndentLevel: -1,
		childIndex:      map[string]*Node{},
	}
	n.children = append(n.children, child)
	if _, exists := n.childIndex[text]; !exists {
		n.childIndex[text] = child
	}
	return child
}

// AddChildrenDeep repeatedly calls AddChild(ReturnIfPresent()), descending
// one level per text, and returns the deepest child created or found.
func (n *Node) AddChildrenDeep(texts []string) *Node {
	base := n
	for _, t := range texts {
		base = base.AddChild(t, ReturnIfPresent())
	}
	return base
}

// Delete removes n from its parent. Deleting the root is a no-op.
func (n *Node) Delete() {
	if n.IsRoot() {
		return
	}
	n.parent.deleteChild(n)
}

func (n *Node) deleteChild(child *Node) {
	filtered := n.children[:0:0]
	for _, c := range n.children {
		if c != child {
			filtered = append(filtered, c)
		}
	}
	n.children = filtered
	n.rebuildIndex()
}

// DeleteByText removes every direct child whose text equals text.
func (n *Node) DeleteByText(text string) {
	filtered := n.children[:0:0]
	for _, c := range n.children {
		if c.text != text {
			filtered = append(filtered, c)
		}
	}
	n.children = filtered
	n.rebuildIndex()
}

func (n *Node) rebuildIndex() {
	n.childIndex = make(map[string]*Node, len(n.children))
	for _, c := range n.children {
		if _, exists := n.childIndex[c.text]; !exists {
			n.childIndex[c.text] = c
		}
	}
}

// GetChild returns the first direct child matching rule, or nil.
func (n *Node) GetChild(rule matcher.Rule) *Node {
	if len(rule.Equals) == 1 && rule.Startswith == nil && rule.Endswith == nil &&
		rule.Contains == nil && rule.ReSearch == "" {
		return n.childIndex[rule.Equals[0]]
	}
	for _, c := range n.children {
		if rule.Matches(c.text) {
			return c
		}
	}
	return nil
}

// GetChildren returns every direct child matching rule.
func (n *Node) GetChildren(rule matcher.Rule) []*Node {
	var out []*Node
	for _, c := range n.children {
		if rule.Matches(c.text) {
			out = append(out, c)
		}
	}
	return out
}

// GetChildrenDeep returns every descendant whose root->descendant path
// matches lineage.
func (n *Node) GetChildrenDeep(lineage []matcher.Rule) []*Node {
	var out []*Node
	for _, c := range n.AllChildren() {
		if c.IsLineageMatch(lineage) {
			out = append(out, c)
		}
	}
	return out
}

// AllChildren returns every descendant in depth-first, insertion order.
func (n *Node) AllChildren() []*Node {
	var out []*Node
	for _, c := range n.children {
		out = append(out, c)
		out = append(out, c.AllChildren()...)
	}
	return out
}

// sortSiblings returns a stable-sorted copy of siblings by
// (order_weight, insertion_order), per invariant 5.
func sortSiblings(siblings []*Node) []*Node {
	out := make([]*Node, len(siblings))
	copy(out, siblings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].orderWeight < out[j].orderWeight
	})
	return out
}

// AllChildrenSorted returns every descendant, depth-first, with siblings
// at every level sorted by (order_weight, insertion_order).
func (n *Node) AllChildrenSorted() []*Node {
	var out []*Node
	for _, c := range sortSiblings(n.children) {
		out = append(out, c)
		out = append(out, c.AllChildrenSorted()...)
	}
	return out
}

// lineInclusionTest determines whether a leaf's tags pass an
// include/exclude filter (original_source/hier_config/child.py's
// line_inclusion_test).
func lineInclusionTest(tags, include, exclude map[string]struct{}) bool {
	includeLine := false
	if len(include) > 0 {
		includeLine = intersects(tags, include)
	}
	if len(exclude) > 0 && (includeLine || len(include) == 0) {
		includeLine = !intersects(tags, exclude)
	}
	return includeLine
}

func intersects(a, b map[string]struct{}) bool {
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	for k := range small {
		if _, ok := big[k]; ok {
			return true
		}
	}
	return false
}

// AllChildrenSortedByTags yields only nodes whose tags pass the
// include/exclude filter (spec.md §4.2).
func (n *Node) AllChildrenSortedByTags(include, exclude map[string]struct{}) []*Node {
	var out []*Node
	for _, c := range n.AllChildrenSorted() {
		if lineInclusionTest(c.Tags(), include, exclude) {
			out = append(out, c)
		}
	}
	return out
}

// IsLineageMatch applies matcher.LineageMatches to the path from root to
// n. An empty lineage is a universal match against every node, root
// included (used by rules like fortigate_fortios's
// parent_allows_duplicate_child, which applies everywhere).
func (n *Node) IsLineageMatch(lineage []matcher.Rule) bool {
	if len(lineage) == 0 {
		return true
	}
	if n.IsRoot() {
		return false
	}
	return matcher.LineageMatches(lineage, n.pathTexts())
}

// Lineage returns the ancestor chain root->n, excluding the root itself,
// inclusive of n.
func (n *Node) Lineage() []*Node {
	if n.IsRoot() {
		return nil
	}
	chain := make([]*Node, 0, n.Depth())
	for cur := n; cur.parent != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Path returns the text of every ancestor in Lineage, in root->n order.
func (n *Node) Path() []string { return n.pathTexts() }

func (n *Node) pathTexts() []string {
	chain := n.Lineage()
	out := make([]string, len(chain))
	for i, c := range chain {
		out[i] = c.text
	}
	return out
}

// AddShallowCopyOf creates a child with other's text, copying tags,
// comments and order weight. When merged is true, an Instance record is
// appended recording other's provenance under deviceID.
func (n *Node) AddShallowCopyOf(other *Node, merged bool, deviceID string) *Node {
	nc := n.AddChild(other.text)
	if merged {
		nc.instances = append(nc.instances, Instance{
			DeviceID: deviceID,
			Tags:     cloneSet(other.Tags()),
			Comments: cloneSet(other.Comments()),
		})
	}
	for c := range other.Comments() {
		nc.AddComment(c)
	}
	if other.IsLeaf() {
		nc.AddTags(other.Tags())
	}
	nc.orderWeight = other.orderWeight
	return nc
}

func cloneSet(s map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// AddDeepCopyOf performs AddShallowCopyOf then recurses over other's
// children.
func (n *Node) AddDeepCopyOf(other *Node, merged bool, deviceID string) *Node {
	nc := n.AddShallowCopyOf(other, merged, deviceID)
	for _, c := range other.children {
		nc.AddDeepCopyOf(c, merged, deviceID)
	}
	return nc
}

// Merge adds a deep, merged copy of every top-level child of each other
// tree into n.
func (n *Node) Merge(others []*Node, deviceIDs []string) {
	for i, other := range others {
		id := ""
		if i < len(deviceIDs) {
			id = deviceIDs[i]
		}
		for _, c := range other.children {
			n.AddDeepCopyOf(c, true, id)
		}
	}
}

// DeepCopy returns an unrelated tree with the same content as n.
func (n *Node) DeepCopy() *Node {
	nr := NewRoot(n.Driver())
	for _, c := range n.children {
		nr.AddDeepCopyOf(c, false, "")
	}
	return nr
}

// AddAncestorCopyOf adds a shallow copy of other's whole lineage (root->
// other, inclusive) into n, and returns the copy equivalent to other
// itself (root.py's add_ancestor_copy_of). Used by package emit to
// reconstruct minimal ancestor context around a tag-filtered set of
// leaves: each selected leaf is re-attached via this method, and shared
// ancestors collapse onto the same copy because AddShallowCopyOf
// (through AddChild) returns the existing child when one with the same
// text is already present.
func (n *Node) AddAncestorCopyOf(other *Node) *Node {
	base := n
	for _, ancestor := range other.Lineage() {
		base = base.AddShallowCopyOf(ancestor, false, "")
	}
	return base
}

// DumpLine is one flattened, order-stable record of a node's content, used
// to serialize and restore a tree without reparsing device text
// (root.py's Dump/DumpLine).
type DumpLine struct {
	Depth       int
	Text        string
	Tags        []string
	Comments    []string
	NewInConfig bool
	OrderWeight int
}

// Dump flattens every descendant of n, sorted, into an ordered, restorable
// record (root.py's dump).
func (n *Node) Dump() []DumpLine {
	sorted := n.AllChildrenSorted()
	out := make([]DumpLine, 0, len(sorted))
	for _, c := range sorted {
		tags := c.Tags()
		tagList := make([]string, 0, len(tags))
		for t := range tags {
			tagList = append(tagList, t)
		}
		sort.Strings(tagList)
		out = append(out, DumpLine{
			Depth:       c.Depth(),
			Text:        c.Text(),
			Tags:        tagList,
			Comments:    c.SortedComments(),
			NewInConfig: c.NewInConfig(),
			OrderWeight: c.OrderWeight(),
		})
	}
	return out
}

// RestoreFromDump rebuilds a tree from the ordered record Dump produced,
// bound to drv. Lines must appear in the same depth-first, parent-before-
// child order Dump emits (root.py's restore-from-dump round trip,
// spec.md §8 invariant 8.1).
func RestoreFromDump(drv Driver, lines []DumpLine) *Node {
	root := NewRoot(drv)
	stack := []*Node{root}
	for _, l := range lines {
		if l.Depth < 1 || l.Depth > len(stack) {
			continue
		}
		parent := stack[l.Depth-1]
		child := parent.AddChild(l.Text, ForceDuplicate())
		if len(l.Tags) > 0 {
			tags := make(map[string]struct{}, len(l.Tags))
			for _, t := range l.Tags {
				if t != UntaggedMarker {
					tags[t] = struct{}{}
				}
			}
			child.SetTags(tags)
		}
		for _, c := range l.Comments {
			child.AddComment(c)
		}
		child.SetNewInConfig(l.NewInConfig)
		child.SetOrderWeight(l.OrderWeight)

		if l.Depth < len(stack) {
			stack = stack[:l.Depth]
		}
		stack = append(stack, child)
	}
	return root
}

// Negate applies the driver's negation behavior to n (swap negation,
// negate_with, negation_default_when — see package driver), returning n.
func (n *Node) Negate() *Node {
	n.Driver().Negate(n)
	if !n.IsRoot() {
		n.parent.rebuildIndex()
	}
	return n
}

// CiscoStyleText renders n in one of three styles: "without_comments" (the
// default), "with_comments", or "merged" (spec.md §4.2).
func (n *Node) CiscoStyleText(style string, tag string) string {
	indent := strings.Repeat("  ", max(0, n.Depth()-1))
	var comments []string
	switch style {
	case "merged":
		count := 0
		seen := map[string]struct{}{}
		for _, inst := range n.instances {
			if tag == "" {
				if _, ok := inst.Tags[tag]; tag == "" || ok {
					count++
					for c := range inst.Comments {
						seen[c] = struct{}{}
					}
				}
			} else if _, ok := inst.Tags[tag]; ok {
				count++
				for c := range inst.Comments {
					seen[c] = struct{}{}
				}
			}
		}
		word := "instances"
		if count == 1 {
			word = "instance"
		}
		comments = append(comments, itoa(count)+" "+word)
		for c := range seen {
			comments = append(comments, c)
		}
		sort.Strings(comments[1:])
	case "with_comments":
		comments = n.SortedComments()
	}
	if len(comments) == 0 {
		return indent + n.text
	}
	return indent + n.text + " !" + strings.Join(comments, ", ")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
