package tree_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/netconfd/hierconfig/driver/platform/generic"
	"github.com/netconfd/hierconfig/matcher"
	"github.com/netconfd/hierconfig/tree"
)

func build(t *testing.T, commands ...string) *tree.Node {
	t.Helper()
	root := tree.NewRoot(generic.New())
	for _, cmd := range commands {
		root.AddChildrenDeep(strings.Split(cmd, " / "))
	}
	return root
}

func TestAddChildDeduplicatesByText(t *testing.T) {
	root := build(t)
	first := root.AddChild("interface Vlan2")
	second := root.AddChild("interface Vlan2")
	if first != second {
		t.Fatal("AddChild should return the existing child for a duplicate text")
	}
	if len(root.Children()) != 1 {
		t.Fatalf("got %d children, want 1", len(root.Children()))
	}
}

func TestAddChildForceDuplicate(t *testing.T) {
	root := build(t)
	root.AddChild("remark foo")
	root.AddChild("remark foo", tree.ForceDuplicate())
	if len(root.Children()) != 2 {
		t.Fatalf("got %d children, want 2 (ForceDuplicate should bypass dedup)", len(root.Children()))
	}
}

func TestTagsUnionAcrossLeaves(t *testing.T) {
	root := build(t, "interface Vlan2 / description foo", "interface Vlan2 / no ip address")
	iface := root.GetChild(matcher.Eq("interface Vlan2"))
	desc := iface.GetChild(matcher.Eq("description foo"))
	noAddr := iface.GetChild(matcher.Eq("no ip address"))

	desc.SetTags(map[string]struct{}{"a": {}})
	noAddr.SetTags(map[string]struct{}{"b": {}})

	tags := iface.Tags()
	if _, ok := tags["a"]; !ok {
		t.Fatal("missing tag a in branch union")
	}
	if _, ok := tags["b"]; !ok {
		t.Fatal("missing tag b in branch union")
	}
}

func TestUntaggedLeafReportsSentinel(t *testing.T) {
	root := build(t, "hostname switch1")
	leaf := root.GetChild(matcher.Eq("hostname switch1"))
	tags := leaf.Tags()
	if _, ok := tags[tree.UntaggedMarker]; !ok {
		t.Fatal("untagged leaf should report the untagged marker")
	}
}

func TestIsLineageMatchEmptyLineageIsUniversal(t *testing.T) {
	root := build(t, "hostname switch1")
	leaf := root.GetChild(matcher.Eq("hostname switch1"))
	if !leaf.IsLineageMatch(nil) {
		t.Fatal("empty lineage should match every node")
	}
	if !root.IsLineageMatch(nil) {
		t.Fatal("empty lineage should match the root too")
	}
}

func TestAddAncestorCopyOfRebuildsLineage(t *testing.T) {
	root := build(t, "router bgp 65000 / address-family ipv4 / network 10.0.0.0")
	leaf := root.GetChild(matcher.Eq("router bgp 65000")).
		GetChild(matcher.Eq("address-family ipv4")).
		GetChild(matcher.Eq("network 10.0.0.0"))

	dest := tree.NewRoot(root.Driver())
	copyOfLeaf := dest.AddAncestorCopyOf(leaf)

	if copyOfLeaf.Text() != "network 10.0.0.0" {
		t.Fatalf("returned node text = %q, want %q", copyOfLeaf.Text(), "network 10.0.0.0")
	}
	if got, want := copyOfLeaf.Path(), leaf.Path(); strings.Join(got, "/") != strings.Join(want, "/") {
		t.Fatalf("rebuilt path = %v, want %v", got, want)
	}

	bgp := dest.GetChild(matcher.Eq("router bgp 65000"))
	if bgp == nil || len(bgp.Children()) != 1 {
		t.Fatal("expected exactly one address-family child under the rebuilt bgp section")
	}
}

func TestAddAncestorCopyOfCollapsesSharedAncestors(t *testing.T) {
	root := build(t,
		"router bgp 65000 / address-family ipv4 / network 10.0.0.0",
		"router bgp 65000 / address-family ipv4 / network 10.0.1.0",
	)
	bgp := root.GetChild(matcher.Eq("router bgp 65000"))
	af := bgp.GetChild(matcher.Eq("address-family ipv4"))
	leafA := af.GetChild(matcher.Eq("network 10.0.0.0"))
	leafB := af.GetChild(matcher.Eq("network 10.0.1.0"))

	dest := tree.NewRoot(root.Driver())
	dest.AddAncestorCopyOf(leafA)
	dest.AddAncestorCopyOf(leafB)

	if len(dest.Children()) != 1 {
		t.Fatalf("expected shared bgp ancestor to collapse onto one node, got %d top-level children", len(dest.Children()))
	}
	rebuiltAF := dest.GetChild(matcher.Eq("router bgp 65000")).GetChild(matcher.Eq("address-family ipv4"))
	if len(rebuiltAF.Children()) != 2 {
		t.Fatalf("expected both network lines under the rebuilt address-family, got %d", len(rebuiltAF.Children()))
	}
}

func TestDumpRestoreFromDumpRoundTrip(t *testing.T) {
	root := build(t, "interface Vlan2 / description foo", "hostname switch1")
	iface := root.GetChild(matcher.Eq("interface Vlan2"))
	iface.AddComment("managed by automation")
	iface.SetOrderWeight(-10)
	desc := iface.GetChild(matcher.Eq("description foo"))
	desc.SetTags(map[string]struct{}{"core": {}})

	dumped := root.Dump()
	restored := tree.RestoreFromDump(root.Driver(), dumped)

	origLines := allTexts(root)
	restoredLines := allTexts(restored)
	if strings.Join(origLines, "|") != strings.Join(restoredLines, "|") {
		t.Fatalf("restored lines = %v, want %v", restoredLines, origLines)
	}

	restoredIface := restored.GetChild(matcher.Eq("interface Vlan2"))
	if restoredIface.OrderWeight() != -10 {
		t.Fatalf("restored order weight = %d, want -10", restoredIface.OrderWeight())
	}
	if _, ok := restoredIface.Comments()["managed by automation"]; !ok {
		t.Fatal("restored node missing its comment")
	}
	restoredDesc := restoredIface.GetChild(matcher.Eq("description foo"))
	if _, ok := restoredDesc.Tags()["core"]; !ok {
		t.Fatal("restored node missing its tag")
	}
}

func allTexts(root *tree.Node) []string {
	var out []string
	for _, c := range root.AllChildrenSorted() {
		out = append(out, strings.Repeat(">", c.Depth())+c.Text())
	}
	sort.Strings(out)
	return out
}
