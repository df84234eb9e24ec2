package emit_test

import (
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/netconfd/hierconfig/driver/platform/cisco_ios"
	"github.com/netconfd/hierconfig/driver/platform/generic"
	"github.com/netconfd/hierconfig/emit"
	"github.com/netconfd/hierconfig/tree"
)

// unifiedDiff renders a human-readable diff for a test failure message.
func unifiedDiff(want, got string) string {
	diffl := difflib.UnifiedDiff{
		A:        difflib.SplitLines(got),
		B:        difflib.SplitLines(want),
		FromFile: "got",
		ToFile:   "want",
		Context:  3,
		Eol:      "\n",
	}
	out, err := difflib.GetUnifiedDiffString(diffl)
	if err != nil {
		return "(failed to render diff: " + err.Error() + ")"
	}
	return out
}

func TestTextRendersDepthFirstInOrderWeight(t *testing.T) {
	drv := generic.New()
	root := tree.NewRoot(drv)
	iface := root.AddChild("interface Vlan2")
	iface.AddChild("no shutdown").SetOrderWeight(200)
	iface.AddChild("description foo").SetOrderWeight(500)

	text := emit.Text(root, "without_comments")
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), text)
	}
	if !strings.Contains(lines[1], "no shutdown") || !strings.Contains(lines[2], "description foo") {
		t.Fatalf("expected no shutdown (order_weight 200) before description foo (order_weight 500), got:\n%s", text)
	}
}

// TestTextSynthesizesSectionalExit reproduces scenario S4: a BGP template
// peer-policy section must render with a trailing "exit-peer-policy"
// line even though the parsed tree never stores one.
func TestTextSynthesizesSectionalExit(t *testing.T) {
	drv := cisco_ios.New()
	root := tree.NewRoot(drv)
	bgp := root.AddChild("router bgp 65000")
	tmpl := bgp.AddChild("template peer-policy FOO")
	tmpl.AddChild("route-map SET_PREF in")

	text := emit.Text(root, "without_comments")
	if !strings.Contains(text, "route-map SET_PREF in") {
		t.Fatalf("expected route-map line to render, got:\n%s", text)
	}
	if !strings.Contains(text, "exit-peer-policy") {
		t.Fatalf("expected synthesized exit-peer-policy line, got:\n%s", text)
	}
	// the exit line must follow the section's content, not precede it.
	exitIdx := strings.Index(text, "exit-peer-policy")
	routeIdx := strings.Index(text, "route-map SET_PREF in")
	if exitIdx < routeIdx {
		t.Fatalf("exit-peer-policy rendered before its section's content:\n%s", text)
	}
}

func TestFilteredTextKeepsOnlyMatchingLeavesAndAncestors(t *testing.T) {
	drv := generic.New()
	root := tree.NewRoot(drv)
	iface := root.AddChild("interface Vlan2")
	kept := iface.AddChild("description keep-me")
	dropped := iface.AddChild("description drop-me")
	kept.SetTags(map[string]struct{}{"remediate": {}})
	dropped.SetTags(map[string]struct{}{"other": {}})

	text := emit.FilteredText(root, map[string]struct{}{"remediate": {}}, nil, "without_comments")
	if !strings.Contains(text, "interface Vlan2") {
		t.Fatalf("expected ancestor context to be reconstructed, got:\n%s", text)
	}
	if !strings.Contains(text, "description keep-me") {
		t.Fatalf("expected the matching leaf, got:\n%s", text)
	}
	if strings.Contains(text, "drop-me") {
		t.Fatalf("did not expect the non-matching leaf, got:\n%s", text)
	}
}

func TestTextFullConfigRendersExactly(t *testing.T) {
	drv := generic.New()
	root := tree.NewRoot(drv)
	root.AddChild("hostname switch1")
	iface := root.AddChild("interface Vlan2")
	iface.AddChild("no shutdown").SetOrderWeight(200)
	iface.AddChild("description foo").SetOrderWeight(500)

	got := emit.Text(root, "without_comments")
	want := "hostname switch1\ninterface Vlan2\n  no shutdown\n  description foo\n"
	if got != want {
		t.Fatalf("rendered text mismatch:\n%s", unifiedDiff(want, got))
	}
}

func TestFilteredTextEmptyFilterYieldsEmptyText(t *testing.T) {
	drv := generic.New()
	root := tree.NewRoot(drv)
	iface := root.AddChild("interface Vlan2")
	iface.AddChild("description foo")

	text := emit.FilteredText(root, map[string]struct{}{"nonexistent": {}}, nil, "without_comments")
	if strings.TrimSpace(text) != "" {
		t.Fatalf("expected no output for a filter matching nothing, got:\n%s", text)
	}
}
