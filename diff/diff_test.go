package diff_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/netconfd/hierconfig/diff"
	"github.com/netconfd/hierconfig/driver/platform/generic"
	"github.com/netconfd/hierconfig/matcher"
	"github.com/netconfd/hierconfig/rules"
	"github.com/netconfd/hierconfig/tree"

	hdriver "github.com/netconfd/hierconfig/driver"
)

func lines(t *testing.T, n *tree.Node) []string {
	t.Helper()
	var out []string
	for _, c := range n.AllChildren() {
		out = append(out, c.Text())
	}
	sort.Strings(out)
	return out
}

func build(t *testing.T, drv hdriver.Driver, commands ...string) *tree.Node {
	t.Helper()
	root := tree.NewRoot(drv)
	for _, cmd := range commands {
		root.AddChildrenDeep(strings.Split(cmd, " / "))
	}
	return root
}

func TestConfigToGetToAddsMissingLines(t *testing.T) {
	drv := generic.New()
	running := build(t, drv, "interface Vlan2")
	target := build(t, drv, "interface Vlan2", "hostname switch1")

	delta := diff.ConfigToGetTo(running, target)

	got := lines(t, delta)
	if len(got) != 1 || got[0] != "hostname switch1" {
		t.Fatalf("got %v, want [hostname switch1]", got)
	}
}

func TestConfigToGetToNegatesExtraLines(t *testing.T) {
	drv := generic.New()
	running := build(t, drv, "hostname switch1", "ip routing")
	target := build(t, drv, "hostname switch1")

	delta := diff.ConfigToGetTo(running, target)

	got := lines(t, delta)
	if len(got) != 1 || got[0] != "no ip routing" {
		t.Fatalf("got %v, want [no ip routing]", got)
	}
}

func TestConfigToGetToRecursesIntoSharedParents(t *testing.T) {
	drv := generic.New()
	running := build(t, drv, "interface Vlan2 / description old")
	target := build(t, drv, "interface Vlan2 / description new")

	delta := diff.ConfigToGetTo(running, target)

	got := lines(t, delta)
	want := []string{"description new", "interface Vlan2", "no description old"}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestConfigToGetToSkipsIdempotentReplacement(t *testing.T) {
	drv := generic.New()
	drv.Rules().IdempotentCommands = []rules.IdempotentCommands{
		{Lineage: []matcher.Rule{matcher.StartsWith("interface "), matcher.StartsWith("ip address ")}},
	}
	running := build(t, drv, "interface Vlan2 / ip address 10.0.0.1 255.255.255.0")
	target := build(t, drv, "interface Vlan2 / ip address 10.0.0.2 255.255.255.0")

	delta := diff.ConfigToGetTo(running, target)

	got := lines(t, delta)
	want := []string{"interface Vlan2", "ip address 10.0.0.2 255.255.255.0"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v (no negation of the old ip address line)", got, want)
	}
}

func TestDifferenceOnlyReportsSelfOnlyLines(t *testing.T) {
	drv := generic.New()
	a := build(t, drv, "hostname switch1", "ip routing")
	b := build(t, drv, "hostname switch1")

	delta := diff.Difference(a, b)

	got := lines(t, delta)
	if len(got) != 1 || got[0] != "ip routing" {
		t.Fatalf("got %v, want [ip routing]", got)
	}
}

func TestSetOrderWeightLastRuleWins(t *testing.T) {
	drv := generic.New()
	drv.Rules().Ordering = []rules.Ordering{
		{Lineage: []matcher.Rule{matcher.StartsWith("no ")}, Weight: 100},
		{Lineage: []matcher.Rule{matcher.StartsWith("no ")}, Weight: 900},
	}
	root := build(t, drv, "no ip routing")

	diff.SetOrderWeight(root)

	child := root.Children()[0]
	if child.OrderWeight() != 900 {
		t.Fatalf("order weight = %d, want 900 (last matching rule should win)", child.OrderWeight())
	}
}

func TestFutureAppliesRemediationNegations(t *testing.T) {
	drv := generic.New()
	self := build(t, drv, "hostname switch1", "ip routing")
	remediation := build(t, drv, "no ip routing", "hostname switch2")

	future := diff.Future(self, remediation)

	got := lines(t, future)
	sort.Strings(got)
	want := []string{"hostname switch1", "hostname switch2"}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
