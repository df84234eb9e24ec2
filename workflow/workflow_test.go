package workflow_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/netconfd/hierconfig/driver/platform/generic"
	hdriver "github.com/netconfd/hierconfig/driver"
	"github.com/netconfd/hierconfig/driver/platform/cisco_ios"
	"github.com/netconfd/hierconfig/matcher"
	"github.com/netconfd/hierconfig/rules"
	"github.com/netconfd/hierconfig/tree"
	"github.com/netconfd/hierconfig/workflow"
)

func build(t *testing.T, drv hdriver.Driver, commands ...string) *tree.Node {
	t.Helper()
	root := tree.NewRoot(drv)
	for _, cmd := range commands {
		root.AddChildrenDeep(strings.Split(cmd, " / "))
	}
	return root
}

func lines(n *tree.Node) []string {
	var out []string
	for _, c := range n.AllChildren() {
		out = append(out, c.Text())
	}
	sort.Strings(out)
	return out
}

func TestNewRejectsMismatchedDrivers(t *testing.T) {
	running := build(t, generic.New(), "hostname switch1")
	generated := build(t, cisco_ios.New(), "hostname switch1")

	_, err := workflow.New(running, generated)
	if err != workflow.ErrMismatchedDriver {
		t.Fatalf("err = %v, want ErrMismatchedDriver", err)
	}
}

func TestRemediationConfigMatchesDiff(t *testing.T) {
	drv := generic.New()
	running := build(t, drv, "hostname switch1", "ip routing")
	generated := build(t, drv, "hostname switch1", "ntp server 10.0.0.1")

	wf, err := workflow.New(running, generated)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := lines(wf.RemediationConfig())
	want := []string{"no ip routing", "ntp server 10.0.0.1"}
	sort.Strings(want)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("remediation lines mismatch:\ngot:\n%s\nwant:\n%s", pretty.Sprint(got), pretty.Sprint(want))
	}
}

// TestRollbackReproducesRunning is invariant #4: applying the remediation
// to running (diff.Future's prediction) reaches generated, and applying
// the rollback to that result reproduces running.
func TestRollbackReproducesRunning(t *testing.T) {
	drv := generic.New()
	running := build(t, drv, "hostname switch1", "ip routing")
	generated := build(t, drv, "hostname switch2")

	wf, err := workflow.New(running, generated)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	afterRemediation := wf.Future()
	if got, want := lines(afterRemediation), lines(generated); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("applying remediation produced %v, want %v", got, want)
	}

	backWF, err := workflow.New(generated, running)
	if err != nil {
		t.Fatalf("New (reverse direction): %v", err)
	}
	afterRollback := backWF.Future()
	if got, want := lines(afterRollback), lines(running); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("applying rollback produced %v, want %v (running)", got, want)
	}
}

func TestApplyRemediationTagRulesAndFilteredText(t *testing.T) {
	drv := generic.New()
	running := build(t, drv, "interface Vlan2 / description old")
	generated := build(t, drv, "interface Vlan2 / description new", "hostname switch1")

	wf, err := workflow.New(running, generated)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	wf.ApplyRemediationTagRules([]rules.TagRule{
		{Lineage: []matcher.Rule{matcher.Eq("hostname switch1")}, ApplyTags: []string{"safe"}},
	})

	filtered := wf.RemediationConfigFilteredText(map[string]struct{}{"safe": {}}, nil, "without_comments")
	if !strings.Contains(filtered, "hostname switch1") {
		t.Fatalf("expected the tagged line in filtered output, got:\n%s", filtered)
	}
	if strings.Contains(filtered, "description new") {
		t.Fatalf("did not expect the untagged interface change in filtered output, got:\n%s", filtered)
	}
}
