package unused_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/netconfd/hierconfig/driver/platform/cisco_ios"
	"github.com/netconfd/hierconfig/parser"
	"github.com/netconfd/hierconfig/unused"
)

// findingSummary projects the fields of a Finding that are safe to compare
// with cmp.Diff; tree.Node carries unexported state cmp can't traverse.
type findingSummary struct {
	ObjectType string
	Name       string
	Removal    string
}

func summarize(findings []unused.Finding) []findingSummary {
	out := make([]findingSummary, len(findings))
	for i, f := range findings {
		out[i] = findingSummary{ObjectType: f.ObjectType, Name: f.Name, Removal: f.Removal}
	}
	return out
}

// TestAnalyzeFindsUnusedACL reproduces scenario S6: an IOS config defines
// UNUSED_ACL and USED_ACL, but only USED_ACL is applied under an
// interface.
func TestAnalyzeFindsUnusedACL(t *testing.T) {
	drv := cisco_ios.New()
	text := "" +
		"ip access-list extended UNUSED_ACL\n" +
		" permit ip any any\n" +
		"ip access-list extended USED_ACL\n" +
		" permit ip any any\n" +
		"interface GigabitEthernet0/1\n" +
		" ip access-group USED_ACL in\n"

	root, err := parser.Parse(drv, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	findings := unused.Analyze(root)
	want := []findingSummary{
		{ObjectType: "acl", Name: "UNUSED_ACL", Removal: "no ip access-list extended UNUSED_ACL"},
	}
	if diff := cmp.Diff(want, summarize(findings)); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeReferencedACLIsNotFlagged(t *testing.T) {
	drv := cisco_ios.New()
	text := "" +
		"ip access-list extended USED_ACL\n" +
		" permit ip any any\n" +
		"interface GigabitEthernet0/1\n" +
		" ip access-group USED_ACL in\n"

	root, err := parser.Parse(drv, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	findings := unused.Analyze(root)
	if len(findings) != 0 {
		t.Fatalf("got %d findings, want 0: %+v", len(findings), findings)
	}
}

func TestAnalyzeNoDefinitionsYieldsNoFindings(t *testing.T) {
	drv := cisco_ios.New()
	root, err := parser.Parse(drv, "hostname switch1\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if findings := unused.Analyze(root); len(findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(findings))
	}
}
