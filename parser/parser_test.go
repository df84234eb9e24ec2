package parser_test

import (
	"strings"
	"testing"

	"github.com/netconfd/hierconfig/driver/platform/cisco_ios"
	"github.com/netconfd/hierconfig/driver/platform/generic"
	"github.com/netconfd/hierconfig/driver/platform/juniper_junos"
	"github.com/netconfd/hierconfig/matcher"
	"github.com/netconfd/hierconfig/parser"
	"github.com/netconfd/hierconfig/tree"
)

func eq(s string) matcher.Rule { return matcher.Eq(s) }

func TestParseBuildsIndentTree(t *testing.T) {
	drv := generic.New()
	text := "interface Vlan2\n description foo\n no ip address\nhostname switch1\n"

	root, err := parser.Parse(drv, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	iface := root.GetChild(eq("interface Vlan2"))
	if iface == nil {
		t.Fatal("missing interface Vlan2")
	}
	if got := len(iface.Children()); got != 2 {
		t.Fatalf("interface Vlan2 has %d children, want 2", got)
	}
	if root.GetChild(eq("hostname switch1")) == nil {
		t.Fatal("missing hostname switch1 at top level")
	}
}

func TestParseAppliesPerLineSub(t *testing.T) {
	drv := cisco_ios.New()
	text := "Building configuration...\nhostname switch1\n"

	root, err := parser.Parse(drv, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := len(root.Children()); got != 1 {
		t.Fatalf("got %d top-level children, want 1 (noise line must be stripped)", got)
	}
}

func TestParseStripsSectionalExitMarker(t *testing.T) {
	drv := cisco_ios.New()
	text := "router bgp 65000\n template peer-policy FOO\n  description test\n exit-peer-policy\nhostname switch1\n"

	root, err := parser.Parse(drv, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	bgp := root.GetChild(eq("router bgp 65000"))
	if bgp == nil {
		t.Fatal("missing router bgp section")
	}
	tmpl := bgp.GetChild(eq("template peer-policy FOO"))
	if tmpl == nil {
		t.Fatal("missing template peer-policy section")
	}
	for _, c := range tmpl.Children() {
		if c.Text() == "exit-peer-policy" {
			t.Fatal("exit-peer-policy marker should have been stripped")
		}
	}
}

func TestParseBannerAggregatesToSingleLine(t *testing.T) {
	drv := generic.New()
	text := "banner motd #\nline one\nline two#\nhostname switch1\n"

	root, err := parser.Parse(drv, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var found bool
	for _, c := range root.Children() {
		if strings.HasPrefix(c.Text(), "banner motd #") {
			found = true
			if !strings.Contains(c.Text(), "line one") || !strings.Contains(c.Text(), "line two#") {
				t.Fatalf("banner text incomplete: %q", c.Text())
			}
		}
	}
	if !found {
		t.Fatal("banner line missing")
	}
	if root.GetChild(eq("hostname switch1")) == nil {
		t.Fatal("missing hostname switch1 after banner")
	}
}

func TestParseUnterminatedBanner(t *testing.T) {
	drv := generic.New()
	text := "banner motd #\nline one\n"

	if _, err := parser.Parse(drv, text); err != parser.ErrUnterminatedBanner {
		t.Fatalf("err = %v, want ErrUnterminatedBanner", err)
	}
}

func TestParseJuniperFlattensBraces(t *testing.T) {
	drv := juniper_junos.New()
	text := "interfaces {\n    ge-0/0/0 {\n        unit 0 {\n            family inet;\n        }\n    }\n}\n"

	root, err := parser.Parse(drv, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	found := false
	for _, c := range root.AllChildren() {
		if strings.HasPrefix(c.Text(), "set interfaces ge-0/0/0 unit 0") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a flattened \"set interfaces ge-0/0/0 unit 0 ...\" line, tree: %v", dumpTexts(root))
	}
}

func dumpTexts(root *tree.Node) []string {
	var out []string
	for _, c := range root.AllChildren() {
		out = append(out, c.Text())
	}
	return out
}
