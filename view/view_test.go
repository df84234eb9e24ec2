package view_test

import (
	"testing"

	"github.com/netconfd/hierconfig/driver/platform/cisco_ios"
	"github.com/netconfd/hierconfig/driver/platform/generic"
	"github.com/netconfd/hierconfig/parser"
	"github.com/netconfd/hierconfig/view"
)

func TestNewRejectsUnsupportedPlatform(t *testing.T) {
	root, err := parser.Parse(generic.New(), "hostname switch1\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := view.New(root); err != view.ErrUnsupportedPlatform {
		t.Fatalf("err = %v, want ErrUnsupportedPlatform", err)
	}
}

func TestHostnameAndInterfaceViews(t *testing.T) {
	text := "" +
		"hostname switch1\n" +
		"interface GigabitEthernet0/1\n" +
		" description uplink\n" +
		" switchport access vlan 20\n" +
		"interface GigabitEthernet0/2\n" +
		" shutdown\n" +
		"vlan 20\n" +
		" name servers\n"

	root, err := parser.Parse(cisco_ios.New(), text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	v, err := view.New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	hostname, ok := v.Hostname()
	if !ok || hostname != "switch1" {
		t.Fatalf("Hostname() = %q, %v, want switch1, true", hostname, ok)
	}

	ifaces := v.InterfaceViews()
	if len(ifaces) != 2 {
		t.Fatalf("got %d interfaces, want 2", len(ifaces))
	}

	gi1, ok := v.InterfaceViewByName("GigabitEthernet0/1")
	if !ok {
		t.Fatal("missing GigabitEthernet0/1")
	}
	if desc, ok := gi1.Description(); !ok || desc != "uplink" {
		t.Fatalf("Description() = %q, %v, want uplink, true", desc, ok)
	}
	if vlan, ok := gi1.NativeVlan(); !ok || vlan != 20 {
		t.Fatalf("NativeVlan() = %d, %v, want 20, true", vlan, ok)
	}
	if !gi1.Enabled() {
		t.Fatal("GigabitEthernet0/1 should be enabled (no shutdown child)")
	}

	gi2, ok := v.InterfaceViewByName("GigabitEthernet0/2")
	if !ok {
		t.Fatal("missing GigabitEthernet0/2")
	}
	if gi2.Enabled() {
		t.Fatal("GigabitEthernet0/2 should be disabled (has shutdown child)")
	}

	vlans := v.Vlans()
	if len(vlans) != 1 || vlans[0].ID != 20 || vlans[0].Name != "servers" {
		t.Fatalf("got %+v, want one vlan 20 named servers", vlans)
	}
}
