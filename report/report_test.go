package report_test

import (
	"strings"
	"testing"

	"github.com/netconfd/hierconfig/report"
	"github.com/netconfd/hierconfig/unused"
)

func sampleFindings() []unused.Finding {
	return []unused.Finding{
		{ObjectType: "acl", Name: "UNUSED_ACL", Removal: "no ip access-list extended UNUSED_ACL"},
	}
}

func TestRowsConvertsFindings(t *testing.T) {
	rows := report.Rows(sampleFindings())
	if len(rows) != 1 || rows[0].Name != "UNUSED_ACL" {
		t.Fatalf("got %+v", rows)
	}
}

func TestCSVHasHeaderAndRow(t *testing.T) {
	data, err := report.CSV(report.Rows(sampleFindings()))
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "object_type,name,removal") {
		t.Fatalf("missing header, got:\n%s", text)
	}
	if !strings.Contains(text, "UNUSED_ACL") {
		t.Fatalf("missing row, got:\n%s", text)
	}
}

func TestJSONRoundTripsFields(t *testing.T) {
	data, err := report.JSON(report.Rows(sampleFindings()))
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"name": "UNUSED_ACL"`) {
		t.Fatalf("got:\n%s", text)
	}
}

func TestMarkdownIncludesFindingAndFooterCount(t *testing.T) {
	md := report.Markdown(report.Rows(sampleFindings()))
	if !strings.Contains(md, "UNUSED_ACL") {
		t.Fatalf("missing finding, got:\n%s", md)
	}
	if !strings.Contains(md, "Total: 1 findings") {
		t.Fatalf("missing footer count, got:\n%s", md)
	}
}

func TestMarkdownEmptyFindings(t *testing.T) {
	md := report.Markdown(nil)
	if !strings.Contains(md, "Total: 0 findings") {
		t.Fatalf("got:\n%s", md)
	}
}
