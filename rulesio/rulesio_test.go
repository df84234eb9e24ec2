package rulesio_test

import (
	"testing"

	"github.com/netconfd/hierconfig/rulesio"
)

const unusedACLYAML = `
unused_object_rules:
  - object_type: acl
    definition_match:
      - re_search: '^ip access-list (standard|extended) \S+$'
    definition_name_regex: '^ip access-list (?:standard|extended) (\S+)$'
    reference_patterns:
      - match_rules:
          - starts_with: ["interface"]
          - re_search: '^ip access-group \S+ (in|out)$'
        extract_regex: '^ip access-group (\S+) (?:in|out)$'
        reference_type: "ip access-group"
        capture_group: 1
    removal_template: "no ip access-list extended {name}"
    removal_order_weight: 5
    require_exact_match: true
tag_rules:
  - lineage:
      - starts_with: ["interface"]
    apply_tags: ["safe"]
`

func TestLoadUnusedObjectRulesYAML(t *testing.T) {
	got, err := rulesio.LoadUnusedObjectRulesYAML([]byte(unusedACLYAML))
	if err != nil {
		t.Fatalf("LoadUnusedObjectRulesYAML: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rules, want 1", len(got))
	}
	rule := got[0]
	if rule.ObjectType != "acl" {
		t.Fatalf("object_type = %q, want acl", rule.ObjectType)
	}
	if len(rule.DefinitionMatch) != 1 {
		t.Fatalf("definition_match has %d rules, want 1", len(rule.DefinitionMatch))
	}
	if len(rule.ReferencePatterns) != 1 || len(rule.ReferencePatterns[0].MatchRules) != 2 {
		t.Fatalf("unexpected reference pattern shape: %+v", rule.ReferencePatterns)
	}
	if rule.RemovalTemplate != "no ip access-list extended {name}" {
		t.Fatalf("removal_template = %q", rule.RemovalTemplate)
	}
	if !rule.RequireExactMatch {
		t.Fatal("require_exact_match should be true")
	}
}

func TestLoadTagRulesYAML(t *testing.T) {
	got, err := rulesio.LoadTagRulesYAML([]byte(unusedACLYAML))
	if err != nil {
		t.Fatalf("LoadTagRulesYAML: %v", err)
	}
	if len(got) != 1 || len(got[0].ApplyTags) != 1 || got[0].ApplyTags[0] != "safe" {
		t.Fatalf("got %+v, want one rule tagging [safe]", got)
	}
}

func TestLoadUnusedObjectRulesJSON(t *testing.T) {
	data := []byte(`{
		"unused_object_rules": [
			{
				"object_type": "acl",
				"definition_match": [{"re_search": "^ip access-list extended \\S+$"}],
				"definition_name_regex": "^ip access-list extended (\\S+)$",
				"removal_template": "no ip access-list extended {name}"
			}
		]
	}`)
	got, err := rulesio.LoadUnusedObjectRulesJSON(data)
	if err != nil {
		t.Fatalf("LoadUnusedObjectRulesJSON: %v", err)
	}
	if len(got) != 1 || got[0].ObjectType != "acl" {
		t.Fatalf("got %+v", got)
	}
}

func TestLoadUnusedObjectRulesYAMLBadDocument(t *testing.T) {
	if _, err := rulesio.LoadUnusedObjectRulesYAML([]byte("not: [valid")); err == nil {
		t.Fatal("expected an error decoding malformed yaml")
	}
}
