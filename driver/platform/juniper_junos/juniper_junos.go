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

// Package juniper_junos implements the JUNIPER_JUNOS driver, grounded in
// original_source/hier_config/platforms/juniper_junos/driver.py. It is
// a "set"-style driver: declaration_prefix is "set ", negation_prefix is
// "delete ", and config_preprocessor flattens brace-delimited config
// into set commands before parsing (scenario S3 in spec.md §8).
package juniper_junos

import (
	"strings"

	"github.com/netconfd/hierconfig/driver"
	"github.com/netconfd/hierconfig/rules"
	"github.com/netconfd/hierconfig/tree"
)

// Driver is the JUNIPER_JUNOS platform driver.
type Driver struct {
	driver.Base
}

// New constructs the JUNIPER_JUNOS driver.
func New() driver.Driver {
	d := &Driver{}
	d.Base = driver.NewBase(d, rules.JuniperJunos, &driver.Rules{})
	d.Base.SetDeclarationPrefix("set ")
	d.Base.SetNegationPrefix("delete ")
	return d
}

func init() { driver.Register(rules.JuniperJunos, New) }

// SwapNegation toggles between "set "/"delete " forms; a text with
// neither prefix is left untouched (the original raises ValueError for
// this case, but returning the input is more useful for a library
// consumed by many callers that may invoke it speculatively).
func (d *Driver) SwapNegation(n *tree.Node) *tree.Node {
	text := n.Text()
	switch {
	case strings.HasPrefix(text, d.NegationPrefix()):
		n.SetText(d.DeclarationPrefix() + strings.TrimPrefix(text, d.NegationPrefix()))
	case strings.HasPrefix(text, d.DeclarationPrefix()):
		n.SetText(d.NegationPrefix() + strings.TrimPrefix(text, d.DeclarationPrefix()))
	}
	return n
}

// ConfigPreprocessor flattens Juniper's brace-delimited configuration
// into one "set"/"delete" command per line, four columns of indentation
// per nesting level, exactly as
// original_source/hier_config/constructors.py's _convert_to_set_commands
// does.
func (d *Driver) ConfigPreprocessor(text string) string {
	var path []string
	var out []string
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		stripped = strings.ReplaceAll(stripped, ";", "")
		level := strings.Index(line, stripped) / 4
		if level < len(path) {
			path = path[:level]
		}
		switch {
		case strings.HasSuffix(stripped, "{"):
			path = append(path, strings.TrimSpace(strings.TrimSuffix(stripped, "{")))
		case stripped == "}":
			// closing brace: the level-based truncation above already
			// popped path back to this depth; nothing to push.
		case strings.HasPrefix(stripped, "set") || strings.HasPrefix(stripped, "delete"):
			out = append(out, stripped)
		default:
			out = append(out, "set "+strings.Join(path, " ")+" "+stripped)
		}
	}
	return strings.Join(out, "\n")
}
