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

// Package vyos implements the VYOS driver, grounded in
// original_source/hier_config/platforms/vyos/driver.py: another
// "set "/"delete " style driver, with no brace-flattening preprocessor
// since VyOS configs are already line-oriented set commands.
package vyos

import (
	"strings"

	"github.com/netconfd/hierconfig/driver"
	"github.com/netconfd/hierconfig/rules"
	"github.com/netconfd/hierconfig/tree"
)

// Driver is the VYOS platform driver.
type Driver struct {
	driver.Base
}

// New constructs the VYOS driver.
func New() driver.Driver {
	d := &Driver{}
	d.Base = driver.NewBase(d, rules.VyOS, &driver.Rules{})
	d.Base.SetDeclarationPrefix("set ")
	d.Base.SetNegationPrefix("delete ")
	return d
}

func init() { driver.Register(rules.VyOS, New) }

// SwapNegation toggles between "set "/"delete " forms, leaving text with
// neither prefix unchanged.
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
