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

// Package generic implements the platform-agnostic driver: every hook is
// the Base default, grounded in
// original_source/hier_config/platforms/generic/driver.py.
package generic

import (
	"github.com/netconfd/hierconfig/driver"
	"github.com/netconfd/hierconfig/rules"
)

// Driver is the GENERIC platform driver.
type Driver struct {
	driver.Base
}

// New constructs the GENERIC driver.
func New() driver.Driver {
	d := &Driver{}
	d.Base = driver.NewBase(d, rules.Generic, &driver.Rules{})
	return d
}

func init() { driver.Register(rules.Generic, New) }
