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

// Command hierconfig is a CLI wrapper over the core remediation engine
// (spf13/cobra + spf13/viper, mirroring gnmidiff/cmd and
// gnmidiff/gnmidiff/main.go in the teacher). It is file-I/O plumbing
// around workflow.WorkflowRemediation; it holds none of the core
// semantics itself.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
