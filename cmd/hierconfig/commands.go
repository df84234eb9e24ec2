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

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/netconfd/hierconfig/driver"
	"github.com/netconfd/hierconfig/parser"
	"github.com/netconfd/hierconfig/report"
	"github.com/netconfd/hierconfig/rules"
	"github.com/netconfd/hierconfig/tree"
	"github.com/netconfd/hierconfig/unused"
	"github.com/netconfd/hierconfig/workflow"
)

// platformFromFlag resolves the --platform flag to a rules.Platform
// (driver.Get's registry dispatch, gated on the CLI's own string->enum
// lookup since rules.Platform has no flag.Value implementation of its
// own).
func platformFromFlag() (rules.Platform, error) {
	name := viper.GetString("platform")
	for p := rules.AristaEOS; p <= rules.FortigateFortiOS; p++ {
		if p.String() == name {
			return p, nil
		}
	}
	return rules.Unknown, fmt.Errorf("hierconfig: unknown or missing --platform %q", name)
}

func parseFile(path string) (*tree.Node, error) {
	platform, err := platformFromFlag()
	if err != nil {
		return nil, err
	}
	drv, err := driver.Get(platform)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hierconfig: reading %s: %w", path, err)
	}
	return parser.Parse(drv, string(data))
}

func newRemediateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remediate running generated",
		Short: "Print the commands to run against running to reach generated.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			running, err := parseFile(args[0])
			if err != nil {
				return err
			}
			generated, err := parseFile(args[1])
			if err != nil {
				return err
			}
			wf, err := workflow.New(running, generated)
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, wf.RemediationConfigText("without_comments"))
			return nil
		},
	}
}

func newRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback running generated",
		Short: "Print the commands that undo the remediation from running to generated.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			running, err := parseFile(args[0])
			if err != nil {
				return err
			}
			generated, err := parseFile(args[1])
			if err != nil {
				return err
			}
			wf, err := workflow.New(running, generated)
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, wf.RollbackConfigText("without_comments"))
			return nil
		},
	}
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump config",
		Short: "Print a JSON dump of a parsed config, restorable without reparsing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := parseFile(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(root.Dump())
		},
	}
}

func newUnusedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unused config",
		Short: "Report objects defined but never referenced in config.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := parseFile(args[0])
			if err != nil {
				return err
			}
			findings := unused.Analyze(root)
			format := viper.GetString("format")
			rows := report.Rows(findings)
			switch format {
			case "json":
				data, err := report.JSON(rows)
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, string(data))
			case "csv":
				data, err := report.CSV(rows)
				if err != nil {
					return err
				}
				fmt.Fprint(os.Stdout, string(data))
			default:
				fmt.Fprintln(os.Stdout, report.Markdown(rows))
			}
			return nil
		},
	}
	cmd.Flags().String("format", "markdown", "Output format: markdown, json, or csv.")
	return cmd
}
