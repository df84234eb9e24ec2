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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "github.com/netconfd/hierconfig/driver/platform/arista_eos"
	_ "github.com/netconfd/hierconfig/driver/platform/cisco_ios"
	_ "github.com/netconfd/hierconfig/driver/platform/cisco_nxos"
	_ "github.com/netconfd/hierconfig/driver/platform/cisco_xr"
	_ "github.com/netconfd/hierconfig/driver/platform/fortigate_fortios"
	_ "github.com/netconfd/hierconfig/driver/platform/fortinet_fortios"
	_ "github.com/netconfd/hierconfig/driver/platform/generic"
	_ "github.com/netconfd/hierconfig/driver/platform/hp_comware5"
	_ "github.com/netconfd/hierconfig/driver/platform/hp_procurve"
	_ "github.com/netconfd/hierconfig/driver/platform/juniper_junos"
	_ "github.com/netconfd/hierconfig/driver/platform/vyos"
)

// rootCmd builds the hierconfig command tree (gnmidiff/cmd/root.go's
// Execute, restructured as a constructor so main can own Execute itself).
func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hierconfig",
		Short: "hierconfig diffs and remediates hierarchical network device configuration",
	}

	cfgFile := root.PersistentFlags().String("config_file", "", "Path to config file.")
	root.PersistentFlags().String("platform", "", "Driver platform (CISCO_IOS, CISCO_NXOS, CISCO_XR, ARISTA_EOS, GENERIC, HP_COMWARE5, HP_PROCURVE, JUNIPER_JUNOS, VYOS, FORTINET_FORTIOS, FORTIGATE_FORTIOS).")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *cfgFile != "" {
			viper.SetConfigFile(*cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("hierconfig: reading config: %w", err)
			}
		}
		viper.BindPFlags(cmd.Flags())
		viper.AutomaticEnv()
		return nil
	}

	root.AddCommand(newRemediateCmd())
	root.AddCommand(newRollbackCmd())
	root.AddCommand(newDumpCmd())
	root.AddCommand(newUnusedCmd())
	return root
}
