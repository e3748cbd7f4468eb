// Copyright 2025 vslgen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nilsson-lang/vslgen/codegen"
	"github.com/nilsson-lang/vslgen/internal/fixtures"
)

var command = &cobra.Command{
	Use:  "vslgen scenario [-o output_file]",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenario, ok := findScenario(args[0])
		if !ok {
			_, _ = fmt.Fprintf(os.Stderr, "unknown scenario %q (available: %s)\n", args[0], scenarioNames())
			os.Exit(1)
		}

		output, _ := cmd.PersistentFlags().GetString("output")
		w := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				_, _ = fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			defer f.Close()
			w = f
		}

		if err := codegen.Generate(w, scenario.Program); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	command.PersistentFlags().StringP("output", "o", "", "output file for the generated assembly (stdout if unset)")
}

func findScenario(name string) (fixtures.Scenario, bool) {
	for _, s := range fixtures.All() {
		if s.Name == name {
			return s, true
		}
	}
	return fixtures.Scenario{}, false
}

func scenarioNames() string {
	var names string
	for i, s := range fixtures.All() {
		if i > 0 {
			names += ", "
		}
		names += s.Name
	}
	return names
}

func main() {
	if err := command.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
