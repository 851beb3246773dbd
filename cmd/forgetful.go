/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/Paintersrp/forgetful/internal/state"
	"github.com/Paintersrp/forgetful/pkg/cmd/root"
)

func Execute() {
	// Filled in by the root command once flags are parsed.
	s := &state.State{}

	rootCmd, rootErr := root.NewCmdRoot(s)
	if rootErr != nil {
		fmt.Fprintln(os.Stderr, rootErr)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
