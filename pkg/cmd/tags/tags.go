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
package tags

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/forgetful/internal/state"
)

type tagCount struct {
	tag   string
	count int
}

func NewCmdTags(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags with how many notes use them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts := countTags(s)
			if len(counts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tags yet.")
				return nil
			}
			for _, c := range counts {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %d\n", c.tag, c.count)
			}
			return nil
		},
	}

	return cmd
}

func countTags(s *state.State) []tagCount {
	seen := make(map[string]int)
	for _, n := range s.Store.All() {
		for _, t := range n.Tags {
			seen[t]++
		}
	}

	out := make([]tagCount, 0, len(seen))
	for t, c := range seen {
		out = append(out, tagCount{tag: t, count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count == out[j].count {
			return out[i].tag < out[j].tag
		}
		return out[i].count > out[j].count
	})
	return out
}
