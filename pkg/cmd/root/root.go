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
package root

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/forgetful/internal/constants"
	"github.com/Paintersrp/forgetful/internal/state"
	"github.com/Paintersrp/forgetful/pkg/cmd/add"
	"github.com/Paintersrp/forgetful/pkg/cmd/archive"
	"github.com/Paintersrp/forgetful/pkg/cmd/list"
	"github.com/Paintersrp/forgetful/pkg/cmd/notes"
	"github.com/Paintersrp/forgetful/pkg/cmd/remove"
	"github.com/Paintersrp/forgetful/pkg/cmd/settings"
	"github.com/Paintersrp/forgetful/pkg/cmd/show"
	"github.com/Paintersrp/forgetful/pkg/cmd/tags"
	"github.com/Paintersrp/forgetful/pkg/cmd/unarchive"
	"github.com/Paintersrp/forgetful/pkg/cmd/version"
)

// SkipState marks commands that run without opening the data directory.
const SkipState = "skip-state"

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Manager-chan's forgetful notes and tasks.",
		Long: heredoc.Doc(`
			A terminal note and task manager run by Manager-chan, who tries her best.
			Notes you leave alone for too long may be forgotten, and she sometimes
			misspells things. Run with --dont-forget when you need her at her best.

			  forgetful                      open the notes list
			  forgetful add "Buy milk" --tags errands --due 2024-05-01
			  forgetful list --format json
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[SkipState] == "true" {
				return nil
			}
			return s.Open(state.Options{
				DataDir:    v.GetString("data-dir"),
				DontForget: v.GetBool("dont-forget"),
				Seed:       v.GetUint64("seed"),
				Sticky:     v.GetBool("sticky"),
				LogLevel:   v.GetString("log-level"),
			})
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.Close()
		},
		RunE: notes.NewCmdNotes(s).RunE,
	}

	flags := cmd.PersistentFlags()
	flags.String("data-dir", "", "directory holding the notes and settings files (default is the working directory)")
	flags.Bool("dont-forget", false, "disable forgetting, misspelling and misplacing for this run")
	flags.Bool("sticky", false, "keep forget decisions for a note until it changes")
	flags.Uint64("seed", 0, "seed the random source for a repeatable session")
	flags.String("log-level", "", "log level written to the log file (debug, info, warn, error)")
	_ = flags.MarkHidden("seed")

	for _, name := range []string{"data-dir", "dont-forget", "sticky", "seed", "log-level"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return nil, err
		}
	}

	versionCmd := version.NewCmdVersion()
	versionCmd.Annotations = map[string]string{SkipState: "true"}

	cmd.AddCommand(
		notes.NewCmdNotes(s),
		add.NewCmdAdd(s),
		list.NewCmdList(s),
		show.NewCmdShow(s),
		settings.NewCmdSettings(s),
		tags.NewCmdTags(s),
		archive.NewCmdArchive(s),
		unarchive.NewCmdUnarchive(s),
		remove.NewCmdRemove(s),
		versionCmd,
	)

	return cmd, nil
}
