//go:build tui

package main

import (
	"github.com/spf13/cobra"

	"github.com/unowned-ai/diary/pkg/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Show terminal UI",
		Long:  `Open the interactive diary: month calendar, day editor and word dictionary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(false)
			if err != nil {
				return err
			}
			defer sess.Close()

			return tui.ShowTUI(sess.store, sess.db, a.cfg.DateLayout, a.logger)
		},
	}
}

func init() {
	extraCommands = append(extraCommands, newTUICmd)
}
