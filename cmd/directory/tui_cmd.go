package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/iota-uz/employee-directory/modules/directory/presentation/tui"
)

func newTUICmd(root *rootOptions) *cobra.Command {
	var exportDir string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit employees in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := root.runtime(cmd)
			if err != nil {
				return err
			}
			// The alternate screen owns the terminal; keep log lines off it.
			rt.logger.SetOutput(io.Discard)
			return tui.Run(rt.ctx, tui.Options{
				Directory:      rt.directory,
				Exports:        rt.exports,
				Localizer:      rt.localizer,
				ExportDir:      exportDir,
				ExportFileName: rt.conf.Export.FileName,
				ShowLoadErrors: rt.conf.ShowLoadErrors,
			})
		},
	}

	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "Directory receiving exported workbooks")
	return cmd
}
