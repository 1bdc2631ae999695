package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iota-uz/employee-directory/modules/directory/domain/entities/roster"
	"github.com/iota-uz/employee-directory/pkg/intl"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the employee list to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := root.runtime(cmd)
			if err != nil {
				return err
			}

			snap := rt.directory.Load(rt.ctx)
			if snap.Status() == roster.StatusLoadFailed {
				return withCode(exitAPI, fmt.Errorf("%s: %w", intl.T(rt.localizer, "Employees.Notices.LoadFailed"), snap.Reason()))
			}

			// A directory output keeps the configured file name.
			dir, name := "", ""
			if info, statErr := os.Stat(output); output != "" && statErr == nil && info.IsDir() {
				dir = output
			} else if output != "" {
				dir, name = filepath.Split(output)
			}

			download, err := rt.exports.Export(rt.ctx, snap.Items(), name)
			if err != nil {
				return withCode(exitIO, err)
			}
			path := filepath.Join(dir, download.FileName)
			if err := os.WriteFile(path, download.Data, 0o644); err != nil {
				return withCode(exitIO, fmt.Errorf("write %s: %w", path, err))
			}
			rt.logger.WithField("path", path).WithField("rows", snap.Len()).Info("exported employees")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Output file or directory (default: EXPORT_FILE_NAME.xlsx in the working directory)")
	return cmd
}
