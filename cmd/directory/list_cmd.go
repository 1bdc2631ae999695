package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iota-uz/employee-directory/modules/directory/domain/entities/roster"
	"github.com/iota-uz/employee-directory/pkg/intl"
)

func newListCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the employee list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatTable && format != formatJSON {
				return withCode(exitUsage, fmt.Errorf("invalid --format %q: want %s or %s", format, formatTable, formatJSON))
			}
			rt, err := root.runtime(cmd)
			if err != nil {
				return err
			}

			snap := rt.directory.Load(rt.ctx)
			if snap.Status() == roster.StatusLoadFailed {
				return withCode(exitAPI, fmt.Errorf("%s: %w", intl.T(rt.localizer, "Employees.Notices.LoadFailed"), snap.Reason()))
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSONLines(out, snap.Items())
			}
			headers := []string{
				intl.T(rt.localizer, "Employees.Table.Identifier"),
				intl.T(rt.localizer, "Employees.Table.FirstName"),
				intl.T(rt.localizer, "Employees.Table.LastName"),
				intl.T(rt.localizer, "Employees.Table.City"),
			}
			return writeTable(out, headers, snap.Items())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "Output format: table or json (one object per line)")
	return cmd
}
