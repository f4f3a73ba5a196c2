package cmd

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newPagesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the report pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := opts.build()
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Page"})
			for _, ref := range r.Pages() {
				table.Append([]string{string(ref.ID), ref.Icon + " " + ref.Title})
			}
			table.Render()
			return nil
		},
	}
}

// newTable returns a tablewriter configured the same way for every command.
func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}
