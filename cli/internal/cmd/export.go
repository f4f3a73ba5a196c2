package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/riskboard/riskboard/pkg/export"
)

func newExportCmd(opts *globalOptions) *cobra.Command {
	var (
		output   string
		template bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the report (or the critical cases template) as an .xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				return errors.New("--output is required")
			}
			r, err := opts.build()
			if err != nil {
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			write := export.WriteWorkbook
			if template {
				write = export.WriteCriticalCasesTemplate
			}
			if err := write(f, r); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", output, err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	cmd.Flags().BoolVar(&template, "template", false, "write the critical cases template instead of the report")
	return cmd
}
