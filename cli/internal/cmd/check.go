package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/riskboard/riskboard/pkg/dataset"
	"github.com/riskboard/riskboard/pkg/derive"
	"github.com/riskboard/riskboard/pkg/report"
)

type check struct {
	name string
	run  func() error
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the embedded analytics and reconcile the derived figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			failed := runChecks(cmd.OutOrStdout(), checks(dataset.New()))
			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
}

func checks(src report.Source) []check {
	return []check{
		{"feature ranking", func() error { return derive.ValidateFeatures(src.Insights().TopFeatures) }},
		{"business impact", func() error { return derive.ValidateImpact(src.Insights().BusinessImpact) }},
		{"regional records", func() error { return derive.ValidateRegions(src.Regions()) }},
		{"regional strategy", func() error {
			_, err := derive.RegionalStrategy(src.Regions(), derive.DefaultPriorityTable())
			return err
		}},
		{"financial projection", func() error {
			_, err := derive.FinancialProjection()
			return err
		}},
		{"resource allocation", func() error {
			_, err := derive.ResourceAllocation()
			return err
		}},
	}
}

// runChecks prints one line per check and returns the number that failed.
func runChecks(w io.Writer, cs []check) int {
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	failed := 0
	for _, c := range cs {
		err := c.run()
		if err == nil {
			ok.Fprintf(w, "✓ %s\n", c.name)
			continue
		}
		failed++
		bad.Fprintf(w, "✗ %s: %s\n", c.name, describe(err))
	}
	return failed
}

func describe(err error) string {
	var verr *derive.ValidationError
	var aerr *derive.ArithmeticInconsistency
	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("invalid %s (%s)", verr.Field, verr.Reason)
	case errors.As(err, &aerr):
		return aerr.Error()
	default:
		return err.Error()
	}
}
