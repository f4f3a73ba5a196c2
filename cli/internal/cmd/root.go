package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/riskboard/riskboard/pkg/dataset"
	"github.com/riskboard/riskboard/pkg/report"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	title    string
	currency string
	noColor  bool
}

// NewRootCmd returns a fresh command tree. Tests build one per case.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "riskctl",
		Short:         "riskctl: render and export the microinsurance dropout risk report",
		Long:          `riskctl renders the dropout risk report pages in the terminal, exports them as spreadsheets and checks the embedded analytics for consistency.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.title, "title", "", "report title (default is the built-in title)")
	f.StringVar(&opts.currency, "currency", "", "currency symbol used in money figures (default ₦)")
	f.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(
		newPagesCmd(opts),
		newShowCmd(opts),
		newExportCmd(opts),
		newCheckCmd(),
		newScrapeCmd(),
	)
	return root
}

// Execute is the entry point called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func (o *globalOptions) reportOptions() report.Options {
	ro := report.DefaultOptions()
	if o.title != "" {
		ro.Title = o.title
	}
	if o.currency != "" {
		ro.CurrencySymbol = o.currency
	}
	return ro
}

func (o *globalOptions) build() (*report.Report, error) {
	r, err := report.Build(dataset.New(), o.reportOptions())
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	return r, nil
}
