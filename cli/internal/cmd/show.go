package cmd

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/riskboard/riskboard/pkg/report"
)

const barWidth = 40

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	titleColor   = color.New(color.Bold)
	faintColor   = color.New(color.Faint)
	levelColors  = map[string]*color.Color{
		report.LevelError:   color.New(color.FgRed, color.Bold),
		report.LevelSuccess: color.New(color.FgGreen, color.Bold),
		report.LevelInfo:    color.New(color.FgBlue, color.Bold),
	}
)

func newShowCmd(opts *globalOptions) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "show [page]",
		Short: "Render a report page in the terminal",
		Long:  `Render one report page (overview, insights, regional, impact, actions) or, with --all, every page in navigation order.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.build()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if all {
				for _, ref := range r.Pages() {
					p, _ := r.Page(ref.ID)
					renderPage(out, p)
				}
				return nil
			}
			id, ok := report.ParsePageID(args[0])
			if !ok {
				return fmt.Errorf("unknown page %q (run 'riskctl pages' for the list)", args[0])
			}
			p, _ := r.Page(id)
			renderPage(out, p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "render every page")
	return cmd
}

func renderPage(w io.Writer, p *report.Page) {
	headingColor.Fprintln(w, p.Title)
	if p.Subtitle != "" {
		faintColor.Fprintln(w, p.Subtitle)
	}
	fmt.Fprintln(w)
	for _, s := range p.Sections {
		renderSection(w, s)
		fmt.Fprintln(w)
	}
}

func renderSection(w io.Writer, s report.Section) {
	if s.Title != "" {
		titleColor.Fprintln(w, s.Title)
	}
	switch s.Type {
	case report.SectionMetrics:
		renderMetrics(w, s.Metrics)
	case report.SectionChart:
		renderChart(w, s.Chart)
	case report.SectionTable:
		renderTable(w, s.Table)
	case report.SectionCallout:
		renderCallout(w, s.Callout)
	case report.SectionTabs:
		renderTabs(w, s.Tabs)
	case report.SectionSteps:
		renderSteps(w, s.Steps)
	case report.SectionText:
		for _, line := range s.Text {
			fmt.Fprintln(w, line)
		}
	}
}

func renderMetrics(w io.Writer, metrics []report.Metric) {
	table := newTable(w)
	table.SetHeader([]string{"Metric", "Value", "Change"})
	for _, m := range metrics {
		table.Append([]string{m.Label, m.Value, m.Delta})
	}
	table.Render()
}

// renderChart draws each series as horizontal text bars scaled to the
// largest value in the chart.
func renderChart(w io.Writer, c *report.ChartConfig) {
	if c == nil {
		return
	}
	titleColor.Fprintln(w, c.Title)
	var top float64
	labelWidth := 0
	for _, s := range c.Series {
		for _, p := range s.Data {
			top = math.Max(top, p.Value)
			labelWidth = max(labelWidth, len(p.Label))
		}
	}
	for _, s := range c.Series {
		if len(c.Series) > 1 {
			faintColor.Fprintln(w, s.Name)
		}
		for _, p := range s.Data {
			fmt.Fprintf(w, "  %-*s %s %s\n", labelWidth, p.Label, textBar(p.Value, top, barWidth), trimFloat(p.Value))
		}
	}
	for _, ref := range c.ReferenceLines {
		fmt.Fprintf(w, "  ┆ %s\n", ref.Label)
	}
}

func textBar(v, top float64, width int) string {
	if top <= 0 || v <= 0 {
		return ""
	}
	n := int(math.Round(v / top * float64(width)))
	return strings.Repeat("█", max(n, 1))
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderTable(w io.Writer, t *report.TableData) {
	if t == nil {
		return
	}
	titleColor.Fprintln(w, t.Title)
	table := newTable(w)
	header := make([]string, len(t.Columns))
	align := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Label
		align[i] = alignment(col.Align)
	}
	table.SetHeader(header)
	table.SetColumnAlignment(align)
	table.AppendBulk(t.Rows)
	if t.Summary != nil {
		footer := make([]string, len(t.Columns))
		footer[0] = t.Summary.Label
		for i, col := range t.Columns {
			if v, ok := t.Summary.Values[col.Key]; ok {
				footer[i] = v
			}
		}
		table.SetFooter(footer)
	}
	table.Render()
}

func alignment(a string) int {
	switch a {
	case "right":
		return tablewriter.ALIGN_RIGHT
	case "center":
		return tablewriter.ALIGN_CENTER
	default:
		return tablewriter.ALIGN_LEFT
	}
}

func renderCallout(w io.Writer, c *report.Callout) {
	if c == nil {
		return
	}
	col, ok := levelColors[c.Level]
	if !ok {
		col = titleColor
	}
	col.Fprintln(w, c.Title)
	for _, line := range c.Lines {
		fmt.Fprintln(w, "  "+line)
	}
}

func renderTabs(w io.Writer, tabs []report.Tab) {
	for _, tab := range tabs {
		headingColor.Fprintf(w, "[%s] ", tab.Label)
		titleColor.Fprintln(w, tab.Heading)
		fmt.Fprintln(w, "  Why: "+tab.Why)
		for _, a := range tab.Actions {
			fmt.Fprintln(w, "  • "+a)
		}
		fmt.Fprintln(w, "  Impact: "+tab.Impact)
	}
}

func renderSteps(w io.Writer, steps []report.Step) {
	for _, s := range steps {
		titleColor.Fprintf(w, "%s: %s\n", s.Window, s.Title)
		fmt.Fprintln(w, "  "+s.Summary)
		for _, d := range s.Details {
			fmt.Fprintln(w, "  • "+d)
		}
		if s.Attachment == report.AttachmentCriticalCases {
			faintColor.Fprintln(w, "  download: riskctl export --template -o critical-cases.xlsx")
		}
	}
}
