package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/riskboard/riskboard/pkg/derive"
	"github.com/riskboard/riskboard/pkg/report"
)

// ContentTypeXLSX is the media type of the workbooks written here.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook sheet names, in order.
const (
	SheetSummary    = "Summary"
	SheetFeatures   = "Features"
	SheetStrategy   = "Regional Strategy"
	SheetProjection = "Projection"
	SheetAllocation = "Allocation"
	SheetTimeline   = "30-Day Plan"
)

// WriteWorkbook writes the report's derived tables as an xlsx workbook.
func WriteWorkbook(w io.Writer, r *report.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	sheets := []struct {
		name string
		fill func(*report.Report) ([]string, [][]any)
	}{
		{SheetSummary, summaryRows},
		{SheetFeatures, featureRows},
		{SheetStrategy, strategyRows},
		{SheetProjection, projectionRows},
		{SheetAllocation, allocationRows},
		{SheetTimeline, timelineRows},
	}
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("export: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("export: new sheet %q: %w", s.name, err)
		}
		headers, rows := s.fill(r)
		if err := writeSheet(f, s.name, header, headers, rows); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	id, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F4E78"}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("export: header style: %w", err)
	}
	return id, nil
}

// writeSheet writes a bold header row followed by rows, freezes the header
// and widens the used columns.
func writeSheet(f *excelize.File, sheet string, style int, headers []string, rows [][]any) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("export: %s header: %w", sheet, err)
		}
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(headers) == 0 {
		return nil
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(sheet, "A1", last+"1", style); err != nil {
		return fmt.Errorf("export: %s style: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", last, 22); err != nil {
		return fmt.Errorf("export: %s widths: %w", sheet, err)
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func summaryRows(r *report.Report) ([]string, [][]any) {
	b := r.Insights.BusinessImpact
	m := r.Insights.Model
	inv, sav, net := derive.ProjectionTotals(r.Projection)
	return []string{"Figure", "Value"}, [][]any{
		{"Report", r.Options.Title},
		{"Beneficiaries analysed", m.Beneficiaries},
		{"Annual dropouts", b.AnnualDropouts},
		{"Dropout rate (%)", b.DropoutRate},
		{"Annual cost (M)", b.AnnualCost},
		{"Potential savings (M)", b.PotentialSavings},
		{"3-year ROI (%)", b.ROI3Year},
		{"Model accuracy (%)", m.AccuracyPct},
		{"Payback (months)", m.PaybackMonths},
		{"3-year investment (M)", inv},
		{"3-year savings (M)", sav},
		{"3-year net benefit (M)", net},
	}
}

func featureRows(r *report.Report) ([]string, [][]any) {
	rows := make([][]any, 0, len(r.Insights.TopFeatures))
	for _, f := range r.Insights.TopFeatures {
		rows = append(rows, []any{f.Rank, f.Feature, f.Importance})
	}
	return []string{"Rank", "Feature", "Importance"}, rows
}

func strategyRows(r *report.Report) ([]string, [][]any) {
	rows := make([][]any, 0, len(r.Strategy))
	for _, s := range r.Strategy {
		rows = append(rows, []any{s.Region, s.DropoutRate, s.Beneficiaries, string(s.RiskLevel), string(s.Priority), s.AnnualCost})
	}
	return []string{"Region", "Dropout Rate (%)", "Beneficiaries", "Risk Level", "Action Priority", "Annual Cost"}, rows
}

func projectionRows(r *report.Report) ([]string, [][]any) {
	p := r.Projection
	rows := make([][]any, 0, len(p.Years))
	for i, y := range p.Years {
		rows = append(rows, []any{y, p.Investment[i], p.Savings[i], p.NetBenefit[i]})
	}
	return []string{"Year", "Investment (M)", "Savings (M)", "Net Benefit (M)"}, rows
}

func allocationRows(r *report.Report) ([]string, [][]any) {
	rows := make([][]any, 0, len(r.Allocation))
	for _, a := range r.Allocation {
		rows = append(rows, []any{a.Intervention, a.SHAPPriority, a.BudgetPercent, a.AnnualBudget, a.DropoutsPrevented})
	}
	return []string{"Intervention", "SHAP Priority", "Budget %", "Annual Budget (M)", "Dropouts Prevented"}, rows
}

func timelineRows(r *report.Report) ([]string, [][]any) {
	rows := make([][]any, 0, len(r.Timeline))
	for _, w := range r.Timeline {
		rows = append(rows, []any{w.Week, w.Focus, w.KeyActivities, w.SuccessMetric})
	}
	return []string{"Week", "Focus", "Key Activities", "Success Metric"}, rows
}
