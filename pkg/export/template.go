package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/riskboard/riskboard/pkg/derive"
	"github.com/riskboard/riskboard/pkg/report"
	"github.com/riskboard/riskboard/pkg/types"
)

// Template sheet names.
const (
	SheetCases        = "Critical Cases"
	SheetInstructions = "Instructions"
)

// templateRows is how many data rows the drop-down validations cover.
const templateRows = 5000

// CaseColumns are the headers of the critical-cases sheet.
var CaseColumns = []string{
	"Beneficiary ID", "Full Name", "Phone", "Region", "Days Since Last Claim",
	"Last Claim Date", "Action Priority", "Contact Status", "Agent", "Notes",
}

var contactStatuses = []string{"Not contacted", "SMS sent", "Called", "Responded", "Screening booked", "Lost"}

// WriteCriticalCasesTemplate writes an empty outreach sheet for beneficiaries
// past the inactivity threshold. Region, priority and status columns carry
// drop-down validations; the instructions sheet lists the priority regions.
func WriteCriticalCasesTemplate(w io.Writer, r *report.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	if err := f.SetSheetName("Sheet1", SheetCases); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	if err := writeSheet(f, SheetCases, header, CaseColumns, nil); err != nil {
		return err
	}

	regions := make([]string, len(r.Strategy))
	for i, s := range r.Strategy {
		regions[i] = s.Region
	}
	priorities := []string{
		string(types.PriorityUrgent), string(types.PriorityHigh),
		string(types.PriorityMedium), string(types.PriorityStudy),
	}
	for _, v := range []struct {
		col  string
		list []string
	}{
		{"D", regions},
		{"G", priorities},
		{"H", contactStatuses},
	} {
		if err := dropList(f, v.col, v.list); err != nil {
			return err
		}
	}

	days := excelize.NewDataValidation(true)
	days.Sqref = fmt.Sprintf("E2:E%d", templateRows+1)
	if err := days.SetRange(r.Insights.Model.InactivityDays, 3650, excelize.DataValidationTypeWhole, excelize.DataValidationOperatorBetween); err != nil {
		return fmt.Errorf("export: days validation: %w", err)
	}
	if err := f.AddDataValidation(SheetCases, days); err != nil {
		return fmt.Errorf("export: days validation: %w", err)
	}

	if _, err := f.NewSheet(SheetInstructions); err != nil {
		return fmt.Errorf("export: new sheet: %w", err)
	}
	lines := instructions(r)
	rows := make([][]any, len(lines))
	for i, l := range lines {
		rows[i] = []any{l}
	}
	if err := writeSheet(f, SheetInstructions, header, []string{"How to use this sheet"}, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetInstructions, "A", "A", 90); err != nil {
		return fmt.Errorf("export: instructions width: %w", err)
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write template: %w", err)
	}
	return nil
}

func dropList(f *excelize.File, col string, list []string) error {
	dv := excelize.NewDataValidation(true)
	dv.Sqref = fmt.Sprintf("%s2:%s%d", col, col, templateRows+1)
	if err := dv.SetDropList(list); err != nil {
		return fmt.Errorf("export: column %s list: %w", col, err)
	}
	if err := f.AddDataValidation(SheetCases, dv); err != nil {
		return fmt.Errorf("export: column %s validation: %w", col, err)
	}
	return nil
}

func instructions(r *report.Report) []string {
	m := r.Insights.Model
	lines := []string{
		fmt.Sprintf("List every beneficiary with %d+ days since their last claim (about %d expected).", m.InactivityDays, m.CriticalCases),
		"Work the list region by region in priority order:",
	}
	for _, p := range []types.Priority{types.PriorityUrgent, types.PriorityHigh} {
		for _, s := range derive.WithPriority(r.Strategy, p) {
			lines = append(lines, fmt.Sprintf("  %s: %s (%.1f%% dropout, %d beneficiaries)", p, s.Region, s.DropoutRate, s.Beneficiaries))
		}
	}
	lines = append(lines,
		"Update Contact Status after every SMS or call.",
		"Escalate non-responders to a field agent after 2 days.",
	)
	return lines
}
