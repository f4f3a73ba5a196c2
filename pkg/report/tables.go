package report

import (
	"fmt"
	"strconv"

	"github.com/riskboard/riskboard/pkg/types"
)

// Table keys.
const (
	TableStrategy   = "strategy-matrix"
	TableAllocation = "resource-allocation"
	TableTimeline   = "implementation-plan"
)

func (o Options) strategyTable(rows []types.RegionStrategy) *TableData {
	t := &TableData{
		Key:   TableStrategy,
		Title: "📋 Regional Strategy Matrix",
		Columns: []Column{
			{Key: "region", Label: "Region", Type: "text", Align: "left"},
			{Key: "dropout_rate", Label: "Dropout Rate (%)", Type: "percent", Align: "right"},
			{Key: "beneficiaries", Label: "Beneficiaries", Type: "number", Align: "right"},
			{Key: "risk_level", Label: "Risk Level", Type: "text", Align: "center"},
			{Key: "priority", Label: "Action Priority", Type: "text", Align: "center"},
			{Key: "annual_cost", Label: "Annual Cost (" + o.CurrencySymbol + ")", Type: "currency", Align: "right"},
		},
	}
	var beneficiaries, cost int64
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Region,
			strconv.FormatFloat(r.DropoutRate, 'f', 1, 64),
			formatInt(int64(r.Beneficiaries)),
			r.RiskLevel.Label(),
			string(r.Priority),
			o.money(r.AnnualCost),
		})
		beneficiaries += int64(r.Beneficiaries)
		cost += r.AnnualCost
	}
	t.Summary = &Summary{
		Label: "Total",
		Values: map[string]string{
			"beneficiaries": formatInt(beneficiaries),
			"annual_cost":   o.money(cost),
		},
	}
	return t
}

func (o Options) allocationTable(rows []types.AllocationRow) *TableData {
	t := &TableData{
		Key:   TableAllocation,
		Title: "💼 Recommended Budget Allocation",
		Columns: []Column{
			{Key: "intervention", Label: "Intervention", Type: "text", Align: "left"},
			{Key: "shap_priority", Label: "SHAP Priority", Type: "text", Align: "left"},
			{Key: "budget_percent", Label: "Budget %", Type: "percent", Align: "right"},
			{Key: "annual_budget", Label: "Annual Budget (" + o.CurrencySymbol + "M)", Type: "currency", Align: "right"},
			{Key: "expected_impact", Label: "Expected Impact", Type: "text", Align: "left"},
		},
	}
	var percent int
	var budget float64
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Intervention,
			r.SHAPPriority,
			fmt.Sprintf("%d%%", r.BudgetPercent),
			strconv.FormatFloat(r.AnnualBudget, 'f', 1, 64),
			formatInt(int64(r.DropoutsPrevented)) + " dropouts prevented",
		})
		percent += r.BudgetPercent
		budget += r.AnnualBudget
	}
	t.Summary = &Summary{
		Label: "Total",
		Values: map[string]string{
			"budget_percent": fmt.Sprintf("%d%%", percent),
			"annual_budget":  strconv.FormatFloat(budget, 'f', 1, 64),
		},
	}
	return t
}

func timelineTable(weeks []types.TimelineWeek) *TableData {
	t := &TableData{
		Key:   TableTimeline,
		Title: "📅 30-Day Implementation Plan",
		Columns: []Column{
			{Key: "week", Label: "Week", Type: "text", Align: "left"},
			{Key: "focus", Label: "Focus", Type: "text", Align: "left"},
			{Key: "key_activities", Label: "Key Activities", Type: "text", Align: "left"},
			{Key: "success_metric", Label: "Success Metric", Type: "text", Align: "left"},
		},
	}
	for _, w := range weeks {
		t.Rows = append(t.Rows, []string{w.Week, w.Focus, w.KeyActivities, w.SuccessMetric})
	}
	return t
}
