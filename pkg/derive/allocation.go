package derive

import (
	"math"

	"github.com/riskboard/riskboard/pkg/types"
)

// ResourceAllocation returns the recommended split of the year-one budget
// across intervention categories.
func ResourceAllocation() ([]types.AllocationRow, error) {
	rows := []types.AllocationRow{
		{Intervention: "Claim Inactivity (90+ days)", SHAPPriority: "Priority #1", BudgetPercent: 60, AnnualBudget: 3.9, DropoutsPrevented: 1200},
		{Intervention: "High Claimants Support", SHAPPriority: "Priority #2", BudgetPercent: 20, AnnualBudget: 1.3, DropoutsPrevented: 400},
		{Intervention: "Age-Based Programs", SHAPPriority: "Priority #3", BudgetPercent: 15, AnnualBudget: 1.0, DropoutsPrevented: 300},
		{Intervention: "Regional Variations", SHAPPriority: "Supporting", BudgetPercent: 5, AnnualBudget: 0.3, DropoutsPrevented: 82},
	}
	if err := CheckAllocation(rows, YearOneInvestment); err != nil {
		return nil, err
	}
	return rows, nil
}

// CheckAllocation verifies that budget percentages add up to 100 and that
// the budgets add up to total (within Tolerance).
func CheckAllocation(rows []types.AllocationRow, total float64) error {
	pct := 0
	var budget float64
	for _, r := range rows {
		pct += r.BudgetPercent
		budget += r.AnnualBudget
	}
	if pct != 100 {
		return &ArithmeticInconsistency{Quantity: "budget_percent", Index: -1, Got: float64(pct), Want: 100}
	}
	if math.Abs(budget-total) > Tolerance {
		return &ArithmeticInconsistency{Quantity: "annual_budget", Index: -1, Got: budget, Want: total}
	}
	return nil
}
