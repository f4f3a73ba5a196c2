package derive

import (
	"math"

	"github.com/riskboard/riskboard/pkg/types"
)

// Tolerance is the absolute slack allowed when reconciling float figures.
const Tolerance = 1e-6

// YearOneInvestment is the implementation cost in the first year, in
// millions of naira. The resource allocation must add up to it.
const YearOneInvestment = 6.5

// FinancialProjection returns the 3-year projection in millions of naira.
// The net benefit series is checked against savings minus investment.
func FinancialProjection() (types.FinancialProjection, error) {
	p := types.FinancialProjection{
		Years:      []string{"Year 1", "Year 2", "Year 3"},
		Investment: []float64{YearOneInvestment, 2.0, 2.0},
		Savings:    []float64{14.8, 14.8, 14.8},
		NetBenefit: []float64{8.3, 12.8, 12.8},
	}
	if err := Reconcile(p); err != nil {
		return types.FinancialProjection{}, err
	}
	return p, nil
}

// Reconcile verifies that the series are parallel and that
// NetBenefit[i] == Savings[i] - Investment[i] for every year.
func Reconcile(p types.FinancialProjection) error {
	n := len(p.Years)
	if len(p.Investment) != n || len(p.Savings) != n || len(p.NetBenefit) != n {
		return invalid("projection", "series lengths differ: years=%d investment=%d savings=%d net_benefit=%d",
			n, len(p.Investment), len(p.Savings), len(p.NetBenefit))
	}
	for i := 0; i < n; i++ {
		want := p.Savings[i] - p.Investment[i]
		if math.Abs(p.NetBenefit[i]-want) > Tolerance {
			return &ArithmeticInconsistency{Quantity: "net_benefit", Index: i, Got: p.NetBenefit[i], Want: want}
		}
	}
	return nil
}

// ProjectionTotals sums each series over the whole horizon.
func ProjectionTotals(p types.FinancialProjection) (investment, savings, net float64) {
	for i := range p.Years {
		investment += p.Investment[i]
		savings += p.Savings[i]
		net += p.NetBenefit[i]
	}
	return investment, savings, net
}
