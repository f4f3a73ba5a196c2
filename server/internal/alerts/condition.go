package alerts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/riskboard/riskboard/pkg/types"
)

// numericFields are the region fields usable in arithmetic comparisons.
var numericFields = []string{"dropout_rate", "beneficiaries", "annual_cost"}

// enumWords are bound as parameters so rules can name priorities and risk
// levels without quoting them. Matching is case-insensitive.
var enumWords = []string{
	string(types.PriorityUrgent), string(types.PriorityHigh), string(types.PriorityMedium), string(types.PriorityStudy),
	string(types.RiskMediumHigh), string(types.RiskLowest),
}

// sample is the region used to type-check a condition at compile time.
var sample = types.RegionStrategy{
	RegionRecord: types.RegionRecord{Region: "sample", RiskLevel: types.RiskHigh},
	Priority:     types.PriorityUrgent,
}

// condition is a compiled rule expression such as
//
//	dropout_rate > 65
//	beneficiaries >= 1500 && priority != STUDY
//	annual_cost > 4000000
//	priority == URGENT
//	risk_level != LOWEST
type condition struct {
	expr *govaluate.EvaluableExpression
	// field is the numeric field reported as the triggering value. Conditions
	// that only test categorical fields report the dropout rate.
	field string
}

// compileCondition parses src and checks that it references only known
// fields and evaluates to a boolean.
func compileCondition(src string) (*condition, error) {
	if strings.TrimSpace(src) == "" {
		return nil, errors.New("empty condition")
	}
	expr, err := govaluate.NewEvaluableExpression(src)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", src, err)
	}
	known := parameters(sample)
	c := &condition{expr: expr, field: "dropout_rate"}
	picked := false
	for _, tok := range expr.Tokens() {
		if tok.Kind != govaluate.VARIABLE {
			continue
		}
		v, _ := tok.Value.(string)
		if _, ok := known[v]; !ok {
			return nil, fmt.Errorf("condition %q: unknown field %q", src, v)
		}
		if !picked && isNumericField(v) {
			c.field, picked = v, true
		}
	}
	if _, err := c.eval(sample); err != nil {
		return nil, fmt.Errorf("condition %q: %w", src, err)
	}
	return c, nil
}

// eval reports whether the condition holds for s.
func (c *condition) eval(s types.RegionStrategy) (bool, error) {
	out, err := c.expr.Evaluate(parameters(s))
	if err != nil {
		return false, err
	}
	fires, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("evaluates to %T, want bool", out)
	}
	return fires, nil
}

// value returns the triggering field of s.
func (c *condition) value(s types.RegionStrategy) float64 {
	v, _ := parameters(s)[c.field].(float64)
	return v
}

// parameters exposes one region to the expression evaluator. Numbers are
// float64 because govaluate compares only float64 operands.
func parameters(s types.RegionStrategy) map[string]interface{} {
	p := map[string]interface{}{
		"dropout_rate":  s.DropoutRate,
		"beneficiaries": float64(s.Beneficiaries),
		"annual_cost":   float64(s.AnnualCost),
		"priority":      strings.ToUpper(string(s.Priority)),
		"risk_level":    strings.ToUpper(string(s.RiskLevel)),
	}
	for _, w := range enumWords {
		p[w] = w
		p[strings.ToLower(w)] = w
	}
	return p
}

func isNumericField(name string) bool {
	for _, f := range numericFields {
		if f == name {
			return true
		}
	}
	return false
}
