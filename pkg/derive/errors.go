package derive

import "fmt"

// ValidationError reports input that does not match the shape the
// derivations assume (wrong region count, unknown region, broken ranking).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// ArithmeticInconsistency reports a derived figure that does not reconcile
// with the values it is derived from. Index is the position in the series,
// or -1 when the check applies to a total.
type ArithmeticInconsistency struct {
	Quantity string
	Index    int
	Got      float64
	Want     float64
}

func (e *ArithmeticInconsistency) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("arithmetic inconsistency: sum(%s) = %g, want %g", e.Quantity, e.Got, e.Want)
	}
	return fmt.Sprintf("arithmetic inconsistency: %s[%d] = %g, want %g", e.Quantity, e.Index, e.Got, e.Want)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
