// Package derive computes the secondary tables the report shows from the
// embedded datasets. Every function here is pure: no I/O, no shared state.
//
//   - RegionalStrategy: annual cost per region (beneficiaries × dropout
//     rate × UnitIncidentCost) and an action priority looked up by region
//     name in a PriorityTable.
//   - FinancialProjection: the 3-year investment / savings / net benefit
//     series, reconciled year by year.
//   - ResourceAllocation: the intervention budget split, checked to add up to
//     100% and to the year-one investment.
//
// Two typed errors cover every failure: *ValidationError when an input does
// not have the expected shape, *ArithmeticInconsistency when a derived figure
// does not reconcile. Callers match them with errors.As.
package derive
