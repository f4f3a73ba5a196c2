// Package dataset holds the embedded analytics the report is built from.
//
// Insights() and Regions() are the two providers: zero-argument, deterministic
// and side-effect free. Every call returns a fresh copy, so callers may keep or
// modify the result without affecting anyone else.
//
// New() bundles the provider output into an immutable Dataset, constructed once
// at process start and passed explicitly to the report builder. There is no
// package-level cache.
package dataset
