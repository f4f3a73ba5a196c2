// Package types defines the Go types shared by the report server and the CLI.
// These are the canonical in-memory representations of the dropout analytics
// (feature importance, business impact, regional records) and the tables
// derived from them. Values are immutable once constructed; producers hand out
// copies.
package types
