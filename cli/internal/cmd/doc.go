// Package cmd implements the riskctl command tree: terminal rendering of the
// report pages, spreadsheet export, the data consistency check and a reader
// for a running server's /metrics endpoint.
package cmd
