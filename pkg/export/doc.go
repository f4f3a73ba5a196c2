// Package export renders a built report into downloadable artefacts:
// an xlsx workbook of the derived tables, the critical-cases outreach
// template, and SVG images of the report charts.
package export
