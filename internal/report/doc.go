// Package report holds the arithmetic behind the dashboard: query value
// parsing, cell statistics, ordering of machines and cells, and gap-free
// revenue series over a date range.
package report
