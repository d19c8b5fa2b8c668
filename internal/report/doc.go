// Package report renders a check report for people and for machines.
//
// Text output is styled with lipgloss when ShouldStyle says the destination is
// an interactive terminal. JSON output carries a stable fingerprint per
// violation so that CI systems can track findings across runs.
package report
