// Package display renders the shared user-facing messages pipup commands
// print around tables and summaries: collected warnings, the discovered
// upgrade plan, live per-package completion lines, and empty-state notices.
//
// Messages:
//
// Use message functions for consistent user feedback:
//
//	display.PrintWarnings(os.Stderr, collector.Messages())
//	display.PrintUpgradePlan(os.Stdout, records)
//
// Live lines:
//
// Use FormatResultLine for the per-package completion feedback printed as
// upgrade workers finish:
//
//	fmt.Fprintln(os.Stderr, display.FormatResultLine(res))
//
// Structured output modes (json/csv/xml) bypass this package entirely; see
// pkg/output for machine-readable rendering and for table layout.
package display
