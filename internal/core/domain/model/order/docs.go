// Package order contains the order aggregate and the pipeline state machine.
//
// The aggregate enforces the allowed-transition graph of the compliance
// pipeline, the reason rule for manual transitions, the approval/version
// lock, SLA pause bookkeeping and the client-input exchange. Every accepted
// transition yields exactly one TimelineEntry; the timeline, ordered by
// creation time, is the audit source of truth for the order's history.
//
// The action table in status.go is the single source of truth for which
// actions each status accepts; UI-side action lists are projections of it,
// never an independent configuration.
package order
