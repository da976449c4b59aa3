// Package journal records sync run history in a local SQLite database.
//
// Each export or import invocation becomes a run row with aggregate counts,
// and every series touched during the run gets an event row with its outcome.
// The 'runs' command reads this history back for display.
package journal
