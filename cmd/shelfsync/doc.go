// Package main hosts the shelfsync CLI entrypoint and command graph.
//
// The Cobra-based command tree covers both sync directions (export to
// series.json sidecars, import back into Komga), library inspection, run
// history display, and configuration scaffolding. It centralizes config
// resolution, credential prompting, and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
