// Package main hosts the tracktor CLI entrypoint and command graph.
//
// The Cobra command tree opens a review session on a dataset directory and
// exposes frame inspection, identity corrections, event navigation, snapshot
// export, and journal maintenance. Configuration resolution, logging setup,
// and session lifetime live in commandContext so subcommands stay declarative.
//
// Add behavior to the internal packages first and surface it here.
package main
