// Package preflight provides readiness checks for the paths and services a
// review session depends on.
//
// These checks run in two contexts:
//   - The session calls CheckDirectoryAccess on the export target when it
//     opens for writing, and warns if snapshots could not be written there.
//   - The CLI "tracktor check" command runs RunAll and prints every result.
package preflight
