// Package cli provides the interactive price list admin command-line client.
//
// It wires configuration, local settings storage, the API layer, the session,
// and the optimistic cache behind an interactive REPL. Typical flow: restore
// a persisted session, start the background profile refresh, and execute user
// commands.
//
// Key features:
//   - Login via emailed verification code / Logout
//   - List, show, create, edit (with auto-save), delete price lists
//   - Bulk delete with all-or-nothing semantics
//   - Theme preference
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL, and the per-command methods for details.
package cli
