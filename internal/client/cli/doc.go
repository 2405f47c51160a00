// Package cli provides the interactive recruitcli command-line client.
//
// It wires configuration, the local token store, the REST API client and the
// session/resume services into an interactive REPL. Typical flow: restore the
// previous session from disk, show the resolved mode, and execute user
// commands.
//
// Key features:
//   - Register / Login / Logout with persisted sessions
//   - Profile editing, avatar upload, role switching, password change
//   - Resume upload with live progress, rename, delete, exclusive activation
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
