// Package cli provides the interactive mmadmin command-line client.
//
// It wires configuration, the local credential store, the Mattermost session
// service, and an interactive REPL for server administration. Typical flow:
// restore a persisted session, validate the stored token against the server,
// start a background connectivity watcher, and execute user commands.
//
// Key features:
//   - Point the client at a server and probe its reachability
//   - Login restricted to system administrators, with durable credentials
//   - Browse, search and inspect users; activate and deactivate accounts
//   - Send password reset emails
//   - List teams and the built-in role inventory
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
