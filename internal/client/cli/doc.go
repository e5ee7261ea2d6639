// Package cli provides the interactive command-line client.
//
// It wires configuration, the wallet provider, the verifier client, and the
// on-chain feed into an interactive REPL. Typical flow: connect a wallet or
// sign in with email and password, then read and publish posts.
//
// Key features:
//   - connect: wallet challenge–response sign-in
//   - login / register: email and password accounts on the verifier
//   - feed / my: read the on-chain feed
//   - post: publish a post, optionally with pinned media
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
