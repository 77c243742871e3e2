// Package cli provides the interactive storefront command-line client.
//
// It wires configuration, the local session database, the backend API
// gateway, and an interactive REPL over the catalog, cart, and checkout
// flows. Typical flow: restore a persisted session, browse the catalog,
// manage the cart, and place an order.
//
// Key features:
//   - Register / Login / Logout with a session that survives restarts
//   - Browse the catalog with category filters and sort modes
//   - Cart management synchronized with the backend
//   - Checkout with cash-on-delivery or online payment
//   - Product management commands for admin accounts
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
