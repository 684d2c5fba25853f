// Package accountservice implements the Identity Store and Credit Ledger
// inside keygate.
//
// Layering:
// - domain: sentinel errors and invariants
// - application: use cases over explicit ports
// - ports: stable boundaries for persistence and key generation
// - adapters: concrete HTTP, memory, and postgres implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - The access key uniquely and stably maps to exactly one account.
// - Balances never go negative; check-and-debit is a single atomic step in
//   every repository implementation.
// - Keep this module self-contained under the identity-access context; other
//   modules reach it only through their own ports, wired in bootstrap.
package accountservice
