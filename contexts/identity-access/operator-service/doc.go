// Package operatorservice implements the two-tier privilege model for the
// administrative command channel: owners are fixed in deployment
// configuration, admins are granted at runtime and persisted so a grant is
// never silently forgotten across restarts.
//
// The invariant OwnerSet ⊆ AdminSet holds at startup (idempotent merge of
// the persisted roster with the configured owners) and after every
// mutation. Roster writes go through the RosterStore port so the
// persistence mechanism is swappable without touching authorization logic.
package operatorservice
