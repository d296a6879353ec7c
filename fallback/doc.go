// Package fallback implements the deterministic direct-access route that
// bypasses the agent for known intent classes. Routing is driven by a rule
// table versioned in code, so the bypass conditions stay auditable without
// touching the agent instructions. The initial table carries one rule:
// campaign listing, answered straight from the data store.
package fallback
