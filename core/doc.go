// Package core holds the shared domain types of the orchestration layer:
// conversations, authentication context, the per-request memory scope, tool
// contexts and the terminal request result.
//
// Everything in this package is either immutable after construction or owned
// by exactly one in-flight request. Nothing here may be cached across requests
// except by explicit contract (see RequestScope for the isolation rules).
package core
