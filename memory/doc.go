// Package memory contains the durable conversational memory contract and its
// implementations: a Mem0 HTTP client for production and a process-local
// store for tests and demos.
//
// Every record is partitioned by a scope key (pod::user). Implementations
// must filter reads strictly by that key; the scoped Remember/Recall
// operations in this package are the only way tools touch memory, and they
// obtain the key from the owning request's scope, never from tool arguments.
package memory
