// Package holygrail is the Holy Grail Chat orchestration core: request
// validation, tenant and user scoped memory, tool-mediated data access, a
// deterministic campaign fallback path, a tool-calling agent loop and the
// process/HTTP entry points that run one chat turn end to end.
//
// The packages compose bottom-up: validation and core carry the shared
// types, memory and revos talk to the outside, tool builds the per-request
// capability set, agent drives the model, fallback answers known intents
// without it, and orchestrator ties one request cycle together for server
// and runner.
package holygrail

// Version is reported by the health endpoint and the CLI.
const Version = "1.0.0"
