package core

import (
	"strings"

	"github.com/google/uuid"

	"github.com/revoshq/holygrail/logging"
)

// ScopeKeySeparator joins the tenant and user segments of a memory scope key.
const ScopeKeySeparator = "::"

// DeriveScopeKey composes the memory scope key partitioning persisted memory
// by tenant (pod) and user, e.g. "podA::user1". Optional extra segments
// narrow the scope further (for example to a single campaign). Segment
// contents are validated upstream against a restricted character class, so
// two distinct (pod, user) pairs never compose to the same key.
func DeriveScopeKey(podID, userID string, sub ...string) string {
	segments := append([]string{podID, userID}, sub...)
	return strings.Join(segments, ScopeKeySeparator)
}

// RequestScope is the per-request execution context. It owns the memory
// scope key for exactly one in-flight request and is captured by the tool
// closures constructed for that request.
//
// Isolation invariant: a RequestScope is built fresh for every incoming
// request and must never be stored on a long-lived or shared object. Two
// concurrent requests for different users each hold their own scope; sharing
// one would let recall/remember under key A silently read or write key B's
// memory, which is a cross-tenant data leak, not a performance bug.
type RequestScope struct {
	// RequestID uniquely identifies this request for log correlation.
	RequestID string
	// ScopeKey partitions all persisted memory touched by this request.
	ScopeKey string
	// Auth is the caller's identity, owned by this request only.
	Auth AuthContext
	// Conversation is the full client-supplied message history.
	Conversation Conversation

	logger logging.Logger
}

// NewRequestScope constructs the execution context for one request. The
// logger is decorated with the request id so every line emitted while the
// request is in flight can be correlated.
func NewRequestScope(podID, userID string, auth AuthContext, conversation Conversation, logger logging.Logger) *RequestScope {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &RequestScope{
		RequestID:    uuid.NewString(),
		ScopeKey:     DeriveScopeKey(podID, userID),
		Auth:         auth,
		Conversation: conversation,
		logger:       logger,
	}
}

// Logger returns the request-scoped logger.
func (s *RequestScope) Logger() logging.Logger { return s.logger }
