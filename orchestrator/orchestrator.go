// Package orchestrator ties the request cycle together: validation, scope
// derivation, fallback routing and the agent loop. One Orchestrator instance
// is safe to share across requests; everything request-bound lives in the
// core.RequestScope built per call.
package orchestrator

import (
	"context"

	"github.com/revoshq/holygrail/agent"
	"github.com/revoshq/holygrail/core"
	"github.com/revoshq/holygrail/fallback"
	"github.com/revoshq/holygrail/logging"
	"github.com/revoshq/holygrail/tool"
	"github.com/revoshq/holygrail/validation"
)

// noMessageReply is returned when the conversation carries no user turn.
const noMessageReply = "I didn't receive a message. Please try again."

// Options configure an Orchestrator.
type Options struct {
	// Router handles deterministic intents before the agent sees them.
	// Nil disables the fallback path.
	Router *fallback.Router
	// Logger receives structured request lifecycle events. Nil means no
	// logging.
	Logger logging.Logger
}

// Orchestrator runs one full chat turn per Process call. The registry and
// dispatcher are long-lived and shared; tool closures and scope are fresh
// per request.
type Orchestrator struct {
	registry   *tool.Registry
	dispatcher *agent.Dispatcher
	router     *fallback.Router
	logger     logging.Logger
}

// New builds an orchestrator over shared, request-independent parts.
func New(registry *tool.Registry, dispatcher *agent.Dispatcher, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Orchestrator{
		registry:   registry,
		dispatcher: dispatcher,
		router:     opts.Router,
		logger:     opts.Logger,
	}
}

// Process executes one chat turn. Validation failures return a typed
// *validation.Error before any external call. The fallback router gets the
// raw last user message first; everything else goes through the agent with
// a per-request tool set.
func (o *Orchestrator) Process(ctx context.Context, conversation core.Conversation, userID, podID string, auth core.AuthContext) (string, error) {
	if valid, reason := validation.ValidateConversation(conversation); !valid {
		o.logger.Warn("orchestrator.validation_failed", "field", "messages", "reason", reason)
		return "", &validation.Error{Field: "messages", Reason: reason}
	}
	if valid, reason := validation.ValidateUserID(userID); !valid {
		o.logger.Warn("orchestrator.validation_failed", "field", "user_id", "reason", reason)
		return "", &validation.Error{Field: "user_id", Reason: reason}
	}
	if valid, reason := validation.ValidatePodID(podID); !valid {
		o.logger.Warn("orchestrator.validation_failed", "field", "pod_id", "reason", reason)
		return "", &validation.Error{Field: "pod_id", Reason: reason}
	}

	scope := core.NewRequestScope(podID, userID, auth, conversation, o.logger)
	logger := scope.Logger()
	logger.Info("orchestrator.process.start",
		"request_id", scope.RequestID,
		"scope_key", scope.ScopeKey,
		"messages", len(conversation),
	)

	raw, ok := conversation.LastUserMessage()
	if !ok {
		return noMessageReply, nil
	}

	if o.router != nil {
		text, handled, err := o.router.Route(ctx, scope, raw)
		if err != nil {
			return "", err
		}
		if handled {
			logger.Info("orchestrator.process.done", "request_id", scope.RequestID, "path", "fallback")
			return text, nil
		}
	}

	message := validation.Sanitize(raw)
	tools := o.registry.ForRequest(scope)

	text, err := o.dispatcher.Run(ctx, scope, tools, message)
	if err != nil {
		return "", err
	}
	logger.Info("orchestrator.process.done", "request_id", scope.RequestID, "path", "agent")
	return text, nil
}
