// Package agent implements the tool-calling dispatcher: it feeds the
// instruction set, the per-request tool set and the conversation to a model
// and drives a bounded decide -> execute -> decide loop until the model
// composes a final natural-language answer.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/revoshq/holygrail/core"
	"github.com/revoshq/holygrail/model"
	"github.com/revoshq/holygrail/tool"
)

// State labels the dispatcher's position in one turn.
type State string

const (
	// StateAwaitingToolDecision means the model is choosing whether to call
	// a tool or answer.
	StateAwaitingToolDecision State = "awaiting-tool-decision"
	// StateExecutingTool means a chosen tool is running.
	StateExecutingTool State = "executing-tool"
	// StateComposingFinalAnswer is terminal; it always yields exactly one
	// text output.
	StateComposingFinalAnswer State = "composing-final-answer"
)

// Options configure a Dispatcher.
type Options struct {
	// Instructions is the system instruction set; defaults to
	// DefaultInstructions.
	Instructions string
	// MaxToolRounds bounds how many times the model may return to the tool
	// decision state before the turn is abandoned as a model failure.
	MaxToolRounds int
	// MaxHistoryMessages caps how much prior conversation is folded into
	// the model request as side-channel context.
	MaxHistoryMessages int
}

// Dispatcher drives the tool-calling loop for one request at a time. The
// dispatcher itself is stateless between requests; everything request-bound
// arrives through Run's arguments.
type Dispatcher struct {
	llm  model.Model
	opts Options
}

// NewDispatcher creates a dispatcher over the given model.
func NewDispatcher(llm model.Model, optFns ...func(o *Options)) *Dispatcher {
	opts := Options{
		Instructions:       DefaultInstructions,
		MaxToolRounds:      8,
		MaxHistoryMessages: 20,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Dispatcher{llm: llm, opts: opts}
}

// Run executes one conversational turn: the sanitized user message plus the
// request's tool set, with prior conversation as context. Model and
// transport errors propagate unretried; tool failures are ordinary tool
// outputs the model composes around.
func (d *Dispatcher) Run(ctx context.Context, scope *core.RequestScope, tools []tool.Tool, userMessage string) (string, error) {
	logger := scope.Logger()

	definitions := make([]model.ToolDefinition, len(tools))
	byName := make(map[string]tool.Tool, len(tools))
	for i, t := range tools {
		definitions[i] = model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		}
		byName[t.Name()] = t
	}

	messages := d.contextMessages(scope.Conversation)
	messages = append(messages, model.ChatMessage{Role: core.RoleUser, Content: userMessage})

	state := StateAwaitingToolDecision
	for round := 0; round < d.opts.MaxToolRounds; round++ {
		logger.Debug("dispatcher.round", "round", round, "state", string(state))

		resp, err := d.llm.Generate(ctx, model.Request{
			Instructions: d.opts.Instructions,
			Messages:     messages,
			Tools:        definitions,
		})
		if err != nil {
			return "", errors.Wrap(err, "model call failed")
		}

		if len(resp.ToolCalls) == 0 {
			state = StateComposingFinalAnswer
			logger.Info("dispatcher.done", "state", string(state), "rounds", round)
			if resp.Content == "" {
				return "", errors.New("model returned neither text nor tool calls")
			}
			return resp.Content, nil
		}

		// Keep any interim text with the tool calls so later rounds see
		// the model's own words, not just the calls.
		messages = append(messages, model.ChatMessage{Role: core.RoleAssistant, Content: resp.Content, ToolCalls: resp.ToolCalls})
		for _, call := range resp.ToolCalls {
			state = StateExecutingTool
			messages = append(messages, model.ChatMessage{
				Role:       "tool",
				ToolCallID: call.ID,
				Name:       call.Name,
				Content:    d.executeTool(ctx, scope, byName, call),
			})
		}
		state = StateAwaitingToolDecision
	}

	return "", errors.Errorf("tool loop exceeded %d rounds without a final answer", d.opts.MaxToolRounds)
}

// executeTool runs one tool call and renders its outcome as the JSON payload
// handed back to the model. Failures of any kind (unknown tool, bad
// arguments, execution errors) are rendered as `{success:false, error}` data
// so the model can react in natural language.
func (d *Dispatcher) executeTool(ctx context.Context, scope *core.RequestScope, byName map[string]tool.Tool, call model.ToolCall) string {
	logger := scope.Logger()

	target, ok := byName[call.Name]
	if !ok {
		logger.Warn("dispatcher.tool.unknown", "tool", call.Name)
		return failurePayload(fmt.Sprintf("unknown tool %q", call.Name))
	}

	args := map[string]any{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			logger.Warn("dispatcher.tool.bad_arguments", "tool", call.Name, "error", err.Error())
			return failurePayload(fmt.Sprintf("invalid arguments: %v", err))
		}
	}

	result, err := target.Call(core.NewToolContext(ctx, scope, call.ID), args)
	if err != nil {
		return failurePayload(err.Error())
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return failurePayload(fmt.Sprintf("unserializable tool result: %v", err))
	}
	return string(payload)
}

// contextMessages folds prior conversation into the request, dropping the
// trailing user turn (it is re-appended sanitized) and trimming to the
// configured history window.
func (d *Dispatcher) contextMessages(conversation core.Conversation) []model.ChatMessage {
	history := conversation
	if n := len(history); n > 0 && history[n-1].Role == core.RoleUser {
		history = history[:n-1]
	}
	if len(history) > d.opts.MaxHistoryMessages {
		history = history[len(history)-d.opts.MaxHistoryMessages:]
	}

	messages := make([]model.ChatMessage, 0, len(history)+1)
	for _, msg := range history {
		messages = append(messages, model.ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	return messages
}

func failurePayload(message string) string {
	payload, _ := json.Marshal(map[string]any{"success": false, "error": message})
	return string(payload)
}
