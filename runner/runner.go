// Package runner executes one orchestration request as an isolated process
// unit. The whole request context arrives in a single HGC_CONTEXT JSON blob;
// one result object goes to stdout on success or stderr on failure, with the
// exit code distinguishing the two. Running one process per request gives
// scope isolation by construction on top of the per-request scope the
// orchestrator already derives.
package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/revoshq/holygrail/agent"
	"github.com/revoshq/holygrail/core"
	"github.com/revoshq/holygrail/logging"
	"github.com/revoshq/holygrail/memory"
	"github.com/revoshq/holygrail/model/openai"
	"github.com/revoshq/holygrail/orchestrator"
	"github.com/revoshq/holygrail/revos"
	"github.com/revoshq/holygrail/tool"
	"github.com/revoshq/holygrail/validation"
)

// ContextEnvVar names the environment variable carrying the request blob.
const ContextEnvVar = "HGC_CONTEXT"

// Exit codes for the process boundary.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// RequestContext is the externally supplied blob. Every field is required;
// a missing or empty field fails the run before any external call.
type RequestContext struct {
	UserID     string         `json:"user_id"`
	PodID      string         `json:"pod_id"`
	Messages   []core.Message `json:"messages"`
	APIBaseURL string         `json:"api_base_url"`
	Mem0Key    string         `json:"mem0_key"`
	OpenAIKey  string         `json:"openai_key"`
	AuthToken  string         `json:"auth_token"`
}

// Validate checks that every required field is present.
func (rc *RequestContext) Validate() error {
	switch {
	case rc.UserID == "":
		return errors.New("missing required context field: user_id")
	case rc.PodID == "":
		return errors.New("missing required context field: pod_id")
	case len(rc.Messages) == 0:
		return errors.New("missing required context field: messages")
	case rc.APIBaseURL == "":
		return errors.New("missing required context field: api_base_url")
	case rc.Mem0Key == "":
		return errors.New("missing required context field: mem0_key")
	case rc.OpenAIKey == "":
		return errors.New("missing required context field: openai_key")
	case rc.AuthToken == "":
		return errors.New("missing required context field: auth_token")
	}
	return nil
}

// successResult is the stdout payload: the orchestration result plus
// whether memory tools were available during the turn.
type successResult struct {
	core.Result
	MemoryStored bool `json:"memory_stored"`
}

// failureResult is the stderr payload.
type failureResult struct {
	Error     string `json:"error"`
	ErrorKind string `json:"errorKind"`
}

// Options configure a Runner, mainly for tests.
type Options struct {
	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
	// Logger receives lifecycle events; nil means no logging.
	Logger logging.Logger
	// NewOrchestrator overrides orchestrator construction. Tests inject a
	// mock-model orchestrator here; the default builds the real OpenAI
	// stack from the request context.
	NewOrchestrator func(rc *RequestContext) *orchestrator.Orchestrator
}

// Runner runs exactly one request cycle.
type Runner struct {
	opts Options
}

// New builds a runner.
func New(optFns ...func(o *Options)) *Runner {
	opts := Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.NewOrchestrator == nil {
		opts.NewOrchestrator = defaultOrchestrator
	}
	return &Runner{opts: opts}
}

func defaultOrchestrator(rc *RequestContext) *orchestrator.Orchestrator {
	llm := openai.NewModel(func(o *openai.Options) { o.APIKey = rc.OpenAIKey })
	registry := tool.NewRegistry(memory.NewMem0Client(rc.Mem0Key), revos.NewClient(rc.APIBaseURL))
	return orchestrator.New(registry, agent.NewDispatcher(llm))
}

// Run executes one full cycle from the blob in env and returns the process
// exit code. Nothing runs until the blob parses and validates completely.
func (r *Runner) Run(ctx context.Context, env func(string) string) int {
	rc, err := r.readContext(env)
	if err != nil {
		return r.fail(err)
	}

	orch := r.opts.NewOrchestrator(rc)
	auth := core.AuthContext{UserID: rc.UserID, BearerToken: rc.AuthToken}

	text, err := orch.Process(ctx, core.Conversation(rc.Messages), rc.UserID, rc.PodID, auth)
	if err != nil {
		return r.fail(err)
	}

	out := successResult{
		Result:       core.Result{Text: text, Success: true},
		MemoryStored: true,
	}
	if err := json.NewEncoder(r.opts.Stdout).Encode(out); err != nil {
		return r.fail(errors.Wrap(err, "write result"))
	}
	return ExitSuccess
}

func (r *Runner) readContext(env func(string) string) (*RequestContext, error) {
	blob := env(ContextEnvVar)
	if blob == "" {
		return nil, errors.Errorf("%s environment variable not set", ContextEnvVar)
	}

	var rc RequestContext
	if err := json.Unmarshal([]byte(blob), &rc); err != nil {
		return nil, errors.Wrapf(err, "parse %s", ContextEnvVar)
	}
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *Runner) fail(err error) int {
	r.opts.Logger.Error("runner.failed", "error", err.Error(), "kind", errorKind(err))
	_ = json.NewEncoder(r.opts.Stderr).Encode(failureResult{
		Error:     err.Error(),
		ErrorKind: errorKind(err),
	})
	return ExitFailure
}

// errorKind classifies a failure for the caller on the other side of the
// process boundary.
func errorKind(err error) string {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return "ValidationError"
	}
	return "OrchestrationError"
}
