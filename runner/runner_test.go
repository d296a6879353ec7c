package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revoshq/holygrail/agent"
	"github.com/revoshq/holygrail/memory"
	"github.com/revoshq/holygrail/model"
	"github.com/revoshq/holygrail/orchestrator"
	"github.com/revoshq/holygrail/revos"
	"github.com/revoshq/holygrail/tool"
)

func contextBlob(overrides map[string]any) string {
	blob := map[string]any{
		"user_id":      "user1",
		"pod_id":       "podA",
		"messages":     []map[string]string{{"role": "user", "content": "hello"}},
		"api_base_url": "http://localhost:3000/api/hgc",
		"mem0_key":     "m0-key",
		"openai_key":   "oa-key",
		"auth_token":   "token-abc",
	}
	for k, v := range overrides {
		if v == nil {
			delete(blob, k)
		} else {
			blob[k] = v
		}
	}
	raw, _ := json.Marshal(blob)
	return string(raw)
}

func envWith(blob string) func(string) string {
	return func(key string) string {
		if key == ContextEnvVar {
			return blob
		}
		return ""
	}
}

func mockRunner(llm model.Model, stdout, stderr *bytes.Buffer) *Runner {
	return New(func(o *Options) {
		o.Stdout = stdout
		o.Stderr = stderr
		o.NewOrchestrator = func(rc *RequestContext) *orchestrator.Orchestrator {
			registry := tool.NewRegistry(memory.NewInMemoryService(), revos.NewClient(rc.APIBaseURL))
			return orchestrator.New(registry, agent.NewDispatcher(llm))
		}
	})
}

func TestRun_Success(t *testing.T) {
	llm := model.NewMockModel("test")
	llm.Enqueue(model.Response{Content: "Hello! What would you like to work on?", FinishReason: "stop"})

	var stdout, stderr bytes.Buffer
	r := mockRunner(llm, &stdout, &stderr)

	code := r.Run(context.Background(), envWith(contextBlob(nil)))
	assert.Equal(t, ExitSuccess, code)
	assert.Empty(t, stderr.String())

	var out successResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.True(t, out.Success)
	assert.True(t, out.MemoryStored)
	assert.Contains(t, out.Text, "Hello")

	// The wire shape is flat: text/success/memory_stored, no error key.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &raw))
	assert.Contains(t, raw, "text")
	assert.Contains(t, raw, "success")
	assert.Contains(t, raw, "memory_stored")
	assert.NotContains(t, raw, "error")
}

func TestRun_MissingContextVariable(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := mockRunner(model.NewMockModel("test"), &stdout, &stderr)

	code := r.Run(context.Background(), envWith(""))
	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, stdout.String())

	var out failureResult
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &out))
	assert.Contains(t, out.Error, "HGC_CONTEXT")
}

func TestRun_EveryFieldRequired(t *testing.T) {
	fields := []string{"user_id", "pod_id", "messages", "api_base_url", "mem0_key", "openai_key", "auth_token"}
	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			llm := model.NewMockModel("test")
			var stdout, stderr bytes.Buffer
			r := mockRunner(llm, &stdout, &stderr)

			code := r.Run(context.Background(), envWith(contextBlob(map[string]any{field: nil})))
			assert.Equal(t, ExitFailure, code)
			assert.Empty(t, stdout.String(), "no partial execution on missing %s", field)
			assert.Empty(t, llm.Requests, "no model call on missing %s", field)

			var out failureResult
			require.NoError(t, json.Unmarshal(stderr.Bytes(), &out))
			assert.Contains(t, out.Error, field)
		})
	}
}

func TestRun_MalformedBlob(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := mockRunner(model.NewMockModel("test"), &stdout, &stderr)

	code := r.Run(context.Background(), envWith("{not json"))
	assert.Equal(t, ExitFailure, code)

	var out failureResult
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &out))
	assert.Contains(t, out.Error, "parse")
}

func TestRun_ValidationErrorKind(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := mockRunner(model.NewMockModel("test"), &stdout, &stderr)

	blob := contextBlob(map[string]any{"user_id": "bad user"})
	code := r.Run(context.Background(), envWith(blob))
	assert.Equal(t, ExitFailure, code)

	var out failureResult
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &out))
	assert.Equal(t, "ValidationError", out.ErrorKind)
}

func TestRun_OrchestrationErrorKind(t *testing.T) {
	llm := model.NewMockModel("test")
	llm.Enqueue(model.Response{FinishReason: "stop"}) // neither text nor tool calls

	var stdout, stderr bytes.Buffer
	r := mockRunner(llm, &stdout, &stderr)

	code := r.Run(context.Background(), envWith(contextBlob(nil)))
	assert.Equal(t, ExitFailure, code)

	var out failureResult
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &out))
	assert.Equal(t, "OrchestrationError", out.ErrorKind)
	assert.NotEmpty(t, out.Error)
}

func TestContextBlobHelperShape(t *testing.T) {
	// Guard the fixture itself: the default blob must validate.
	var rc RequestContext
	require.NoError(t, json.Unmarshal([]byte(contextBlob(nil)), &rc))
	require.NoError(t, rc.Validate())
}
