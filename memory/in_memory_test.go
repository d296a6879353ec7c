package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryService_ScopeIsolation(t *testing.T) {
	ctx := context.Background()
	svc := NewInMemoryService()

	require.NoError(t, svc.Add(ctx, "podA::user1", "User's lucky number is 73", nil))
	require.NoError(t, svc.Add(ctx, "podA::user2", "User's lucky number is 12", nil))

	// Same scope sees the record.
	results, err := svc.Search(ctx, "podA::user1", "lucky number", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Content, "73")

	// A different user under the same pod sees only their own record.
	results, err = svc.Search(ctx, "podA::user2", "lucky number", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Content, "12")

	// An unrelated scope sees nothing.
	results, err = svc.Search(ctx, "podB::user1", "lucky number", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestInMemoryService_SearchOrderingAndLimit(t *testing.T) {
	ctx := context.Background()
	svc := NewInMemoryService()

	require.NoError(t, svc.Add(ctx, "pod::u", "posting time is 9am", nil))
	require.NoError(t, svc.Add(ctx, "pod::u", "preferred posting cadence", nil))
	require.NoError(t, svc.Add(ctx, "pod::u", "unrelated note", nil))

	results, err := svc.Search(ctx, "pod::u", "posting time", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	// Full-term match outranks the partial one.
	assert.Equal(t, "posting time is 9am", results[0].Content)

	results, err = svc.Search(ctx, "pod::u", "posting", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestInMemoryService_NoMatchIsEmptyNotError(t *testing.T) {
	svc := NewInMemoryService()
	results, err := svc.Search(context.Background(), "pod::u", "anything", 5)
	assert.NoError(t, err)
	assert.Empty(t, results)
}
