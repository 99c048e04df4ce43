package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-tasks/internal/model/task"
)

func TestNewRequest_AllocatesPerCall(t *testing.T) {
	first := newRequest[*task.CreateTaskPayload]()
	second := newRequest[*task.CreateTaskPayload]()

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.NotSame(t, first, second)

	first.Title = "changed"
	assert.Empty(t, second.Title)
}
