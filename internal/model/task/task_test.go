package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-tasks/internal/errs"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"TODO", StatusTodo},
		{"todo", StatusTodo},
		{"  In_Progress ", StatusInProgress},
		{"done", StatusDone},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, in := range []string{"", "COMPLETED", "IN PROGRESS", "to do"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseStatus(in)

			var fieldErr *errs.InvalidFieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, "status", fieldErr.Field)
			assert.Equal(t, "Expected values [TODO, IN_PROGRESS, DONE]", fieldErr.Message)
		})
	}
}

func TestStatusOf_IsExact(t *testing.T) {
	got, err := StatusOf("IN_PROGRESS")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got)

	for _, in := range []string{"in_progress", " DONE", "Todo"} {
		_, err := StatusOf(in)

		var fieldErr *errs.InvalidFieldError
		require.ErrorAs(t, err, &fieldErr, in)
		assert.Equal(t, StatusValuesMessage, fieldErr.Message)
	}
}
