package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "direct", err: NotFound("roadmap not found"), want: KindNotFound},
		{name: "wrapped", err: fmt.Errorf("generate: %w", ExternalService("llm unavailable", cause)), want: KindExternalService},
		{name: "plain error", err: cause, want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("bad json")
	err := MalformedAnalysis("analysis could not be parsed", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, MalformedAnalysis("", nil))
	assert.NotErrorIs(t, err, NotFound(""))
	assert.True(t, IsKind(err, KindMalformedAnalysis))
	assert.False(t, IsKind(nil, KindMalformedAnalysis))
	assert.Contains(t, err.Error(), "bad json")
}
