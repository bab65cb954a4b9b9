package interview

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"career-compass-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFunc func(ctx context.Context, layer Layer, history []HistoryEntry) (string, error)

func (f generatorFunc) NextQuestion(ctx context.Context, layer Layer, history []HistoryEntry) (string, error) {
	return f(ctx, layer, history)
}

func countingGenerator(calls *int32) generatorFunc {
	return func(ctx context.Context, layer Layer, history []HistoryEntry) (string, error) {
		n := atomic.AddInt32(calls, 1)
		return layer.Name + " follow-up " + string(rune('0'+n)), nil
	}
}

func singleLayerBank(followUps int) *Bank {
	return &Bank{
		FollowUpsPerLayer: followUps,
		Assessment: []Layer{
			{ID: "interests", Name: "Interests", InitialQuestion: "What do you enjoy?"},
		},
	}
}

func newTestMachine(gen QuestionGenerator, timeout time.Duration) *Machine {
	return NewMachine(gen, timeout, logger.NewNopLogger())
}

func TestSubmitAnswer_BlankAnswerDoesNotMutate(t *testing.T) {
	var calls int32
	m := newTestMachine(countingGenerator(&calls), time.Second)
	s := NewAssessmentSession("user-1", DefaultBank())
	before := s.Clone()

	for _, answer := range []string{"", "   ", "\n\t"} {
		err := m.SubmitAnswer(context.Background(), s, answer)
		assert.ErrorIs(t, err, ErrEmptyAnswer)
	}

	assert.Equal(t, before.History, s.History)
	assert.Equal(t, before.CurrentQuestion, s.CurrentQuestion)
	assert.Equal(t, before.QuestionCountInLayer, s.QuestionCountInLayer)
	assert.Equal(t, before.Status, s.Status)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestSingleQuestionLayerGoesStraightToOptionalInput(t *testing.T) {
	var calls int32
	m := newTestMachine(countingGenerator(&calls), time.Second)
	s := NewAssessmentSession("user-1", singleLayerBank(0))

	require.NoError(t, m.SubmitAnswer(context.Background(), s, "I like chess"))

	assert.Equal(t, StatusAwaitingOptionalInput, s.Status)
	assert.True(t, s.ShowLayerInput)
	assert.Zero(t, atomic.LoadInt32(&calls))

	require.NoError(t, m.CompleteLayer(s, ""))

	assert.Equal(t, StatusReadyToSubmit, s.Status)
	require.Len(t, s.History, 1)
	assert.Equal(t, HistoryEntry{
		LayerID:   "interests",
		LayerName: "Interests",
		Question:  "What do you enjoy?",
		Answer:    "I like chess",
	}, s.History[0])
}

func TestFollowUpsNeverExceedCap(t *testing.T) {
	var calls int32
	m := newTestMachine(countingGenerator(&calls), time.Second)
	s := NewAssessmentSession("user-1", singleLayerBank(3))

	for i := 0; i < 4; i++ {
		require.NoError(t, m.SubmitAnswer(context.Background(), s, "answer"))
		assert.LessOrEqual(t, s.QuestionCountInLayer, 3)
	}

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, StatusAwaitingOptionalInput, s.Status)
	assert.Len(t, s.History, 4)

	err := m.SubmitAnswer(context.Background(), s, "one too many")
	assert.ErrorIs(t, err, ErrNotAwaitingAnswer)
	assert.Len(t, s.History, 4)
}

func TestRequestNextQuestion_Fallbacks(t *testing.T) {
	tests := []struct {
		name      string
		generator generatorFunc
		want      string
	}{
		{
			name: "generator error",
			generator: func(ctx context.Context, layer Layer, history []HistoryEntry) (string, error) {
				return "", errors.New("quota exceeded")
			},
			want: FallbackQuestion,
		},
		{
			name: "timeout honoured by generator",
			generator: func(ctx context.Context, layer Layer, history []HistoryEntry) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			},
			want: FallbackQuestion,
		},
		{
			name: "generator ignores context",
			generator: func(ctx context.Context, layer Layer, history []HistoryEntry) (string, error) {
				time.Sleep(300 * time.Millisecond)
				return "too late", nil
			},
			want: FallbackQuestion,
		},
		{
			name: "blank result",
			generator: func(ctx context.Context, layer Layer, history []HistoryEntry) (string, error) {
				return "  \n", nil
			},
			want: EmptyQuestionFallback,
		},
		{
			name: "trimmed result",
			generator: func(ctx context.Context, layer Layer, history []HistoryEntry) (string, error) {
				return "  Which project taught you the most?\n", nil
			},
			want: "Which project taught you the most?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(tt.generator, 30*time.Millisecond)
			start := time.Now()
			got := m.RequestNextQuestion(context.Background(), Layer{ID: "skills", Name: "Skills"}, nil)
			assert.Equal(t, tt.want, got)
			assert.Less(t, time.Since(start), 250*time.Millisecond)
		})
	}
}

func TestSubmitAnswer_TimeoutStillAdvances(t *testing.T) {
	slow := generatorFunc(func(ctx context.Context, layer Layer, history []HistoryEntry) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	m := newTestMachine(slow, 20*time.Millisecond)
	s := NewAssessmentSession("user-1", singleLayerBank(3))

	require.NoError(t, m.SubmitAnswer(context.Background(), s, "I build robots"))

	assert.Equal(t, FallbackQuestion, s.CurrentQuestion)
	assert.Equal(t, 1, s.QuestionCountInLayer)
	assert.Equal(t, StatusAwaitingAnswer, s.Status)
}

func TestGeneratorReceivesOnlyCurrentLayerHistory(t *testing.T) {
	var seen []HistoryEntry
	gen := generatorFunc(func(ctx context.Context, layer Layer, history []HistoryEntry) (string, error) {
		seen = history
		return "next?", nil
	})
	bank := &Bank{
		FollowUpsPerLayer: 1,
		Assessment: []Layer{
			{ID: "a", Name: "A", InitialQuestion: "qa"},
			{ID: "b", Name: "B", InitialQuestion: "qb"},
		},
	}
	m := newTestMachine(gen, time.Second)
	s := NewAssessmentSession("user-1", bank)

	require.NoError(t, m.SubmitAnswer(context.Background(), s, "a1"))
	require.NoError(t, m.SubmitAnswer(context.Background(), s, "a2"))
	require.NoError(t, m.CompleteLayer(s, "extra"))
	require.NoError(t, m.SubmitAnswer(context.Background(), s, "b1"))

	require.Len(t, seen, 1)
	assert.Equal(t, "b", seen[0].LayerID)
	assert.Equal(t, "b1", seen[0].Answer)
}

func TestCompleteLayer(t *testing.T) {
	bank := &Bank{
		FollowUpsPerLayer: 0,
		Assessment: []Layer{
			{ID: "a", Name: "A", InitialQuestion: "qa"},
			{ID: "b", Name: "B", InitialQuestion: "qb"},
		},
	}

	t.Run("rejected while awaiting answer", func(t *testing.T) {
		m := newTestMachine(nil, time.Second)
		s := NewAssessmentSession("user-1", bank)
		assert.ErrorIs(t, m.CompleteLayer(s, "x"), ErrNotAwaitingLayerInput)
		assert.Empty(t, s.History)
	})

	t.Run("optional text appends one addendum and advances", func(t *testing.T) {
		m := newTestMachine(nil, time.Second)
		s := NewAssessmentSession("user-1", bank)
		require.NoError(t, m.SubmitAnswer(context.Background(), s, "a1"))
		require.NoError(t, m.CompleteLayer(s, "  I also volunteer  "))

		require.Len(t, s.History, 2)
		assert.Equal(t, HistoryEntry{
			LayerID:   "a",
			LayerName: "A",
			Question:  AdditionalContextQuestion,
			Answer:    "I also volunteer",
			Type:      EntryTypeOptional,
		}, s.History[1])
		assert.Equal(t, 1, s.CurrentLayerIndex)
		assert.Equal(t, 0, s.QuestionCountInLayer)
		assert.Equal(t, "qb", s.CurrentQuestion)
		assert.False(t, s.ShowLayerInput)
		assert.Equal(t, StatusAwaitingAnswer, s.Status)
	})

	t.Run("blank optional text appends nothing", func(t *testing.T) {
		m := newTestMachine(nil, time.Second)
		s := NewAssessmentSession("user-1", bank)
		require.NoError(t, m.SubmitAnswer(context.Background(), s, "a1"))
		require.NoError(t, m.CompleteLayer(s, "   "))
		assert.Len(t, s.History, 1)
	})

	t.Run("last layer becomes ready to submit then complete", func(t *testing.T) {
		m := newTestMachine(nil, time.Second)
		s := NewAssessmentSession("user-1", bank)
		require.NoError(t, m.SubmitAnswer(context.Background(), s, "a1"))
		require.NoError(t, m.CompleteLayer(s, ""))
		require.NoError(t, m.SubmitAnswer(context.Background(), s, "b1"))
		require.NoError(t, m.CompleteLayer(s, ""))

		assert.Equal(t, StatusReadyToSubmit, s.Status)
		assert.Equal(t, float64(100), s.Progress())
		assert.ErrorIs(t, m.SubmitAnswer(context.Background(), s, "late"), ErrNotAwaitingAnswer)

		require.NoError(t, m.MarkComplete(s))
		assert.Equal(t, StatusComplete, s.Status)
		assert.ErrorIs(t, m.SubmitAnswer(context.Background(), s, "late"), ErrSessionComplete)
		assert.ErrorIs(t, m.MarkComplete(s), ErrNotReadyToSubmit)
	})
}

func TestValidationSessionUsesPreDeclaredQuestions(t *testing.T) {
	var calls int32
	m := newTestMachine(countingGenerator(&calls), time.Second)
	s, err := NewValidationSession("user-1", []Layer{
		{ID: "skill-validation", Name: "Skill", Questions: []string{"q1", "q2"}},
		{ID: "role-suitability", Name: "Role", Questions: []string{"q3"}},
	}, []byte(`{"skills":["Go"]}`))
	require.NoError(t, err)

	assert.Equal(t, "q1", s.CurrentQuestion)
	require.NoError(t, m.SubmitAnswer(context.Background(), s, "a1"))
	assert.Equal(t, "q2", s.CurrentQuestion)
	require.NoError(t, m.SubmitAnswer(context.Background(), s, "a2"))
	assert.Equal(t, StatusAwaitingOptionalInput, s.Status)
	require.NoError(t, m.CompleteLayer(s, ""))
	assert.Equal(t, "q3", s.CurrentQuestion)

	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestNewValidationSessionRejectsEmptyLayer(t *testing.T) {
	_, err := NewValidationSession("user-1", []Layer{{ID: "x", Name: "X"}}, nil)
	assert.Error(t, err)

	_, err = NewValidationSession("user-1", nil, nil)
	assert.Error(t, err)
}

func TestProgress(t *testing.T) {
	m := newTestMachine(generatorFunc(func(ctx context.Context, layer Layer, history []HistoryEntry) (string, error) {
		return "more?", nil
	}), time.Second)
	bank := &Bank{
		FollowUpsPerLayer: 1,
		Assessment: []Layer{
			{ID: "a", Name: "A", InitialQuestion: "qa"},
			{ID: "b", Name: "B", InitialQuestion: "qb"},
		},
	}
	s := NewAssessmentSession("user-1", bank)

	assert.Equal(t, float64(0), s.Progress())
	require.NoError(t, m.SubmitAnswer(context.Background(), s, "x"))
	assert.Equal(t, float64(25), s.Progress())
	require.NoError(t, m.SubmitAnswer(context.Background(), s, "y"))
	assert.Equal(t, float64(50), s.Progress())
	require.NoError(t, m.CompleteLayer(s, ""))
	assert.Equal(t, float64(50), s.Progress())
}

func TestCloneIsIndependent(t *testing.T) {
	m := newTestMachine(nil, time.Second)
	s := NewAssessmentSession("user-1", singleLayerBank(0))
	c := s.Clone()

	require.NoError(t, m.SubmitAnswer(context.Background(), c, "answer"))

	assert.Empty(t, s.History)
	assert.Equal(t, StatusAwaitingAnswer, s.Status)
	assert.Len(t, c.History, 1)
}
