package llm

import (
	"context"
	"time"
)

// Recorder receives one observation per completed call.
type Recorder interface {
	ObserveLLMRequest(provider, model, operation string, success bool, duration time.Duration)
}

// Instrumented wraps a provider and records every call.
type Instrumented struct {
	next     LLMProvider
	recorder Recorder
	provider string
	model    string
	timeout  time.Duration
}

var _ LLMProvider = &Instrumented{}

func NewInstrumented(next LLMProvider, recorder Recorder, provider, model string) *Instrumented {
	return &Instrumented{next: next, recorder: recorder, provider: provider, model: model}
}

// WithTimeout bounds every call. Zero leaves the caller's deadline alone.
func (i *Instrumented) WithTimeout(d time.Duration) *Instrumented {
	i.timeout = d
	return i
}

func (i *Instrumented) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if i.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, i.timeout)
}

func (i *Instrumented) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	ctx, cancel := i.bound(ctx)
	defer cancel()
	start := time.Now()
	out, err := i.next.Chat(ctx, history, options...)
	i.observe(ctx, err, start, options)
	return out, err
}

func (i *Instrumented) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	ctx, cancel := i.bound(ctx)
	defer cancel()
	start := time.Now()
	out, err := i.next.Generate(ctx, prompt, options...)
	i.observe(ctx, err, start, options)
	return out, err
}

func (i *Instrumented) observe(ctx context.Context, err error, start time.Time, options []Option) {
	model := Apply(Options{Model: i.model}, options...).Model
	i.recorder.ObserveLLMRequest(i.provider, model, OperationFrom(ctx), err == nil, time.Since(start))
}
