package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"career-compass-be/internal/dto"
	"career-compass-be/internal/entity"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/logger"
	"career-compass-be/pkg/analysis"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insightJSON = `{
  "salaryRanges": [{"role": "Backend Engineer", "min": 50000, "max": 90000, "median": 70000, "location": "EU"}],
  "growthRate": 12.5,
  "demandLevel": "High",
  "topSkills": ["Go", "Kubernetes"],
  "marketOutlook": "Positive",
  "keyTrends": ["AI tooling"],
  "recommendedSkills": ["Rust"]
}`

type capturePublisher struct {
	mu       sync.Mutex
	messages []*message.Message
	err      error
}

func (p *capturePublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, messages...)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) industries() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		var payload dto.IndustryInsightMessage
		_ = json.Unmarshal(m.Payload, &payload)
		out = append(out, payload.Industry)
	}
	return out
}

var insightClock = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newInsightFixture() (*memoryStore, *scriptedLLM, *capturePublisher, *insightService) {
	store := newMemoryStore()
	provider := newScriptedLLM()
	provider.responses["industry_insight"] = insightJSON
	publisher := &capturePublisher{}

	svc := NewInsightService(publisher, nil, store, provider, logger.NewNopLogger()).(*insightService)
	svc.now = func() time.Time { return insightClock }
	return store, provider, publisher, svc
}

func storedInsight(store *memoryStore, industry string, nextUpdate time.Time) {
	store.insights[industry] = &entity.IndustryInsight{
		Industry:   industry,
		Insight:    &analysis.IndustryInsight{DemandLevel: "Low"},
		LastUpdate: nextUpdate.Add(-InsightRefreshInterval),
		NextUpdate: nextUpdate,
	}
}

func acked(msg *message.Message) bool {
	select {
	case <-msg.Acked():
		return true
	default:
		return false
	}
}

func nacked(msg *message.Message) bool {
	select {
	case <-msg.Nacked():
		return true
	default:
		return false
	}
}

func TestInsightService_Schedule(t *testing.T) {
	ctx := context.Background()

	t.Run("missing insight is queued", func(t *testing.T) {
		_, _, publisher, svc := newInsightFixture()
		require.NoError(t, svc.Schedule(ctx, " Fintech "))
		assert.Equal(t, []string{"Fintech"}, publisher.industries())
	})

	t.Run("fresh insight is skipped", func(t *testing.T) {
		store, _, publisher, svc := newInsightFixture()
		storedInsight(store, "fintech", insightClock.Add(time.Hour))
		require.NoError(t, svc.Schedule(ctx, "Fintech"))
		assert.Empty(t, publisher.industries())
	})

	t.Run("stale insight is queued", func(t *testing.T) {
		store, _, publisher, svc := newInsightFixture()
		storedInsight(store, "fintech", insightClock.Add(-time.Hour))
		require.NoError(t, svc.Schedule(ctx, "Fintech"))
		assert.Len(t, publisher.industries(), 1)
	})

	t.Run("blank industry", func(t *testing.T) {
		_, _, publisher, svc := newInsightFixture()
		require.NoError(t, svc.Schedule(ctx, "  "))
		assert.Empty(t, publisher.industries())
	})
}

func TestInsightService_ProcessMessage(t *testing.T) {
	ctx := context.Background()
	payload := func(industry string) *message.Message {
		b, _ := json.Marshal(dto.IndustryInsightMessage{Industry: industry})
		return message.NewMessage(watermill.NewUUID(), b)
	}

	t.Run("creates insight", func(t *testing.T) {
		store, provider, _, svc := newInsightFixture()
		msg := payload("Healthcare")

		svc.processMessage(ctx, msg)

		assert.True(t, acked(msg))
		require.Contains(t, store.insights, "healthcare")
		got := store.insights["healthcare"]
		assert.Equal(t, "High", got.Insight.DemandLevel)
		assert.Equal(t, insightClock.Add(InsightRefreshInterval), got.NextUpdate)
		assert.Equal(t, 1, provider.count("industry_insight"))
	})

	t.Run("refreshes stale insight", func(t *testing.T) {
		store, _, _, svc := newInsightFixture()
		storedInsight(store, "healthcare", insightClock.Add(-time.Minute))
		msg := payload("Healthcare")

		svc.processMessage(ctx, msg)

		assert.True(t, acked(msg))
		assert.Equal(t, "High", store.insights["healthcare"].Insight.DemandLevel)
		assert.Equal(t, insightClock, store.insights["healthcare"].LastUpdate)
	})

	t.Run("fresh insight is left alone", func(t *testing.T) {
		store, provider, _, svc := newInsightFixture()
		storedInsight(store, "healthcare", insightClock.Add(time.Hour))
		msg := payload("Healthcare")

		svc.processMessage(ctx, msg)

		assert.True(t, acked(msg))
		assert.Zero(t, provider.count("industry_insight"))
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, provider, _, svc := newInsightFixture()
		msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))

		svc.processMessage(ctx, msg)

		assert.True(t, acked(msg))
		assert.Zero(t, provider.count("industry_insight"))
	})

	t.Run("database failure is retried", func(t *testing.T) {
		store, _, _, svc := newInsightFixture()
		store.failFind = errors.New("db down")
		msg := payload("Healthcare")

		svc.processMessage(ctx, msg)

		assert.True(t, nacked(msg))
	})

	t.Run("generation failure is dropped", func(t *testing.T) {
		store, provider, _, svc := newInsightFixture()
		provider.errs["industry_insight"] = errors.New("timeout")
		msg := payload("Healthcare")

		svc.processMessage(ctx, msg)

		assert.True(t, acked(msg))
		assert.NotContains(t, store.insights, "healthcare")
	})
}

func TestInsightService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("generates when missing", func(t *testing.T) {
		store, _, publisher, svc := newInsightFixture()

		res, err := svc.Get(ctx, "Retail")
		require.NoError(t, err)
		assert.Equal(t, "Retail", res.Industry)
		assert.Equal(t, 12.5, res.Insight.GrowthRate)
		assert.Contains(t, store.insights, "retail")
		assert.Empty(t, publisher.industries())
	})

	t.Run("serves stale and queues refresh", func(t *testing.T) {
		store, provider, publisher, svc := newInsightFixture()
		storedInsight(store, "retail", insightClock.Add(-time.Hour))

		res, err := svc.Get(ctx, "Retail")
		require.NoError(t, err)
		assert.Equal(t, "Low", res.Insight.DemandLevel)
		assert.Equal(t, []string{"retail"}, publisher.industries())
		assert.Zero(t, provider.count("industry_insight"))
	})

	t.Run("generation failure", func(t *testing.T) {
		_, provider, _, svc := newInsightFixture()
		provider.responses["industry_insight"] = "sorry"

		_, err := svc.Get(ctx, "Retail")
		assert.True(t, apperror.IsKind(err, apperror.KindMalformedAnalysis))
	})

	t.Run("blank industry", func(t *testing.T) {
		_, _, _, svc := newInsightFixture()
		_, err := svc.Get(ctx, " ")
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}

func TestInsightService_ConsumeOverGoChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	store := newMemoryStore()
	provider := newScriptedLLM()
	provider.responses["industry_insight"] = insightJSON
	svc := NewInsightService(pubSub, pubSub, store, provider, logger.NewNopLogger())

	require.NoError(t, svc.Consume(ctx))
	require.NoError(t, svc.Schedule(ctx, "Gaming"))

	assert.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		_, ok := store.insights["gaming"]
		return ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestInsightService_RefreshDue(t *testing.T) {
	ctx := context.Background()

	t.Run("queues only stale insights", func(t *testing.T) {
		store, _, publisher, svc := newInsightFixture()
		storedInsight(store, "fintech", insightClock.Add(-time.Hour))
		storedInsight(store, "gaming", insightClock.Add(time.Hour))
		storedInsight(store, "health", insightClock)

		queued, err := svc.RefreshDue(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, queued)
		assert.Equal(t, []string{"fintech", "health"}, publisher.industries())
	})

	t.Run("publish failures are skipped", func(t *testing.T) {
		store, _, publisher, svc := newInsightFixture()
		storedInsight(store, "fintech", insightClock.Add(-time.Hour))
		publisher.err = errors.New("broker down")

		queued, err := svc.RefreshDue(ctx)
		require.NoError(t, err)
		assert.Zero(t, queued)
	})

	t.Run("database failure", func(t *testing.T) {
		store, _, publisher, svc := newInsightFixture()
		storedInsight(store, "fintech", insightClock.Add(-time.Hour))
		store.failFind = errors.New("db down")

		_, err := svc.RefreshDue(ctx)
		assert.Error(t, err)
		assert.Empty(t, publisher.industries())
	})

	t.Run("nothing due", func(t *testing.T) {
		_, _, publisher, svc := newInsightFixture()
		queued, err := svc.RefreshDue(ctx)
		require.NoError(t, err)
		assert.Zero(t, queued)
		assert.Empty(t, publisher.industries())
	})
}
