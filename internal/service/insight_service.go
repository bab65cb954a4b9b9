package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"career-compass-be/internal/dto"
	"career-compass-be/internal/entity"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/logger"
	"career-compass-be/internal/repository/specification"
	"career-compass-be/internal/repository/unitofwork"
	"career-compass-be/pkg/analysis"
	"career-compass-be/pkg/llm"
	"career-compass-be/pkg/prompt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	TopicIndustryInsight = "industry_insight.generate"

	InsightRefreshInterval = 7 * 24 * time.Hour

	refreshBatchSize = 50
)

// IInsightService keeps one market insight per industry. Generation runs in the
// background; Get generates inline only when nothing is stored yet.
type IInsightService interface {
	InsightScheduler
	Consume(ctx context.Context) error
	// RefreshDue queues every insight past its next update and returns how many were queued.
	RefreshDue(ctx context.Context) (int, error)
	// StartRefresher runs RefreshDue every interval until ctx is done.
	StartRefresher(ctx context.Context, interval time.Duration)
	Get(ctx context.Context, industry string) (*dto.IndustryInsightResponse, error)
}

type insightService struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	provider   llm.LLMProvider
	logger     logger.ILogger
	now        func() time.Time
}

func NewInsightService(
	publisher message.Publisher,
	subscriber message.Subscriber,
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	log logger.ILogger,
) IInsightService {
	return &insightService{
		publisher:  publisher,
		subscriber: subscriber,
		topicName:  TopicIndustryInsight,
		uowFactory: uowFactory,
		provider:   provider,
		logger:     log,
		now:        time.Now,
	}
}

// Schedule queues generation unless a fresh insight already exists.
func (s *insightService) Schedule(ctx context.Context, industry string) error {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.IndustryInsightRepository().FindOne(ctx, specification.ByIndustry{Industry: industry})
	if err != nil {
		return err
	}
	if existing != nil && existing.NextUpdate.After(s.now()) {
		return nil
	}
	return s.publish(industry)
}

func (s *insightService) publish(industry string) error {
	payload, err := json.Marshal(dto.IndustryInsightMessage{Industry: industry})
	if err != nil {
		return err
	}
	return s.publisher.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload))
}

func (s *insightService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *insightService) RefreshDue(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	due, err := uow.IndustryInsightRepository().FindAll(ctx,
		specification.InsightDue{Now: s.now()},
		specification.OrderBy{Field: "next_update"},
		specification.Pagination{Limit: refreshBatchSize},
	)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, insight := range due {
		if err := s.publish(insight.Industry); err != nil {
			s.logger.Warn("INSIGHT", "Failed to queue refresh", map[string]interface{}{"industry": insight.Industry, "error": err.Error()})
			continue
		}
		queued++
	}
	return queued, nil
}

func (s *insightService) StartRefresher(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				queued, err := s.RefreshDue(ctx)
				if err != nil {
					s.logger.Error("INSIGHT", "Refresh sweep failed", map[string]interface{}{"error": err.Error()})
					continue
				}
				if queued > 0 {
					s.logger.Info("INSIGHT", "Refresh sweep queued insights", map[string]interface{}{"count": queued})
				}
			}
		}
	}()
}

func (s *insightService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IndustryInsightMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || strings.TrimSpace(payload.Industry) == "" {
		s.logger.Error("INSIGHT", "Dropping invalid message", map[string]interface{}{"message_id": msg.UUID})
		msg.Ack()
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.IndustryInsightRepository().FindOne(ctx, specification.ByIndustry{Industry: payload.Industry})
	if err != nil {
		s.logger.Error("INSIGHT", "Failed to load insight", map[string]interface{}{"industry": payload.Industry, "error": err.Error()})
		msg.Nack()
		return
	}
	if existing != nil && existing.NextUpdate.After(s.now()) {
		msg.Ack()
		return
	}

	if _, err := s.store(ctx, uow, payload.Industry, existing); err != nil {
		// dropped; the next Schedule call for this industry retries
		s.logger.Error("INSIGHT", "Failed to generate insight", map[string]interface{}{"industry": payload.Industry, "error": err.Error()})
		msg.Ack()
		return
	}
	msg.Ack()
}

// store generates a fresh insight and writes it, replacing existing when given.
// Concurrent creation of the same industry keeps whichever row landed first.
func (s *insightService) store(ctx context.Context, uow unitofwork.UnitOfWork, industry string, existing *entity.IndustryInsight) (*entity.IndustryInsight, error) {
	text, err := generate(ctx, s.provider, "industry_insight", prompt.IndustryInsight(industry), llm.WithJSONResponse())
	if err != nil {
		return nil, err
	}
	insight, err := analysis.ParseIndustryInsight(text)
	if err != nil {
		return nil, malformedOr(err, "Failed to generate industry insight")
	}

	now := s.now()
	repo := uow.IndustryInsightRepository()

	if existing != nil {
		existing.Insight = insight
		existing.LastUpdate = now
		existing.NextUpdate = now.Add(InsightRefreshInterval)
		if err := repo.Update(ctx, existing); err != nil {
			return nil, apperror.Internal("Failed to update industry insight", err)
		}
		s.logger.Info("INSIGHT", "Insight refreshed", map[string]interface{}{"industry": existing.Industry})
		return existing, nil
	}

	record := &entity.IndustryInsight{
		Industry:   industry,
		Insight:    insight,
		LastUpdate: now,
		NextUpdate: now.Add(InsightRefreshInterval),
	}
	created, err := repo.CreateIfAbsent(ctx, record)
	if err != nil {
		return nil, apperror.Internal("Failed to save industry insight", err)
	}
	if !created {
		s.logger.Info("INSIGHT", "Insight already created concurrently", map[string]interface{}{"industry": industry})
		current, err := repo.FindOne(ctx, specification.ByIndustry{Industry: industry})
		if err != nil || current == nil {
			return record, nil
		}
		return current, nil
	}

	s.logger.Info("INSIGHT", "Insight created", map[string]interface{}{"industry": industry})
	return record, nil
}

// Get returns the stored insight. A stale one is served while a refresh is queued.
func (s *insightService) Get(ctx context.Context, industry string) (*dto.IndustryInsightResponse, error) {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		return nil, apperror.Validation("Industry is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	insight, err := uow.IndustryInsightRepository().FindOne(ctx, specification.ByIndustry{Industry: industry})
	if err != nil {
		return nil, apperror.Internal("Failed to load industry insight", err)
	}

	if insight == nil {
		insight, err = s.store(ctx, uow, industry, nil)
		if err != nil {
			return nil, err
		}
	} else if !insight.NextUpdate.After(s.now()) {
		if err := s.publish(insight.Industry); err != nil {
			s.logger.Warn("INSIGHT", "Failed to queue refresh", map[string]interface{}{"industry": insight.Industry, "error": err.Error()})
		}
	}

	return &dto.IndustryInsightResponse{
		Industry:   insight.Industry,
		Insight:    insight.Insight,
		LastUpdate: insight.LastUpdate,
		NextUpdate: insight.NextUpdate,
	}, nil
}
