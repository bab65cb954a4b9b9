package service

import (
	"context"
	"fmt"

	"career-compass-be/internal/pkg/logger"
	"career-compass-be/internal/pkg/mailer"
	"career-compass-be/pkg/events"
	pkgnats "career-compass-be/pkg/nats"
)

// EventSubscriber is the part of the NATS subscriber the notification service uses.
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType, durableName string, handler pkgnats.EventHandler) error
}

type INotificationService interface {
	Start(ctx context.Context) error
	HandleAssessmentCompleted(ctx context.Context, event events.BaseEvent) error
	HandleRoadmapGenerated(ctx context.Context, event events.BaseEvent) error
}

// notificationService mails users when their analysis or roadmap is ready.
type notificationService struct {
	subscriber EventSubscriber
	mailer     mailer.IEmailService
	logger     logger.ILogger
}

func NewNotificationService(subscriber EventSubscriber, emailService mailer.IEmailService, log logger.ILogger) INotificationService {
	return &notificationService{
		subscriber: subscriber,
		mailer:     emailService,
		logger:     log,
	}
}

func (s *notificationService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, events.TypeAssessmentCompleted, "notification-assessment", s.HandleAssessmentCompleted); err != nil {
		return err
	}
	return s.subscriber.Subscribe(ctx, events.TypeRoadmapGenerated, "notification-roadmap", s.HandleRoadmapGenerated)
}

func (s *notificationService) HandleAssessmentCompleted(ctx context.Context, event events.BaseEvent) error {
	email := event.String("email")
	if email == "" {
		s.logger.Warn("NOTIFICATION", "Skipping event without recipient", map[string]interface{}{"event": event.EventType()})
		return nil
	}

	if err := s.mailer.SendAnalysisReady(email, event.String("name"), event.String("primary_profile")); err != nil {
		return fmt.Errorf("send analysis email: %w", err)
	}
	s.logger.Info("NOTIFICATION", "Analysis email sent", map[string]interface{}{"user_id": event.String("user_id")})
	return nil
}

func (s *notificationService) HandleRoadmapGenerated(ctx context.Context, event events.BaseEvent) error {
	email := event.String("email")
	if email == "" {
		s.logger.Warn("NOTIFICATION", "Skipping event without recipient", map[string]interface{}{"event": event.EventType()})
		return nil
	}

	// numbers arrive as float64 after the JSON round trip
	var duration int
	switch v := event.Data["duration"].(type) {
	case float64:
		duration = int(v)
	case int:
		duration = v
	}

	if err := s.mailer.SendRoadmapReady(email, event.String("name"), event.String("role"), duration); err != nil {
		return fmt.Errorf("send roadmap email: %w", err)
	}
	s.logger.Info("NOTIFICATION", "Roadmap email sent", map[string]interface{}{"user_id": event.String("user_id")})
	return nil
}
