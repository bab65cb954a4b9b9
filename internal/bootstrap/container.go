package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"career-compass-be/internal/config"
	"career-compass-be/internal/controller"
	"career-compass-be/internal/pkg/logger"
	"career-compass-be/internal/pkg/mailer"
	"career-compass-be/internal/repository/memory"
	"career-compass-be/internal/repository/unitofwork"
	"career-compass-be/internal/service"
	"career-compass-be/pkg/events"
	"career-compass-be/pkg/interview"
	"career-compass-be/pkg/jobsearch"
	"career-compass-be/pkg/llm"
	"career-compass-be/pkg/llm/factory"
	"career-compass-be/pkg/metrics"
	pktNats "career-compass-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	UserController        controller.IUserController
	AssessmentController  controller.IAssessmentController
	ValidationController  controller.IValidationController
	RoadmapController     controller.IRoadmapController
	FeedbackController    controller.IFeedbackController
	OpportunityController controller.IOpportunityController
	WritingController     controller.IWritingController
	InsightController     controller.IInsightController

	// Used by the auth middleware
	UserService service.IUserService

	// Background workers, started by main
	InsightService      service.IInsightService
	NotificationService service.INotificationService // nil without NATS or SMTP

	Registry *prometheus.Registry
	Logger   logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	eventLogger := logger.NewIsolatedLogger(cfg.App.EventLogFilePath)
	c := &Container{Logger: sysLogger}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewPrometheusRecorder(registry)
	c.Registry = registry

	// 2. LLM
	baseProvider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.BaseURLFor(),
		APIKey:   apiKeyFor(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	llmProvider := llm.NewInstrumented(baseProvider, recorder, cfg.Ai.LLMProvider, cfg.Ai.LLMModel).WithTimeout(cfg.Ai.Timeout)
	sysLogger.Info("BOOT", "LLM provider ready", map[string]interface{}{"provider": cfg.Ai.LLMProvider, "model": cfg.Ai.LLMModel})

	// 3. Infrastructure
	rdb := connectRedis(cfg.App.RedisURL, sysLogger)
	if rdb != nil {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	var publisher events.Publisher = events.NopPublisher{}
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, eventLogger)
		if err != nil {
			sysLogger.Warn("BOOT", "NATS publisher unavailable, events are dropped", map[string]interface{}{"error": err.Error()})
		} else {
			publisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}

		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL, eventLogger)
		if err != nil {
			sysLogger.Warn("BOOT", "NATS subscriber unavailable", map[string]interface{}{"error": err.Error()})
			natsSub = nil
		} else {
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// in-process queue for insight generation
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 4. Domain
	bank, err := interview.LoadBank(cfg.Interview.QuestionBankPath)
	if err != nil {
		return nil, err
	}
	machine := interview.NewMachine(service.NewQuestionGenerator(llmProvider), cfg.Interview.QuestionTimeout, sysLogger)
	sessions := memory.NewSessionRepository(cfg.Interview.SessionTTL)

	jobClient := jobsearch.NewClient(cfg.Keys.RapidAPI, cfg.JobSearch.BaseURL, cfg.JobSearch.Timeout)
	jobCache := jobsearch.NewCache("jobsearch", rdb, cfg.JobSearch.CacheTTL, recorder, sysLogger)

	// 5. Services
	insightService := service.NewInsightService(pubSub, pubSub, uowFactory, llmProvider, eventLogger)
	userService := service.NewUserService(uowFactory, insightService, sysLogger)
	assembler := service.NewSubmissionAssembler(uowFactory, llmProvider, publisher, sysLogger)
	assessmentService := service.NewAssessmentService(uowFactory, bank, machine, sessions, assembler, sysLogger)
	validationService := service.NewValidationService(uowFactory, bank, llmProvider, machine, sessions, assembler, sysLogger)
	roadmapService := service.NewRoadmapService(uowFactory, llmProvider, publisher, sysLogger)
	feedbackService := service.NewFeedbackService(uowFactory, sysLogger)
	opportunityService := service.NewOpportunityService(uowFactory, jobClient, jobCache, sysLogger)
	writingService := service.NewWritingService(llmProvider)

	if natsSub != nil && cfg.SMTP.Enabled() {
		emailService := mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
			cfg.App.ClientURL,
		)
		c.NotificationService = service.NewNotificationService(natsSub, emailService, eventLogger)
	}

	// 6. Controllers
	c.UserController = controller.NewUserController(userService)
	c.AssessmentController = controller.NewAssessmentController(assessmentService)
	c.ValidationController = controller.NewValidationController(validationService)
	c.RoadmapController = controller.NewRoadmapController(roadmapService)
	c.FeedbackController = controller.NewFeedbackController(feedbackService)
	c.OpportunityController = controller.NewOpportunityController(opportunityService)
	c.WritingController = controller.NewWritingController(writingService)
	c.InsightController = controller.NewInsightController(insightService)

	c.UserService = userService
	c.InsightService = insightService
	return c, nil
}

// Close releases brokers and caches in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func apiKeyFor(cfg *config.Config) string {
	switch strings.ToLower(cfg.Ai.LLMProvider) {
	case "huggingface":
		return cfg.Keys.HuggingFace
	case "ollama":
		return ""
	default:
		return cfg.Keys.GoogleGemini
	}
}

// connectRedis returns nil when Redis is not configured or unreachable; caching then stays in memory.
func connectRedis(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("BOOT", "Failed to parse Redis URL, using it as address", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn("BOOT", "Failed to connect to Redis, using in-memory cache only", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
