package bootstrap

import (
	"context"
	"log"
	"os"

	"plans-assistant-be/internal/config"
	"plans-assistant-be/internal/controller"
	"plans-assistant-be/internal/pkg/logger"
	"plans-assistant-be/internal/repository/contract"
	"plans-assistant-be/internal/repository/implementation"
	"plans-assistant-be/internal/repository/memory"
	"plans-assistant-be/internal/repository/redisrepo"
	"plans-assistant-be/internal/service"
	agentEvents "plans-assistant-be/pkg/agent/events"
	"plans-assistant-be/pkg/agent/pipeline"
	"plans-assistant-be/pkg/catalog"
	"plans-assistant-be/pkg/llm/factory"
	"plans-assistant-be/pkg/querystore"

	pktNats "plans-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const chatExchangeTopic = "CHAT_EXCHANGE_RESOLVED"

type Container struct {
	// Controllers
	ChatController controller.IChatController
	PlanController controller.PlanController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for the CLI, which drives the pipeline without HTTP
	ChatService service.IChatService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.AnthropicKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// 2.5 Infrastructure
	// NATS is optional. Without a broker URL the event mirror is a no-op.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
	}

	// Transcript store: Redis when configured, in-process cache otherwise.
	var transcriptRepo contract.TranscriptRepository
	if cfg.Session.Store == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		transcriptRepo = redisrepo.NewTranscriptRepository(rdb, cfg.Session.TTL)
		log.Printf("[INFO] Using Transcript Store: REDIS")
	} else {
		transcriptRepo = memory.NewTranscriptRepository(cfg.Session.TTL)
		log.Printf("[INFO] Using Transcript Store: MEMORY")
	}

	// 3. Pipeline Collaborators
	store := querystore.NewGormStore(db)
	catalogClient := catalog.NewHTTPClient(cfg.Catalog.BaseURL)
	pipelineLogger := log.New(os.Stdout, "", log.LstdFlags)
	resolvePipeline := pipeline.New(llmProvider, store, catalogClient, pipelineLogger)

	// 4. Services
	exchangeRepo := implementation.NewChatExchangeRepository(db)
	planRepo := implementation.NewPlanRepository(db)

	eventPublisher := agentEvents.NewNatsPublisher(natsPub, sysLogger)
	publisherService := service.NewPublisherService(chatExchangeTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, chatExchangeTopic, exchangeRepo)

	chatService := service.NewChatService(
		resolvePipeline,
		transcriptRepo,
		exchangeRepo,
		publisherService,
		eventPublisher,
		sysLogger,
	)
	planService := service.NewPlanService(planRepo)

	// 5. Controllers
	return &Container{
		ChatController: controller.NewChatController(chatService),
		PlanController: controller.NewPlanController(planService),

		ConsumerService: consumerService,
		ChatService:     chatService,
	}
}
