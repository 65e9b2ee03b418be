package app

import (
	"context"
	"fmt"
	"time"

	"politix/internal/feed"
	"politix/internal/gateway/config"
	"politix/internal/gateway/handler"
	"politix/internal/gateway/server"
	"politix/internal/gateway/service/analyze"
	"politix/internal/gateway/service/assistant"
	"politix/internal/gateway/service/insights"
	"politix/internal/gateway/service/topics"
	"politix/internal/llmclient"
)

type App struct {
	server *server.Server
	llm    llmclient.Client
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	stores, err := initStores(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stores: %w", err)
	}

	llm, err := llmclient.NewFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize llm client: %w", err)
	}

	// Services
	topicsSvc := topics.New(stores.topics, stores.state)
	insightsSvc := insights.New(stores.analyses, stores.topics)
	analyzeSvc := analyze.New(llm, stores.topics, stores.artifact, stores.state)
	assistantSvc := assistant.New(llm)
	feedGen := feed.NewGenerator(time.Now().UnixNano())

	// Routing & Server
	svc := handler.NewService(topicsSvc, insightsSvc, analyzeSvc, assistantSvc, stores.state, feedGen)
	mux := server.NewMux(svc)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
		llm:    llm,
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if a.llm != nil {
		_ = a.llm.Close()
	}
	return err
}
