package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskdeck/internal/adapter/alert"
	assistantadapter "taskdeck/internal/adapter/assistant"
	httpadapter "taskdeck/internal/adapter/http"
	"taskdeck/internal/adapter/http/handlers"
	httpmiddleware "taskdeck/internal/adapter/http/middleware"
	"taskdeck/internal/adapter/localstore"
	"taskdeck/internal/adapter/remote"
	"taskdeck/internal/app/service"
	"taskdeck/internal/config"
	"taskdeck/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()

	local, err := localstore.Open(cfg.LocalDBPath)
	if err != nil {
		logger.Fatal("failed to open local snapshot store", zap.Error(err))
	}
	defer func() {
		if err := local.Close(); err != nil {
			logger.Warn("failed to close local snapshot store", zap.Error(err))
		}
	}()

	store := remote.NewClient(cfg)
	engine := service.NewSyncEngine(store, local)
	lifecycle := service.NewSessionLifecycle(store, engine)
	attachments := service.NewAttachmentManager(store, engine)
	reminders := service.NewReminderEngine(engine.Tasks, alert.NewLoop(), alert.LogNotifier{}, cfg.ReminderInterval)
	executor := service.NewAssistantExecutor(assistantadapter.NewClient(cfg), engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := lifecycle.Start(ctx); err != nil {
		logger.Warn("starting on cached snapshot", zap.Error(err))
	}
	go reminders.Run(ctx)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:     handlers.NewHealthHandler(local.DB()),
		Auth:       handlers.NewAuthHandler(lifecycle),
		Task:       handlers.NewTaskHandler(engine),
		Project:    handlers.NewProjectHandler(engine),
		Attachment: handlers.NewAttachmentHandler(attachments, lifecycle),
		Reminder:   handlers.NewReminderHandler(reminders),
		Assistant:  handlers.NewAssistantHandler(executor),
	})

	addr := ":" + cfg.AppPort
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
