package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/krispatl/mootie/internal/config"
	"github.com/krispatl/mootie/internal/handler"
	"github.com/krispatl/mootie/internal/middleware"
	"github.com/krispatl/mootie/internal/openai"
	"github.com/krispatl/mootie/internal/provider"
	"github.com/krispatl/mootie/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "mootie",
		Short: "mootie moot-court backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run mootie server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			_ = godotenv.Load()
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("vector_store", cfg.OpenAI.VectorStoreID),
	)

	client := openai.NewClient(openai.Options{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Timeout: time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second,
	})

	chatter, err := buildChatter(cfg, client)
	if err != nil {
		return fmt.Errorf("init chat providers: %w", err)
	}

	documentService := service.NewDocumentService(client, cfg.OpenAI.VectorStoreID)
	chatService := service.NewChatService(chatter, client, service.ChatOptions{
		TranscribeModel: cfg.OpenAI.TranscribeModel,
		TTSModel:        cfg.OpenAI.TTSModel,
		TTSVoice:        cfg.OpenAI.TTSVoice,
		MaxInputChars:   cfg.Chat.MaxInputChars,
	})

	deps := handler.RouterDeps{
		Documents: handler.NewDocumentHandler(documentService, 0),
		Chat:      handler.NewChatHandler(chatService),
		Score:     handler.NewScoreHandler(),
	}
	if cfg.RateLimit.WindowSeconds > 0 {
		deps.RateLimit = middleware.RateLimit(time.Duration(cfg.RateLimit.WindowSeconds) * time.Second)
	}

	engine, err := webapi.NewEngine(
		"/",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORS),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

// buildChatter assembles the chat provider chain. Providers are tried
// in configured order; the openai entry defaults to the shared client
// settings so a bare config still gets retrieval-grounded chat.
func buildChatter(cfg *config.Config, client *openai.Client) (provider.IChatter, error) {
	entries := make([]provider.ChatterEntry, 0, len(cfg.Chat.Providers))
	for _, spec := range cfg.Chat.Providers {
		model := spec.Model
		if model == "" {
			model = cfg.OpenAI.ChatModel
		}
		var p provider.IChatProvider
		var err error
		if spec.Provider == "openai" && spec.Data == nil {
			p = provider.NewOpenAIProvider(client, cfg.OpenAI.VectorStoreID, cfg.Chat.MaxResults)
		} else {
			p, err = provider.New(spec.Provider, spec.Data)
			if err != nil {
				return nil, err
			}
		}
		entries = append(entries, provider.ChatterEntry{
			Name:    spec.Provider,
			Chatter: provider.NewChatter(p, model),
		})
	}
	chatter := provider.NewGroupChatter(entries)
	if chatter == nil {
		return nil, fmt.Errorf("no chat providers configured")
	}
	return chatter, nil
}
