package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/koios/plainly-mcp/internal/config"
	"github.com/koios/plainly-mcp/internal/plainly"
	"github.com/koios/plainly-mcp/internal/prompts"
	"github.com/koios/plainly-mcp/internal/redis"
	"github.com/koios/plainly-mcp/internal/resources"
	"github.com/koios/plainly-mcp/internal/server"
	"github.com/koios/plainly-mcp/internal/tools"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootCmd = &cobra.Command{
	Use:           "plainly-mcp",
	Short:         "MCP server for the Plainly video rendering API",
	Version:       server.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	_ = viper.BindEnv("transport", "MCP_TRANSPORT")
	_ = viper.BindEnv("port", "SERVER_PORT")
	_ = viper.BindEnv("log-level", "LOG_LEVEL")
}

func addFlags() {
	rootCmd.Flags().String("transport", config.TransportStdio, "MCP transport (stdio or http)")
	rootCmd.Flags().Int("port", 8080, "HTTP port when --transport=http")
	rootCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("transport", rootCmd.Flags().Lookup("transport"))
	_ = viper.BindPFlag("port", rootCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("log-level", rootCmd.Flags().Lookup("log-level"))
}

func run(ctx context.Context) error {
	cfg := config.FromEnv()
	cfg.Server.Transport = viper.GetString("transport")
	cfg.Server.Port = viper.GetInt("port")
	cfg.LogLevel = viper.GetString("log-level")

	// Initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Error("Failed to load configuration", zap.Error(err))
		return err
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	client := plainly.New(cfg.Plainly.APIKey, plainly.WithLogger(logger))

	var toolOpts []tools.Option
	var serverOpts []server.Option
	if cfg.Redis.Addr != "" {
		redisCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		publisher, err := redis.NewClient(redisCtx, cfg.Redis, logger)
		cancel()
		if err != nil {
			logger.Warn("Tool events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			toolOpts = append(toolOpts, tools.WithPublisher(publisher))
			serverOpts = append(serverOpts, server.WithHealthCheck("redis", publisher.IsHealthy))
		}
	}

	toolRegistry, err := tools.New(client, logger, toolOpts...)
	if err != nil {
		return err
	}
	promptRegistry, err := prompts.New(logger)
	if err != nil {
		return err
	}
	srv := server.New(toolRegistry, resources.New(client, logger), promptRegistry, logger, serverOpts...)

	logger.Info("Plainly MCP server started",
		zap.String("name", server.Name),
		zap.String("version", server.Version),
		zap.String("transport", cfg.Server.Transport))

	if err := srv.Run(ctx, cfg.Server); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}

	logger.Info("Server shutdown complete")
	return nil
}

// newLogger builds a production logger on stderr; stdout belongs to the stdio transport
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}
