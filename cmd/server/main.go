package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"fleettrack/internal/api/handlers"
	"fleettrack/internal/config"
	"fleettrack/internal/repository"
	"fleettrack/internal/service"
	"fleettrack/pkg/ws"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger := initLogger(cfg.Debug)
	defer logger.Sync()

	logger.Info("Starting FleetTrack",
		zap.String("port", cfg.ServerPort),
		zap.String("storage", cfg.StorageBackend),
		zap.String("position_source", cfg.PositionSource))

	// 监听退出信号
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 选择存储后端
	store, err := newStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer store.Close()

	// 报表缓存（可选）
	cache, err := repository.NewReportCache(ctx, cfg.RedisURL, cfg.ReportCacheTTL)
	if err != nil {
		logger.Fatal("Failed to connect redis", zap.Error(err))
	}
	defer cache.Close()
	if cache.Enabled() {
		logger.Info("Report cache enabled", zap.Duration("ttl", cfg.ReportCacheTTL))
	}

	// 创建 WebSocket Hub
	wsHub := ws.NewHub(logger)
	go wsHub.Run()

	// 创建追踪服务
	tracker := service.NewTracker(cfg, logger, store, cache)

	// 新连接的初始数据：全量车辆列表
	wsHub.SetInitDataProvider(func() interface{} {
		vehicles, err := tracker.ListVehicles(context.Background())
		if err != nil {
			logger.Error("Failed to load init data", zap.Error(err))
			return nil
		}
		return vehicles
	})

	if err := tracker.Start(ctx); err != nil {
		logger.Fatal("Failed to start tracker service", zap.Error(err))
	}

	// 订阅车辆更新并广播到 WebSocket
	subCh, cancelSub := tracker.Subscribe()
	go func() {
		for vehicles := range subCh {
			wsHub.BroadcastVehicles(vehicles)
		}
	}()

	// 创建 HTTP 处理器
	handler := handlers.NewHandler(logger, tracker, wsHub, cfg.TrackingAPIKey)

	// 设置 Gin 模式
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server started", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		tracker.Stop()
		cancelSub()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	}
	logger.Info("Server exited")
}

// newStorage 按配置选择存储后端，内存后端写入演示车队
func newStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Storage, error) {
	switch cfg.StorageBackend {
	case "postgres":
		store, err := repository.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connected and migrated")
		return store, nil
	case "memory":
		store := repository.NewMemory()
		if err := store.Seed(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using in-memory storage with demo fleet")
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}

// initLogger 初始化日志
func initLogger(debug bool) *zap.Logger {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	logger, _ := config.Build()
	return logger
}

// corsMiddleware CORS 中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
