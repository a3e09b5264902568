package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linqiankun/researcher-console/client"
	_ "github.com/linqiankun/researcher-console/docs" // Swagger docs
	"github.com/linqiankun/researcher-console/internal/config"
	"github.com/linqiankun/researcher-console/internal/healthcheck"
	"github.com/linqiankun/researcher-console/internal/logger"
	"github.com/linqiankun/researcher-console/internal/markdown"
	"github.com/linqiankun/researcher-console/internal/progress"
	httpserver "github.com/linqiankun/researcher-console/internal/server"
)

// @title Researcher-Console API
// @version 1.0.0
// @description 科研助手控制台 - 代理研究助手后端并跟踪报告任务进度
// @license.name MIT
// @BasePath /api/v1
// @schemes http https
// @host localhost:27080

// 说明：
// - 控制台是无状态的：唯一的进程内状态是轮询器快照，重启即丢，不需要持久化。

func main() {
	// 初始化结构化日志（开发模式）
	if err := logger.Init(false); err != nil {
		logger.L.Fatal().Err(err).Msg("初始化日志失败")
		os.Exit(1)
	}
	defer logger.Sync()

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		logger.L.Fatal().Err(err).Msg("加载配置失败")
	}

	// 验证配置
	if err := cfg.Validate(); err != nil {
		logger.L.Fatal().Err(err).Msg("配置验证失败")
	}

	logger.SetLevel(cfg.Log.Level)
	logger.L.Info().
		Str("http", cfg.HTTP.Addr).
		Str("backend", cfg.Backend.URL).
		Msg("服务启动")

	// 后端客户端
	backend := client.NewClient(cfg.Backend.URL)
	backend.HTTPClient.Timeout = cfg.Backend.Timeout

	// Markdown 渲染器与任务轮询器
	renderer := markdown.NewRenderer()
	watcher := progress.NewWatcher(backend)

	// 创建健康检查器
	healthChecker := healthcheck.NewHealthChecker(backend)

	httpSrv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: httpserver.NewRouter(httpserver.Deps{
			Backend:       backend,
			Watcher:       watcher,
			Renderer:      renderer,
			HealthChecker: healthChecker,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.L.Info().Str("addr", cfg.HTTP.Addr).Msg("HTTP 服务监听")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L.Fatal().Err(err).Msg("HTTP 服务错误")
		}
	}()

	<-ctx.Done()

	// 先停轮询再关 HTTP，避免关闭期间还在打后端
	watcher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(shutdownCtx)
	logger.L.Info().Msg("服务已优雅关闭")
}
