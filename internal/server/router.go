package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/linqiankun/researcher-console/client"
	"github.com/linqiankun/researcher-console/internal/healthcheck"
	"github.com/linqiankun/researcher-console/internal/markdown"
	"github.com/linqiankun/researcher-console/internal/middleware"
	"github.com/linqiankun/researcher-console/internal/progress"
	"github.com/linqiankun/researcher-console/internal/server/handler"
)

type Deps struct {
	// Backend 研究助手后端客户端
	Backend *client.Client

	// Watcher 任务进度轮询器
	Watcher *progress.Watcher

	// Renderer Markdown 渲染器（报告预览与聊天消息共用）
	Renderer *markdown.Renderer

	// HealthChecker 健康检查器
	HealthChecker *healthcheck.HealthChecker
}

// NewRouter 提供 Gin HTTP API
// @title Researcher-Console API
// @version 1.0.0
// @description 科研助手控制台 API
// @BasePath /api/v1
// @schemes http https
func NewRouter(deps Deps) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	// 全局中间件
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.PayloadSizeLimit(middleware.MaxPayloadSize))
	r.Use(middleware.CORSMiddleware())

	// 创建各个 handler 实例
	healthHandler := handler.NewHealthHandler(deps.HealthChecker)
	projectHandler := handler.NewProjectHandler(deps.Backend, deps.Renderer)
	taskHandler := handler.NewTaskHandler(deps.Backend, deps.Watcher, deps.Renderer)
	conversationHandler := handler.NewConversationHandler(deps.Backend, deps.Renderer)

	// 健康检查路由
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Prometheus metrics 端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		// Project 相关路由
		api.GET("/projects", projectHandler.ListProjects)
		api.POST("/projects", projectHandler.CreateProject)
		api.GET("/projects/:project_id", middleware.ValidateIDParam("project_id"), projectHandler.GetProject)
		api.POST("/projects/:project_id/documents",
			middleware.ValidateIDParam("project_id"),
			middleware.UploadSizeLimit(middleware.MaxUploadSize),
			projectHandler.UploadDocument)
		api.GET("/projects/:project_id/bibtex", middleware.ValidateIDParam("project_id"), projectHandler.DownloadBibtex)
		api.GET("/projects/:project_id/figures/*filename", middleware.ValidateIDParam("project_id"), projectHandler.DownloadFigure)
		api.DELETE("/documents/:document_id", middleware.ValidateIDParam("document_id"), projectHandler.DeleteDocument)
		api.GET("/documents/:document_id/figures", middleware.ValidateIDParam("document_id"), projectHandler.ListFigures)

		// 会话与问答路由
		api.POST("/projects/:project_id/conversations", middleware.ValidateIDParam("project_id"), conversationHandler.CreateConversation)
		api.POST("/projects/:project_id/ask", middleware.ValidateIDParam("project_id"), conversationHandler.Ask)
		api.DELETE("/conversations/:conversation_id", middleware.ValidateIDParam("conversation_id"), conversationHandler.DeleteConversation)

		// Task 相关路由
		api.GET("/projects/:project_id/tasks", middleware.ValidateIDParam("project_id"), taskHandler.ListTasks)
		api.POST("/projects/:project_id/tasks", middleware.ValidateIDParam("project_id"), taskHandler.CreateTask)
		api.GET("/tasks/:task_id", middleware.ValidateIDParam("task_id"), taskHandler.GetTask)
		api.DELETE("/tasks/:task_id", middleware.ValidateIDParam("task_id"), taskHandler.DeleteTask)
		api.POST("/tasks/:task_id/run", middleware.ValidateIDParam("task_id"), taskHandler.RunTask)
		api.GET("/tasks/:task_id/dashboard", middleware.ValidateIDParam("task_id"), taskHandler.Dashboard)
		api.GET("/tasks/:task_id/artifacts/:kind", middleware.ValidateIDParam("task_id"), taskHandler.Artifact)

		// 轮询控制路由
		api.POST("/watch/:task_id", middleware.ValidateIDParam("task_id"), taskHandler.Watch)
		api.DELETE("/watch", taskHandler.Unwatch)
		api.GET("/watch", taskHandler.WatchStatus)
	}

	return r
}
