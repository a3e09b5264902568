package handler

import (
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linqiankun/researcher-console/client"
	"github.com/linqiankun/researcher-console/internal/markdown"
	"github.com/linqiankun/researcher-console/internal/metrics"
	"github.com/linqiankun/researcher-console/internal/middleware"
	"github.com/linqiankun/researcher-console/internal/model"
	"github.com/linqiankun/researcher-console/internal/progress"
	"github.com/linqiankun/researcher-console/internal/server/dto"
)

// TaskHandler 任务相关 API Handler。
// 仪表盘接口是轮询器的唯一入口：查看非终态任务会自动武装轮询。
type TaskHandler struct {
	backend  *client.Client
	watcher  *progress.Watcher
	renderer *markdown.Renderer
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(backend *client.Client, watcher *progress.Watcher, renderer *markdown.Renderer) *TaskHandler {
	return &TaskHandler{
		backend:  backend,
		watcher:  watcher,
		renderer: renderer,
	}
}

// ListTasks godoc
// @Summary 任务列表
// @Description 获取项目下全部任务快照
// @Tags Tasks
// @Produce json
// @Param project_id path int true "项目 ID"
// @Success 200 {object} dto.TaskListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /projects/{project_id}/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	projectID, _ := middleware.ParseIDParam(c, "project_id")

	items, err := h.backend.ProjectTasks(c.Request.Context(), projectID)
	metrics.RecordBackendRequest("list_tasks", err)
	if err != nil {
		backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskListResponse{Items: items, Total: len(items)})
}

// CreateTask godoc
// @Summary 创建任务
// @Description 在项目下创建报告任务（需再调 run 开始执行）
// @Tags Tasks
// @Accept json
// @Produce json
// @Param project_id path int true "项目 ID"
// @Param request body dto.CreateTaskRequest true "任务创建请求"
// @Success 201 {object} model.Task
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /projects/{project_id}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	projectID, _ := middleware.ParseIDParam(c, "project_id")

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if req.TaskType == "" {
		req.TaskType = "report_writing"
	}

	task, err := h.backend.CreateTask(c.Request.Context(), projectID, client.CreateTaskRequest{
		UserPrompt: middleware.SanitizeString(req.UserPrompt),
		TaskType:   req.TaskType,
	})
	metrics.RecordBackendRequest("create_task", err)
	if err != nil {
		backendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GetTask godoc
// @Summary 任务快照
// @Description 获取任务原始快照（不渲染仪表盘，不触发轮询）
// @Tags Tasks
// @Produce json
// @Param task_id path int true "任务 ID"
// @Success 200 {object} model.Task
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /tasks/{task_id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, _ := middleware.ParseIDParam(c, "task_id")

	task, err := h.backend.GetTask(c.Request.Context(), taskID)
	metrics.RecordBackendRequest("get_task", err)
	if err != nil {
		backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary 删除任务
// @Description 删除任务；若正在轮询该任务则同时停掉轮询
// @Tags Tasks
// @Produce json
// @Param task_id path int true "任务 ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /tasks/{task_id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, _ := middleware.ParseIDParam(c, "task_id")

	if id, ok := h.watcher.Active(); ok && id == taskID {
		h.watcher.Stop()
	}

	err := h.backend.DeleteTask(c.Request.Context(), taskID)
	metrics.RecordBackendRequest("delete_task", err)
	if err != nil {
		backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Status: "ok", Message: "任务已删除"})
}

// RunTask godoc
// @Summary 运行任务
// @Description 触发任务在后端开始执行，并立即武装轮询
// @Tags Tasks
// @Produce json
// @Param task_id path int true "任务 ID"
// @Success 200 {object} dto.WatchResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /tasks/{task_id}/run [post]
func (h *TaskHandler) RunTask(c *gin.Context) {
	taskID, _ := middleware.ParseIDParam(c, "task_id")

	err := h.backend.RunTask(c.Request.Context(), taskID)
	metrics.RecordBackendRequest("run_task", err)
	if err != nil {
		backendError(c, err)
		return
	}

	// 任务开跑了，用户接下来一定关心进度
	h.armWatch(taskID)
	c.JSON(http.StatusOK, dto.WatchResponse{Watching: true, TaskID: taskID})
}

// Dashboard godoc
// @Summary 任务仪表盘
// @Description 渲染任务进度仪表盘；任务非终态时自动武装轮询器
// @Tags Tasks
// @Produce json
// @Param task_id path int true "任务 ID"
// @Success 200 {object} progress.Dashboard
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /tasks/{task_id}/dashboard [get]
func (h *TaskHandler) Dashboard(c *gin.Context) {
	taskID, _ := middleware.ParseIDParam(c, "task_id")

	task, err := h.backend.GetTask(c.Request.Context(), taskID)
	metrics.RecordBackendRequest("get_task", err)
	if err != nil {
		backendError(c, err)
		return
	}

	d, err := progress.Render(*task, h.renderer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if d.Polling {
		h.armWatch(taskID)
	}
	c.JSON(http.StatusOK, d)
}

// Watch godoc
// @Summary 开始轮询
// @Description 显式开始轮询指定任务；已有轮询会被替换
// @Tags Watch
// @Produce json
// @Param task_id path int true "任务 ID"
// @Success 200 {object} dto.WatchResponse
// @Router /watch/{task_id} [post]
func (h *TaskHandler) Watch(c *gin.Context) {
	taskID, _ := middleware.ParseIDParam(c, "task_id")

	h.watcher.Watch(taskID)
	c.JSON(http.StatusOK, dto.WatchResponse{Watching: true, TaskID: taskID})
}

// Unwatch godoc
// @Summary 停止轮询
// @Description 停止当前轮询；无活跃轮询时为空操作
// @Tags Watch
// @Produce json
// @Success 200 {object} dto.WatchResponse
// @Router /watch [delete]
func (h *TaskHandler) Unwatch(c *gin.Context) {
	h.watcher.Stop()
	c.JSON(http.StatusOK, dto.WatchResponse{Watching: false})
}

// WatchStatus godoc
// @Summary 当前轮询状态
// @Description 返回当前轮询的任务与最近一次快照渲染出的仪表盘
// @Tags Watch
// @Produce json
// @Success 200 {object} dto.WatchStatusResponse
// @Router /watch [get]
func (h *TaskHandler) WatchStatus(c *gin.Context) {
	resp := dto.WatchStatusResponse{}
	if id, ok := h.watcher.Active(); ok {
		resp.Watching = true
		resp.TaskID = id
	}

	if snap, ok := h.watcher.Snapshot(); ok {
		d, err := progress.Render(snap.Task, h.renderer)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
			return
		}
		resp.Dashboard = &d
		resp.FetchedAt = &snap.FetchedAt
	}

	c.JSON(http.StatusOK, resp)
}

// Artifact godoc
// @Summary 下载任务产物
// @Description 流式代理任务产物（outline/markdown/report）
// @Tags Tasks
// @Produce octet-stream
// @Param task_id path int true "任务 ID"
// @Param kind path string true "产物类型" Enums(outline, markdown, report)
// @Success 200 {string} string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /tasks/{task_id}/artifacts/{kind} [get]
func (h *TaskHandler) Artifact(c *gin.Context) {
	taskID, _ := middleware.ParseIDParam(c, "task_id")

	kind := model.Artifact(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "未知的产物类型"})
		return
	}

	dl, err := h.backend.Artifact(c.Request.Context(), taskID, kind)
	metrics.RecordBackendRequest("artifact", err)
	if err != nil {
		backendError(c, err)
		return
	}
	defer dl.Body.Close()

	c.Header("Content-Type", artifactContentType(kind))
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": dl.Filename}))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, dl.Body)
}

// armWatch 武装轮询器。已经在轮询同一任务时不打断（避免重置节拍），
// 轮询别的任务时替换掉。
func (h *TaskHandler) armWatch(taskID int) {
	if id, ok := h.watcher.Active(); ok && id == taskID {
		return
	}
	h.watcher.Watch(taskID)
}

func artifactContentType(kind model.Artifact) string {
	switch kind {
	case model.ArtifactOutline:
		return "application/json"
	case model.ArtifactMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "application/x-tex"
	}
}
