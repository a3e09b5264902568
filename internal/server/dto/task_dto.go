package dto

import (
	"time"

	"github.com/linqiankun/researcher-console/internal/model"
	"github.com/linqiankun/researcher-console/internal/progress"
)

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	UserPrompt string `json:"user_prompt" binding:"required" example:"写一篇关于等离子体优化的综述"`
	TaskType   string `json:"task_type" example:"report_writing"`
}

// TaskListResponse 任务列表响应
type TaskListResponse struct {
	Items []model.Task `json:"items"`
	Total int          `json:"total"`
}

// WatchResponse 轮询控制响应
type WatchResponse struct {
	Watching bool `json:"watching"`
	TaskID   int  `json:"task_id,omitempty"`
}

// WatchStatusResponse 当前轮询状态 + 最近一次快照渲染出的仪表盘
type WatchStatusResponse struct {
	Watching  bool                `json:"watching"`
	TaskID    int                 `json:"task_id,omitempty"`
	Dashboard *progress.Dashboard `json:"dashboard,omitempty"`
	FetchedAt *time.Time          `json:"fetched_at,omitempty"`
}
