package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/linqiankun/researcher-console/internal/model"
)

// ProjectTasks 获取项目下全部任务快照
func (c *Client) ProjectTasks(ctx context.Context, projectID int) ([]model.Task, error) {
	var out []model.Task
	err := c.getJSON(ctx, fmt.Sprintf("%s/api/projects/%d/tasks", c.BaseURL, projectID), &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	UserPrompt string `json:"user_prompt"`
	TaskType   string `json:"task_type"`
}

// CreateTask 在项目下创建报告任务（不会自动开始执行，需再调 RunTask）
func (c *Client) CreateTask(ctx context.Context, projectID int, req CreateTaskRequest) (*model.Task, error) {
	var out model.Task
	err := c.postJSON(ctx, fmt.Sprintf("%s/api/projects/%d/tasks", c.BaseURL, projectID), req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTask 获取任务快照。404 返回 ErrNotFound。
func (c *Client) GetTask(ctx context.Context, taskID int) (*model.Task, error) {
	var out model.Task
	err := c.getJSON(ctx, fmt.Sprintf("%s/api/tasks/%d", c.BaseURL, taskID), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask 删除任务
func (c *Client) DeleteTask(ctx context.Context, taskID int) error {
	return c.delete(ctx, fmt.Sprintf("%s/api/tasks/%d", c.BaseURL, taskID))
}

// RunTask 触发任务在后端开始执行（后端起后台线程跑 agent）
func (c *Client) RunTask(ctx context.Context, taskID int) error {
	return c.postJSON(ctx, fmt.Sprintf("%s/api/tasks/%d/run", c.BaseURL, taskID), nil, nil)
}

// ArtifactDownload 产物下载流
type ArtifactDownload struct {
	Filename string
	Body     io.ReadCloser
}

// Artifact 下载任务产物（outline/markdown/report）。
// 产物走普通下载，不参与轮询。
func (c *Client) Artifact(ctx context.Context, taskID int, kind model.Artifact) (*ArtifactDownload, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown artifact kind: %s", kind)
	}

	url := fmt.Sprintf("%s/api/tasks/%d/%s", c.BaseURL, taskID, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(b))
	}

	return &ArtifactDownload{
		Filename: attachmentFilename(resp.Header.Get("Content-Disposition"), taskID, kind),
		Body:     resp.Body,
	}, nil
}

// attachmentFilename 从 Content-Disposition 提取文件名，缺省时按约定拼一个
func attachmentFilename(disposition string, taskID int, kind model.Artifact) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if name := params["filename"]; name != "" {
				return path.Base(name)
			}
		}
	}

	ext := map[model.Artifact]string{
		model.ArtifactOutline:  "json",
		model.ArtifactMarkdown: "md",
		model.ArtifactReport:   "tex",
	}[kind]
	return fmt.Sprintf("task_%d_%s.%s", taskID, kind, ext)
}
