// Package progress 实现任务进度的推导与轮询：
// 把后端的自由格式状态串映射到固定流水线上，产出仪表盘视图，
// 并按固定节拍轮询任务直到终态。
package progress

import (
	"fmt"

	"github.com/linqiankun/researcher-console/internal/markdown"
	"github.com/linqiankun/researcher-console/internal/model"
)

// StageState 单个流水线节点的渲染状态
type StageState string

const (
	StagePending    StageState = "pending"
	StageInProgress StageState = "in_progress"
	StageDone       StageState = "complete"
	StageFailed     StageState = "failed"
)

// StageView 流水线节点的视图
type StageView struct {
	ID     model.Stage `json:"id"`
	Label  string      `json:"label"`
	State  StageState  `json:"state"`
	Detail string      `json:"detail,omitempty"`
}

// Dashboard 任务仪表盘视图。Render 的输出，整体替换，不做增量更新。
type Dashboard struct {
	TaskID        int         `json:"task_id"`
	ProjectID     int         `json:"project_id"`
	UserPrompt    string      `json:"user_prompt"`
	Status        string      `json:"status"`
	StatusMessage string      `json:"status_message,omitempty"`
	Stages        []StageView `json:"stages"`

	// ShowOutputs 终态才展示产物面板
	ShowOutputs       bool `json:"show_outputs"`
	OutlineAvailable  bool `json:"outline_available"`
	MarkdownAvailable bool `json:"markdown_available"`
	ReportAvailable   bool `json:"report_available"`

	// PreviewHTML 消毒后的 Markdown 预览。
	// 只要 final_markdown_content 非空就渲染，不要求终态。
	PreviewHTML string `json:"preview_html,omitempty"`

	// Polling 非终态时为 true，表示应继续轮询该任务
	Polling bool `json:"polling"`
}

// DeriveStages 状态串 → 各节点渲染状态。纯函数。
// 规则（按优先级）：
//  1. failed：所有节点一律 failed，不区分部分完成
//  2. complete：所有节点（含终点）complete
//  3. 前缀命中某节点：之前 complete、命中 in_progress、之后 pending
//  4. 未识别（queued、空串、乱串）：全部 pending
func DeriveStages(status model.Status) []StageView {
	views := make([]StageView, len(model.Pipeline))
	for i, stage := range model.Pipeline {
		views[i] = StageView{ID: stage, Label: stage.Label(), State: StagePending}
	}

	switch {
	case status.Failed():
		for i := range views {
			views[i].State = StageFailed
		}
	case status.Raw == model.StatusComplete:
		for i := range views {
			views[i].State = StageDone
		}
	case status.Stage != "":
		for i, stage := range model.Pipeline {
			if stage == status.Stage {
				views[i].State = StageInProgress
				views[i].Detail = status.Detail
				break
			}
			views[i].State = StageDone
		}
	}

	return views
}

// Render 任务快照 → 仪表盘视图。纯函数，同一快照渲染多次结果一致。
func Render(task model.Task, renderer *markdown.Renderer) (Dashboard, error) {
	status := model.ParseStatus(task.Status)

	d := Dashboard{
		TaskID:            task.ID,
		ProjectID:         task.ProjectID,
		UserPrompt:        task.UserPrompt,
		Status:            task.Status,
		StatusMessage:     task.StatusMessage,
		Stages:            DeriveStages(status),
		ShowOutputs:       status.Terminal(),
		OutlineAvailable:  task.HasOutline,
		MarkdownAvailable: task.FinalMarkdownContent != "",
		ReportAvailable:   task.HasFinalReport,
		Polling:           !status.Terminal(),
	}

	if task.FinalMarkdownContent != "" {
		html, err := renderer.Render(task.FinalMarkdownContent)
		if err != nil {
			return Dashboard{}, fmt.Errorf("render preview: %w", err)
		}
		d.PreviewHTML = html
	}

	return d, nil
}
