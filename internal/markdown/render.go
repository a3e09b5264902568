// Package markdown 把后端返回的 Markdown（聊天消息、报告预览）渲染成
// 可以直接插入页面的 HTML。渲染结果一律过 bluemonday 白名单，
// 防止 LLM 输出或用户输入里夹带的脚本注入。
package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/linqiankun/researcher-console/internal/metrics"
)

// Renderer Markdown 渲染器（渲染 + 消毒）
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer 创建渲染器。
// GFM 扩展对齐后端的报告格式（表格、删除线、任务列表）。
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
			),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render 渲染并消毒。输入为空时返回空串，不视为错误。
func (r *Renderer) Render(source string) (string, error) {
	if source == "" {
		return "", nil
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	out := r.policy.Sanitize(buf.String())
	metrics.ObserveMarkdownRender(time.Since(start).Seconds())

	return out, nil
}
