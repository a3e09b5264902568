package model

import "strings"

// Stage 报告流水线的一个节点。
// 约定（与后端 agent 的状态写入顺序一致）：
// - gathering_context: 检索项目文献与图表，拼装上下文
// - generating_outline: LLM 生成报告大纲
// - writing_section: 逐节撰写（后端会带子进度，如 writing_section_2_of_5）
// - assembling_report: 汇总 Markdown 并转换最终报告
// - complete: 终态占位节点，用于进度条收尾
type Stage string

const (
	StageGatheringContext  Stage = "gathering_context"
	StageGeneratingOutline Stage = "generating_outline"
	StageWritingSection    Stage = "writing_section"
	StageAssemblingReport  Stage = "assembling_report"
	StageComplete          Stage = "complete"
)

// Pipeline 流水线固定顺序。顺序即推导规则：前缀命中某个节点时，
// 它之前的节点视为已完成，之后的节点视为未开始。
var Pipeline = []Stage{
	StageGatheringContext,
	StageGeneratingOutline,
	StageWritingSection,
	StageAssemblingReport,
	StageComplete,
}

// 展示文案
var stageLabels = map[Stage]string{
	StageGatheringContext:  "Gathering Context",
	StageGeneratingOutline: "Generating Outline",
	StageWritingSection:    "Writing Sections",
	StageAssemblingReport:  "Assembling Report",
	StageComplete:          "Complete",
}

// Label 节点的展示文案
func (s Stage) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return string(s)
}

// 终态状态字符串
const (
	StatusComplete = "complete"
	StatusFailed   = "failed"
	StatusQueued   = "queued"
)

// Status 是把后端的自由格式状态字符串解析后的带标签值。
// 后端用前缀编码子进度（writing_section_2_of_5），这里拆成
// 显式的 Stage + Detail，下游不再做字符串匹配。
type Status struct {
	Raw    string // 原始状态串
	Stage  Stage  // 命中的流水线节点；未命中时为空
	Detail string // 子进度（如 "2_of_5"）；无子进度时为空
}

// Terminal 是否终态（complete / failed）。终态后轮询不再恢复。
func (s Status) Terminal() bool {
	return s.Raw == StatusComplete || s.Raw == StatusFailed
}

// Failed 是否失败终态
func (s Status) Failed() bool {
	return s.Raw == StatusFailed
}

// ParseStatus 解析状态串。
// 规则：按流水线顺序找第一个满足「相等或前缀」的节点。
// complete 精确匹配 StageComplete；failed 与无法识别的状态不命中任何节点。
func ParseStatus(raw string) Status {
	st := Status{Raw: raw}
	if raw == "" || raw == StatusFailed {
		return st
	}
	if raw == StatusComplete {
		st.Stage = StageComplete
		return st
	}
	for _, stage := range Pipeline {
		if stage == StageComplete {
			// complete 只接受精确匹配，避免 "completed_xxx" 之类误判
			continue
		}
		if strings.HasPrefix(raw, string(stage)) {
			st.Stage = stage
			st.Detail = strings.TrimLeft(raw[len(stage):], "_:- ")
			return st
		}
	}
	return st
}
