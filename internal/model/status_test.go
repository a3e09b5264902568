package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus_PipelineStages(t *testing.T) {
	tests := []struct {
		raw        string
		wantStage  Stage
		wantDetail string
	}{
		{"gathering_context", StageGatheringContext, ""},
		{"generating_outline", StageGeneratingOutline, ""},
		{"writing_section", StageWritingSection, ""},
		{"writing_section_3", StageWritingSection, "3"},
		{"writing_section_2_of_5", StageWritingSection, "2_of_5"},
		{"writing_section:2of5", StageWritingSection, "2of5"},
		{"assembling_report", StageAssemblingReport, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			st := ParseStatus(tt.raw)
			assert.Equal(t, tt.wantStage, st.Stage)
			assert.Equal(t, tt.wantDetail, st.Detail)
			assert.False(t, st.Terminal())
		})
	}
}

func TestParseStatus_Terminal(t *testing.T) {
	st := ParseStatus("complete")
	assert.Equal(t, StageComplete, st.Stage)
	assert.True(t, st.Terminal())
	assert.False(t, st.Failed())

	st = ParseStatus("failed")
	assert.Empty(t, st.Stage, "failed 不命中任何节点")
	assert.True(t, st.Terminal())
	assert.True(t, st.Failed())
}

func TestParseStatus_Unrecognized(t *testing.T) {
	// queued 与无法识别的状态都不命中节点、不是终态
	for _, raw := range []string{"queued", "", "something_else", "completed_extra"} {
		st := ParseStatus(raw)
		assert.Empty(t, st.Stage, "raw=%q", raw)
		assert.False(t, st.Terminal(), "raw=%q", raw)
	}
}

func TestParseStatus_PrefixEquivalence(t *testing.T) {
	// 带子进度的状态与裸状态命中同一个节点
	assert.Equal(t, ParseStatus("writing_section").Stage, ParseStatus("writing_section_3").Stage)
}

func TestStageLabel(t *testing.T) {
	assert.Equal(t, "Gathering Context", StageGatheringContext.Label())
	assert.Equal(t, "unknown_stage", Stage("unknown_stage").Label())
}

func TestArtifactValid(t *testing.T) {
	assert.True(t, ArtifactOutline.Valid())
	assert.True(t, ArtifactMarkdown.Valid())
	assert.True(t, ArtifactReport.Valid())
	assert.False(t, Artifact("figures").Valid())
}
