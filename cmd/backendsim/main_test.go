package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linqiankun/researcher-console/internal/model"
)

func TestAdvance_WalksPipelineToComplete(t *testing.T) {
	s := newSimulator()
	s.stageDelay = time.Millisecond

	s.mu.Lock()
	task := &model.Task{ID: s.allocID(), ProjectID: 1, UserPrompt: "综述", Status: string(model.StageGatheringContext)}
	s.tasks[task.ID] = task
	s.mu.Unlock()

	s.advance(task.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	got := s.tasks[task.ID]
	assert.Equal(t, model.StatusComplete, got.Status)
	assert.True(t, got.HasOutline, "大纲阶段之后应有大纲")
	assert.True(t, got.HasFinalReport, "完成后应有最终报告")
	require.NotEmpty(t, got.FinalMarkdownContent)
	assert.True(t, strings.HasPrefix(got.FinalMarkdownContent, "# 综述"), "报告应以任务标题开头")
}

func TestAdvance_WritingSectionsCarrySubProgress(t *testing.T) {
	s := newSimulator()
	s.stageDelay = time.Millisecond

	s.mu.Lock()
	task := &model.Task{ID: s.allocID(), ProjectID: 1, Status: string(model.StageGatheringContext)}
	s.tasks[task.ID] = task
	s.mu.Unlock()

	// 并发读出推进过程中出现过的状态串
	seen := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			s.mu.Lock()
			st := s.tasks[task.ID].Status
			s.mu.Unlock()
			seen <- st
			if st == model.StatusComplete || st == model.StatusFailed {
				return
			}
			time.Sleep(200 * time.Microsecond)
		}
	}()

	s.advance(task.ID)
	<-done
	close(seen)

	var sawWriting bool
	for st := range seen {
		if strings.HasPrefix(st, string(model.StageWritingSection)) {
			// 写作阶段必须带 _i_of_n 子进度，控制台靠前缀匹配识别
			assert.Regexp(t, `^writing_section_\d+_of_\d+$`, st)
			sawWriting = true
		}
	}
	assert.True(t, sawWriting, "推进过程应至少观察到一次写作阶段")
}

func TestAdvance_DeletedTaskStopsQuietly(t *testing.T) {
	s := newSimulator()
	s.stageDelay = time.Millisecond

	s.mu.Lock()
	task := &model.Task{ID: s.allocID(), ProjectID: 1, Status: string(model.StageGatheringContext)}
	s.tasks[task.ID] = task
	delete(s.tasks, task.ID)
	s.mu.Unlock()

	// 任务已删除，advance 应直接返回而不是 panic
	s.advance(task.ID)
}
