package progress

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linqiankun/researcher-console/client"
	"github.com/linqiankun/researcher-console/internal/logger"
	"github.com/linqiankun/researcher-console/internal/model"
)

func TestMain(m *testing.M) {
	_ = logger.Init(false)
	os.Exit(m.Run())
}

// fetcherFunc 测试用的 Fetcher 适配器
type fetcherFunc func(ctx context.Context, taskID int) (*model.Task, error)

func (f fetcherFunc) GetTask(ctx context.Context, taskID int) (*model.Task, error) {
	return f(ctx, taskID)
}

func newTestWatcher(f Fetcher) *Watcher {
	w := NewWatcher(f)
	w.interval = 5 * time.Millisecond
	w.timeout = time.Second
	return w
}

func waitDone(t *testing.T, h *Handle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("轮询循环没有按预期退出")
	}
}

func TestWatcher_StopsOnTerminal(t *testing.T) {
	w := newTestWatcher(fetcherFunc(func(ctx context.Context, taskID int) (*model.Task, error) {
		return &model.Task{ID: taskID, Status: "complete", HasFinalReport: true}, nil
	}))

	h := w.Watch(7)
	waitDone(t, h)

	_, active := w.Active()
	assert.False(t, active, "终态后不应再有活跃轮询")

	snap, ok := w.Snapshot()
	require.True(t, ok, "终态快照应该已发布")
	assert.Equal(t, "complete", snap.Task.Status)
}

func TestWatcher_StopsOnNotFound(t *testing.T) {
	var calls atomic.Int32
	w := newTestWatcher(fetcherFunc(func(ctx context.Context, taskID int) (*model.Task, error) {
		calls.Add(1)
		return nil, client.ErrNotFound
	}))

	h := w.Watch(404)
	waitDone(t, h)

	// 被删除的任务不会重新出现：一次 404 就终止，不重试
	assert.Equal(t, int32(1), calls.Load())
	_, ok := w.Snapshot()
	assert.False(t, ok)
}

func TestWatcher_StopsOnNetworkError(t *testing.T) {
	var calls atomic.Int32
	w := newTestWatcher(fetcherFunc(func(ctx context.Context, taskID int) (*model.Task, error) {
		calls.Add(1)
		return nil, errors.New("connection refused")
	}))

	h := w.Watch(1)
	waitDone(t, h)

	assert.Equal(t, int32(1), calls.Load(), "网络错误不重试")
}

func TestWatcher_SingleActiveHandle(t *testing.T) {
	w := newTestWatcher(fetcherFunc(func(ctx context.Context, taskID int) (*model.Task, error) {
		return &model.Task{ID: taskID, Status: "writing_section"}, nil
	}))

	h1 := w.Watch(1)
	h2 := w.Watch(2)
	h3 := w.Watch(3)

	// 旧句柄全部被取消，只剩最后一个
	waitDone(t, h1)
	waitDone(t, h2)

	id, active := w.Active()
	require.True(t, active)
	assert.Equal(t, 3, id)

	w.Stop()
	waitDone(t, h3)
	_, active = w.Active()
	assert.False(t, active)
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w := newTestWatcher(fetcherFunc(func(ctx context.Context, taskID int) (*model.Task, error) {
		return &model.Task{ID: taskID, Status: "gathering_context"}, nil
	}))

	// 没有活跃轮询时 Stop 是空操作
	w.Stop()

	h := w.Watch(1)
	h.Stop()
	h.Stop()
	w.Stop()
	waitDone(t, h)
}

func TestWatcher_DiscardsStaleInFlight(t *testing.T) {
	started := make(chan struct{}, 8)
	release := make(chan struct{})

	w := newTestWatcher(fetcherFunc(func(ctx context.Context, taskID int) (*model.Task, error) {
		started <- struct{}{}
		<-release
		return &model.Task{ID: taskID, Status: "writing_section"}, nil
	}))

	h := w.Watch(5)
	<-started

	// 请求在途时停止轮询；响应到达后必须被丢弃
	h.Stop()
	close(release)
	waitDone(t, h)

	_, ok := w.Snapshot()
	assert.False(t, ok, "停止后到达的在途响应不应更新快照")
}

func TestWatcher_StaleHandleCannotOverwriteNewWatch(t *testing.T) {
	started := make(chan struct{}, 8)
	release := make(chan struct{})

	w := newTestWatcher(fetcherFunc(func(ctx context.Context, taskID int) (*model.Task, error) {
		if taskID == 1 {
			started <- struct{}{}
			<-release
			return &model.Task{ID: 1, Status: "gathering_context"}, nil
		}
		return &model.Task{ID: 2, Status: "complete"}, nil
	}))

	h1 := w.Watch(1)
	<-started

	// 旧请求还在途时切换到新任务
	h2 := w.Watch(2)
	waitDone(t, h2)

	close(release)
	waitDone(t, h1)

	snap, ok := w.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 2, snap.Task.ID, "旧任务的在途响应不能覆盖新任务的快照")
}

func TestWatcher_AtMostOneInFlight(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32

	w := newTestWatcher(fetcherFunc(func(ctx context.Context, taskID int) (*model.Task, error) {
		n := inFlight.Add(1)
		for {
			old := maxInFlight.Load()
			if n <= old || maxInFlight.CompareAndSwap(old, n) {
				break
			}
		}
		// 故意慢于轮询节拍，验证不会并发发起下一拍
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		return &model.Task{ID: taskID, Status: "writing_section"}, nil
	}))

	h := w.Watch(1)
	time.Sleep(150 * time.Millisecond)
	h.Stop()
	waitDone(t, h)

	assert.Equal(t, int32(1), maxInFlight.Load(), "同一时刻最多一个在途轮询请求")
}

func TestWatcher_PublishesFreshSnapshots(t *testing.T) {
	var calls atomic.Int32
	w := newTestWatcher(fetcherFunc(func(ctx context.Context, taskID int) (*model.Task, error) {
		switch calls.Add(1) {
		case 1:
			return &model.Task{ID: taskID, Status: "generating_outline"}, nil
		case 2:
			return &model.Task{ID: taskID, Status: "writing_section_1_of_3"}, nil
		default:
			return &model.Task{ID: taskID, Status: "complete"}, nil
		}
	}))

	h := w.Watch(1)
	waitDone(t, h)

	snap, ok := w.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "complete", snap.Task.Status)
	assert.False(t, snap.FetchedAt.IsZero())
}
