package progress

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/linqiankun/researcher-console/client"
	"github.com/linqiankun/researcher-console/internal/logger"
	"github.com/linqiankun/researcher-console/internal/metrics"
	"github.com/linqiankun/researcher-console/internal/model"
)

// PollInterval 轮询节拍，固定 3 秒，不做配置项
const PollInterval = 3 * time.Second

// defaultFetchTimeout 单次轮询请求的超时
const defaultFetchTimeout = 10 * time.Second

// Fetcher 任务快照来源（生产环境是 client.Client）
type Fetcher interface {
	GetTask(ctx context.Context, taskID int) (*model.Task, error)
}

// Snapshot 最近一次轮询成功拿到的任务快照
type Snapshot struct {
	Task      model.Task
	FetchedAt time.Time
}

// Handle 一次轮询的句柄。由 Watch 返回、由调用方显式持有，
// 不存在进程级的隐式全局定时器。
type Handle struct {
	TaskID int

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Stop 停止轮询。幂等，重复调用安全。
// 只能阻止下一拍，已在途的请求无法取消；其响应到达后会被丢弃。
func (h *Handle) Stop() {
	h.once.Do(func() { close(h.stop) })
}

// Done 轮询循环完全退出后关闭（测试与优雅关闭用）
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) stopped() bool {
	select {
	case <-h.stop:
		return true
	default:
		return false
	}
}

// Watcher 任务轮询器。同一时刻最多持有一个活跃 Handle：
// Watch 一定先停掉旧的再建新的，不会出现两个定时器同时跑。
type Watcher struct {
	fetcher  Fetcher
	interval time.Duration
	timeout  time.Duration

	mu       sync.RWMutex
	active   *Handle
	snapshot *Snapshot
}

// NewWatcher 创建轮询器
func NewWatcher(fetcher Fetcher) *Watcher {
	return &Watcher{
		fetcher:  fetcher,
		interval: PollInterval,
		timeout:  defaultFetchTimeout,
	}
}

// Watch 开始轮询指定任务。已有活跃轮询时先取消它（cancel-before-create）。
func (w *Watcher) Watch(taskID int) *Handle {
	h := &Handle{
		TaskID: taskID,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	w.mu.Lock()
	if w.active != nil {
		w.active.Stop()
	}
	w.active = h
	w.snapshot = nil
	w.mu.Unlock()

	metrics.SetActivePolls(1)
	l := logger.WithTaskID(taskID)
	l.Info().Msg("开始轮询任务")

	go w.run(h)
	return h
}

// Stop 停止当前轮询（无活跃轮询时为空操作，幂等）
func (w *Watcher) Stop() {
	w.mu.RLock()
	h := w.active
	w.mu.RUnlock()

	if h != nil {
		h.Stop()
	}
}

// Active 返回当前轮询的任务 id
func (w *Watcher) Active() (int, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.active == nil {
		return 0, false
	}
	return w.active.TaskID, true
}

// Snapshot 返回最近一次轮询成功的任务快照
func (w *Watcher) Snapshot() (Snapshot, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.snapshot == nil {
		return Snapshot{}, false
	}
	return *w.snapshot, true
}

// run 轮询循环。fetch 在循环体内同步执行，同一任务同一时刻
// 最多一个在途请求；上一拍没回来之前不会发下一拍。
func (w *Watcher) run(h *Handle) {
	defer close(h.done)
	defer w.release(h)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// 先立即拉一次，之后按固定节拍
	for {
		if w.tick(h) {
			return
		}
		select {
		case <-h.stop:
			return
		case <-ticker.C:
		}
	}
}

// tick 执行一次 fetch-and-reconcile。返回 true 表示轮询应终止。
// 失败不重试：任务被删或后端不可达时，继续打点只会形成重试风暴。
func (w *Watcher) tick(h *Handle) (terminate bool) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	task, err := w.fetcher.GetTask(ctx, h.TaskID)
	cancel()

	metrics.RecordPollTick()

	if err != nil {
		reason := metrics.StopReasonNetworkError
		if errors.Is(err, client.ErrNotFound) {
			reason = metrics.StopReasonNotFound
		}
		l := logger.WithTaskID(h.TaskID)
		l.Warn().Err(err).Str("reason", reason).Msg("轮询终止")
		metrics.RecordPollStopped(reason)
		return true
	}

	// 已被 Stop 或被新的 Watch 替换：丢弃在途响应，不再更新快照
	if !w.publish(h, *task) {
		return true
	}

	st := model.ParseStatus(task.Status)
	if st.Terminal() {
		l := logger.WithTaskID(h.TaskID)
		l.Info().Str("status", task.Status).Msg("任务到达终态，停止轮询")
		metrics.RecordPollStopped(metrics.StopReasonTerminal)
		return true
	}

	return false
}

// publish 把快照写入 Watcher。句柄已失效时拒绝写入并返回 false。
func (w *Watcher) publish(h *Handle, task model.Task) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.active != h || h.stopped() {
		return false
	}
	w.snapshot = &Snapshot{Task: task, FetchedAt: time.Now()}
	return true
}

// release 轮询退出时清理活跃句柄（仅当没被新句柄替换时）
func (w *Watcher) release(h *Handle) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.active == h {
		w.active = nil
		metrics.SetActivePolls(0)
	}
}
