package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linqiankun/researcher-console/client"
	"github.com/linqiankun/researcher-console/internal/logger"
	"github.com/linqiankun/researcher-console/internal/markdown"
	"github.com/linqiankun/researcher-console/internal/middleware"
	"github.com/linqiankun/researcher-console/internal/model"
	"github.com/linqiankun/researcher-console/internal/progress"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	_ = logger.Init(false)
	os.Exit(m.Run())
}

// newTaskRouter 搭一个只挂任务路由的引擎，后端指向给定的假服务
func newTaskRouter(backendURL string) (*gin.Engine, *progress.Watcher) {
	backend := client.NewClient(backendURL)
	watcher := progress.NewWatcher(backend)
	h := NewTaskHandler(backend, watcher, markdown.NewRenderer())

	r := gin.New()
	r.GET("/tasks/:task_id", middleware.ValidateIDParam("task_id"), h.GetTask)
	r.GET("/tasks/:task_id/dashboard", middleware.ValidateIDParam("task_id"), h.Dashboard)
	r.GET("/tasks/:task_id/artifacts/:kind", middleware.ValidateIDParam("task_id"), h.Artifact)
	r.POST("/watch/:task_id", middleware.ValidateIDParam("task_id"), h.Watch)
	r.DELETE("/watch", h.Unwatch)
	r.GET("/watch", h.WatchStatus)
	return r, watcher
}

// fakeBackend 返回固定任务快照的假后端
func fakeBackend(t *testing.T, task model.Task) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == fmt.Sprintf("/api/tasks/%d", task.ID) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(task)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestDashboard_ArmsWatcherWhenPolling(t *testing.T) {
	task := model.Task{ID: 7, ProjectID: 1, Status: "writing_section_2_of_5", UserPrompt: "综述"}
	srv := fakeBackend(t, task)

	r, watcher := newTaskRouter(srv.URL)
	defer watcher.Stop()

	w := doRequest(r, http.MethodGet, "/tasks/7/dashboard")
	require.Equal(t, http.StatusOK, w.Code)

	var d progress.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.True(t, d.Polling, "非终态应继续轮询")
	assert.False(t, d.ShowOutputs)

	id, ok := watcher.Active()
	require.True(t, ok, "查看非终态任务应武装轮询器")
	assert.Equal(t, 7, id)
}

func TestDashboard_TerminalDoesNotArmWatcher(t *testing.T) {
	task := model.Task{ID: 9, ProjectID: 1, Status: "complete", HasOutline: true, HasFinalReport: true}
	srv := fakeBackend(t, task)

	r, watcher := newTaskRouter(srv.URL)

	w := doRequest(r, http.MethodGet, "/tasks/9/dashboard")
	require.Equal(t, http.StatusOK, w.Code)

	var d progress.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.False(t, d.Polling)
	assert.True(t, d.ShowOutputs, "终态应展示产物面板")

	_, ok := watcher.Active()
	assert.False(t, ok, "终态任务不应武装轮询器")
}

func TestDashboard_RepeatViewKeepsSameWatch(t *testing.T) {
	task := model.Task{ID: 7, ProjectID: 1, Status: "gathering_context"}
	srv := fakeBackend(t, task)

	r, watcher := newTaskRouter(srv.URL)
	defer watcher.Stop()

	doRequest(r, http.MethodGet, "/tasks/7/dashboard")
	doRequest(r, http.MethodGet, "/tasks/7/dashboard")

	id, ok := watcher.Active()
	require.True(t, ok)
	assert.Equal(t, 7, id, "重复查看同一任务不应重置轮询")
}

func TestGetTask_NotFound(t *testing.T) {
	srv := fakeBackend(t, model.Task{ID: 1})
	r, _ := newTaskRouter(srv.URL)

	w := doRequest(r, http.MethodGet, "/tasks/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTask_BackendDown(t *testing.T) {
	srv := fakeBackend(t, model.Task{ID: 1})
	srv.Close()

	r, _ := newTaskRouter(srv.URL)
	w := doRequest(r, http.MethodGet, "/tasks/1")
	assert.Equal(t, http.StatusBadGateway, w.Code, "后端不可达应按网关错误处理")
}

func TestWatchLifecycle(t *testing.T) {
	task := model.Task{ID: 5, ProjectID: 1, Status: "generating_outline"}
	srv := fakeBackend(t, task)
	r, watcher := newTaskRouter(srv.URL)
	defer watcher.Stop()

	// 开始轮询
	w := doRequest(r, http.MethodPost, "/watch/5")
	require.Equal(t, http.StatusOK, w.Code)

	var started struct {
		Watching bool `json:"watching"`
		TaskID   int  `json:"task_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))
	assert.True(t, started.Watching)
	assert.Equal(t, 5, started.TaskID)

	// 查询状态
	w = doRequest(r, http.MethodGet, "/watch")
	require.Equal(t, http.StatusOK, w.Code)

	// 停止轮询，循环退出后 Active 应清空
	w = doRequest(r, http.MethodDelete, "/watch")
	require.Equal(t, http.StatusOK, w.Code)

	require.Eventually(t, func() bool {
		_, ok := watcher.Active()
		return !ok
	}, time.Second, 10*time.Millisecond, "停止后轮询句柄应被释放")
}

func TestArtifact_ProxiesDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tasks/3/markdown" {
			w.Header().Set("Content-Disposition", `attachment; filename="report_v1.md"`)
			_, _ = w.Write([]byte("# Report"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	r, _ := newTaskRouter(srv.URL)
	w := doRequest(r, http.MethodGet, "/tasks/3/artifacts/markdown")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "report_v1.md")
	assert.Equal(t, "# Report", w.Body.String())
}

func TestArtifact_UnknownKind(t *testing.T) {
	srv := fakeBackend(t, model.Task{ID: 3})
	r, _ := newTaskRouter(srv.URL)

	w := doRequest(r, http.MethodGet, "/tasks/3/artifacts/pdf")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
