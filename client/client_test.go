package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linqiankun/researcher-console/internal/model"
)

func TestGetTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks/7", r.URL.Path)
		json.NewEncoder(w).Encode(model.Task{
			ID:         7,
			ProjectID:  1,
			TaskType:   "report_writing",
			UserPrompt: "write a report",
			Status:     "writing_section_2_of_5",
			HasOutline: true,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	task, err := c.GetTask(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, task.ID)
	assert.Equal(t, "writing_section_2_of_5", task.Status)
	assert.True(t, task.HasOutline)
	assert.False(t, task.HasFinalReport)
}

func TestGetTask_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GetTask(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound, "404 应该映射为 ErrNotFound")
}

func TestGetTask_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GetTask(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestCreateProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/projects", r.URL.Path)

		var req CreateProjectRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "plasma", req.Name)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Project{ID: 3, Name: req.Name})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	p, err := c.CreateProject(context.Background(), "plasma")
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)
	assert.Equal(t, "plasma", p.Name)
}

func TestAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects/1/ask", r.URL.Path)

		var req AskRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 5, req.ConversationID)

		json.NewEncoder(w).Encode(AskResponse{
			Answer:           "42",
			UserMessage:      model.Message{Role: "user", Content: req.Question},
			AssistantMessage: model.Message{Role: "assistant", Content: "42"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.Ask(context.Background(), 1, AskRequest{Question: "what?", ConversationID: 5})
	require.NoError(t, err)
	assert.Equal(t, "42", resp.Answer)
	assert.Equal(t, "assistant", resp.AssistantMessage.Role)
}

func TestRunTask(t *testing.T) {
	var ran bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks/2/run", r.URL.Path)
		ran = true
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{"message": "started"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.NoError(t, c.RunTask(context.Background(), 2))
	assert.True(t, ran)
}

func TestArtifact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks/4/markdown", r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename=task_4_report.md`)
		w.Write([]byte("# report"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	dl, err := c.Artifact(context.Background(), 4, model.ArtifactMarkdown)
	require.NoError(t, err)
	defer dl.Body.Close()
	assert.Equal(t, "task_4_report.md", dl.Filename)
}

func TestArtifact_UnknownKind(t *testing.T) {
	c := NewClient("http://localhost:0")
	_, err := c.Artifact(context.Background(), 1, model.Artifact("figures"))
	assert.Error(t, err)
}

func TestAttachmentFilename_Fallback(t *testing.T) {
	assert.Equal(t, "task_9_outline.json", attachmentFilename("", 9, model.ArtifactOutline))
	assert.Equal(t, "task_9_report.tex", attachmentFilename("garbage;;;", 9, model.ArtifactReport))
}
