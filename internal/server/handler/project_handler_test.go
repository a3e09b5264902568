package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linqiankun/researcher-console/client"
	"github.com/linqiankun/researcher-console/internal/markdown"
	"github.com/linqiankun/researcher-console/internal/middleware"
	"github.com/linqiankun/researcher-console/internal/model"
)

// newProjectRouter 搭一个只挂项目路由的引擎，后端指向给定的假服务
func newProjectRouter(backendURL string) *gin.Engine {
	backend := client.NewClient(backendURL)
	h := NewProjectHandler(backend, markdown.NewRenderer())

	r := gin.New()
	r.GET("/documents/:document_id/figures", middleware.ValidateIDParam("document_id"), h.ListFigures)
	r.GET("/projects/:project_id/figures/*filename", middleware.ValidateIDParam("project_id"), h.DownloadFigure)
	return r
}

func TestListFigures(t *testing.T) {
	figures := []model.Figure{
		{ID: 1, PageNumber: 2, ImagePath: "figures/doc_1_p2_fig0.png", Name: "Line Plot", Analysis: "converges after 40 iterations"},
		{ID: 2, PageNumber: 5, ImagePath: "figures/doc_1_p5_fig1.png", Name: "Bar Chart"},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/documents/4/figures" {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(figures)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	r := newProjectRouter(srv.URL)
	w := doRequest(r, http.MethodGet, "/documents/4/figures")
	require.Equal(t, http.StatusOK, w.Code)

	var got []model.Figure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "figures/doc_1_p2_fig0.png", got[0].ImagePath)
	assert.Equal(t, "Line Plot", got[0].Name)
}

func TestListFigures_DocumentNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	r := newProjectRouter(srv.URL)
	w := doRequest(r, http.MethodGet, "/documents/99/figures")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadFigure_ProxiesImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// image_path 里的子目录必须原样透传到后端路径
		if r.URL.Path == "/api/projects/1/figures/figures/doc_1_p2_fig0.png" {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(png)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	r := newProjectRouter(srv.URL)
	w := doRequest(r, http.MethodGet, "/projects/1/figures/figures/doc_1_p2_fig0.png")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, png, w.Body.Bytes())
}

func TestDownloadFigure_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	r := newProjectRouter(srv.URL)
	w := doRequest(r, http.MethodGet, "/projects/1/figures/missing.png")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
