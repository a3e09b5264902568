package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/linqiankun/researcher-console/client"
	"github.com/linqiankun/researcher-console/internal/markdown"
	"github.com/linqiankun/researcher-console/internal/metrics"
	"github.com/linqiankun/researcher-console/internal/middleware"
	"github.com/linqiankun/researcher-console/internal/model"
	"github.com/linqiankun/researcher-console/internal/server/dto"
)

// ProjectHandler 项目相关 API Handler。
// 全部操作代理到后端，控制台不落任何数据。
type ProjectHandler struct {
	backend  *client.Client
	renderer *markdown.Renderer
}

// NewProjectHandler 创建 ProjectHandler
func NewProjectHandler(backend *client.Client, renderer *markdown.Renderer) *ProjectHandler {
	return &ProjectHandler{
		backend:  backend,
		renderer: renderer,
	}
}

// ListProjects godoc
// @Summary 项目列表
// @Description 获取后端全部项目
// @Tags Projects
// @Produce json
// @Success 200 {object} dto.ProjectListResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	items, err := h.backend.Projects(c.Request.Context())
	metrics.RecordBackendRequest("list_projects", err)
	if err != nil {
		backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProjectListResponse{Items: items, Total: len(items)})
}

// CreateProject godoc
// @Summary 创建项目
// @Description 在后端创建新项目
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectRequest true "项目创建请求"
// @Success 201 {object} model.Project
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	name := middleware.SanitizeString(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "项目名不能为空"})
		return
	}

	p, err := h.backend.CreateProject(c.Request.Context(), name)
	metrics.RecordBackendRequest("create_project", err)
	if err != nil {
		backendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetProject godoc
// @Summary 项目详情
// @Description 获取项目详情；会话消息附带消毒后的 HTML，方便前端直接渲染
// @Tags Projects
// @Produce json
// @Param project_id path int true "项目 ID"
// @Success 200 {object} dto.ProjectDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /projects/{project_id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, _ := middleware.ParseIDParam(c, "project_id")

	detail, err := h.backend.ProjectDetail(c.Request.Context(), projectID)
	metrics.RecordBackendRequest("project_detail", err)
	if err != nil {
		backendError(c, err)
		return
	}

	resp := dto.ProjectDetailResponse{
		ID:            detail.ID,
		Name:          detail.Name,
		Documents:     detail.Documents,
		Conversations: make([]dto.ConversationView, 0, len(detail.Conversations)),
	}
	for _, conv := range detail.Conversations {
		resp.Conversations = append(resp.Conversations, h.renderConversation(conv))
	}

	c.JSON(http.StatusOK, resp)
}

// renderConversation 把会话消息渲染成带 HTML 的视图。
// 聊天消息与报告预览走同一个渲染器，消毒策略完全一致。
func (h *ProjectHandler) renderConversation(conv model.Conversation) dto.ConversationView {
	view := dto.ConversationView{
		ID:       conv.ID,
		Title:    conv.Title,
		Messages: make([]dto.MessageView, 0, len(conv.Messages)),
	}
	for _, msg := range conv.Messages {
		html, err := h.renderer.Render(msg.Content)
		if err != nil {
			// 渲染失败不拦截整个详情页，退回原始文本
			html = ""
		}
		view.Messages = append(view.Messages, dto.MessageView{
			Role:        msg.Role,
			Content:     msg.Content,
			ContentHTML: html,
			Timestamp:   msg.Timestamp,
		})
	}
	return view
}

// UploadDocument godoc
// @Summary 上传文献
// @Description 把 multipart 文件转发给后端处理与向量化
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Param project_id path int true "项目 ID"
// @Param file formData file true "文献文件"
// @Param type formData string false "文献类型" default(misc)
// @Success 201 {object} model.Document
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /projects/{project_id}/documents [post]
func (h *ProjectHandler) UploadDocument(c *gin.Context) {
	projectID, _ := middleware.ParseIDParam(c, "project_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "缺少 file 字段"})
		return
	}
	docType := c.DefaultPostForm("type", "misc")

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	defer f.Close()

	doc, err := h.backend.UploadDocument(c.Request.Context(), projectID, fileHeader.Filename, docType, f)
	metrics.RecordBackendRequest("upload_document", err)
	if err != nil {
		backendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// DeleteDocument godoc
// @Summary 删除文献
// @Description 删除文献（后端级联删除图表并重建索引）
// @Tags Projects
// @Produce json
// @Param document_id path int true "文献 ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /documents/{document_id} [delete]
func (h *ProjectHandler) DeleteDocument(c *gin.Context) {
	documentID, _ := middleware.ParseIDParam(c, "document_id")

	err := h.backend.DeleteDocument(c.Request.Context(), documentID)
	metrics.RecordBackendRequest("delete_document", err)
	if err != nil {
		backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Status: "ok", Message: "文献已删除"})
}

// ListFigures godoc
// @Summary 文献图表列表
// @Description 获取文献的全部图表分析结果（多模态 LLM 抽取的描述与结论）
// @Tags Projects
// @Produce json
// @Param document_id path int true "文献 ID"
// @Success 200 {array} model.Figure
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /documents/{document_id}/figures [get]
func (h *ProjectHandler) ListFigures(c *gin.Context) {
	documentID, _ := middleware.ParseIDParam(c, "document_id")

	figures, err := h.backend.DocumentFigures(c.Request.Context(), documentID)
	metrics.RecordBackendRequest("list_figures", err)
	if err != nil {
		backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, figures)
}

// DownloadFigure godoc
// @Summary 图表图片
// @Description 流式代理图表图片，供仪表盘与文献页内嵌展示
// @Tags Projects
// @Produce octet-stream
// @Param project_id path int true "项目 ID"
// @Param filename path string true "图片相对路径（Figure.image_path）"
// @Success 200 {string} string
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /projects/{project_id}/figures/{filename} [get]
func (h *ProjectHandler) DownloadFigure(c *gin.Context) {
	projectID, _ := middleware.ParseIDParam(c, "project_id")

	// 通配路由带前导斜杠；image_path 可能含子目录，保留其余部分
	filename := strings.TrimPrefix(c.Param("filename"), "/")
	if filename == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "缺少图片路径"})
		return
	}

	img, err := h.backend.FigureImage(c.Request.Context(), projectID, filename)
	metrics.RecordBackendRequest("figure_image", err)
	if err != nil {
		backendError(c, err)
		return
	}
	defer img.Body.Close()

	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, img.Body)
}

// DownloadBibtex godoc
// @Summary 下载 BibTeX
// @Description 下载项目全部文献的 .bib 文件
// @Tags Projects
// @Produce plain
// @Param project_id path int true "项目 ID"
// @Success 200 {string} string
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /projects/{project_id}/bibtex [get]
func (h *ProjectHandler) DownloadBibtex(c *gin.Context) {
	projectID, _ := middleware.ParseIDParam(c, "project_id")

	body, err := h.backend.Bibtex(c.Request.Context(), projectID)
	metrics.RecordBackendRequest("bibtex", err)
	if err != nil {
		backendError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Type", "application/x-bibtex")
	c.Header("Content-Disposition", "attachment; filename=references.bib")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}
