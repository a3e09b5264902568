package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linqiankun/researcher-console/client"
	"github.com/linqiankun/researcher-console/internal/markdown"
	"github.com/linqiankun/researcher-console/internal/metrics"
	"github.com/linqiankun/researcher-console/internal/middleware"
	"github.com/linqiankun/researcher-console/internal/model"
	"github.com/linqiankun/researcher-console/internal/server/dto"
)

// ConversationHandler 会话相关 API Handler
type ConversationHandler struct {
	backend  *client.Client
	renderer *markdown.Renderer
}

// NewConversationHandler 创建 ConversationHandler
func NewConversationHandler(backend *client.Client, renderer *markdown.Renderer) *ConversationHandler {
	return &ConversationHandler{
		backend:  backend,
		renderer: renderer,
	}
}

// CreateConversation godoc
// @Summary 创建会话
// @Description 在项目下创建空会话
// @Tags Conversations
// @Accept json
// @Produce json
// @Param project_id path int true "项目 ID"
// @Param request body dto.CreateConversationRequest false "会话创建请求"
// @Success 201 {object} model.Conversation
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /projects/{project_id}/conversations [post]
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	projectID, _ := middleware.ParseIDParam(c, "project_id")

	var req dto.CreateConversationRequest
	_ = c.ShouldBindJSON(&req)
	if req.Title == "" {
		req.Title = "New Conversation"
	}

	conv, err := h.backend.CreateConversation(c.Request.Context(), projectID, req.Title)
	metrics.RecordBackendRequest("create_conversation", err)
	if err != nil {
		backendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conv)
}

// DeleteConversation godoc
// @Summary 删除会话
// @Description 删除会话及其全部消息
// @Tags Conversations
// @Produce json
// @Param conversation_id path int true "会话 ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /conversations/{conversation_id} [delete]
func (h *ConversationHandler) DeleteConversation(c *gin.Context) {
	conversationID, _ := middleware.ParseIDParam(c, "conversation_id")

	err := h.backend.DeleteConversation(c.Request.Context(), conversationID)
	metrics.RecordBackendRequest("delete_conversation", err)
	if err != nil {
		backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Status: "ok", Message: "会话已删除"})
}

// Ask godoc
// @Summary 项目内提问
// @Description 代理到后端做 RAG 问答，响应附带消毒后的 HTML
// @Tags Conversations
// @Accept json
// @Produce json
// @Param project_id path int true "项目 ID"
// @Param request body dto.AskRequest true "提问请求"
// @Success 200 {object} dto.AskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /projects/{project_id}/ask [post]
func (h *ConversationHandler) Ask(c *gin.Context) {
	projectID, _ := middleware.ParseIDParam(c, "project_id")

	var req dto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.backend.Ask(c.Request.Context(), projectID, client.AskRequest{
		Question:       req.Question,
		ConversationID: req.ConversationID,
	})
	metrics.RecordBackendRequest("ask", err)
	if err != nil {
		backendError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AskResponse{
		Answer:           resp.Answer,
		AnswerHTML:       h.renderMessage(resp.Answer),
		UserMessage:      h.messageView(resp.UserMessage),
		AssistantMessage: h.messageView(resp.AssistantMessage),
	})
}

func (h *ConversationHandler) renderMessage(content string) string {
	html, err := h.renderer.Render(content)
	if err != nil {
		return ""
	}
	return html
}

func (h *ConversationHandler) messageView(msg model.Message) dto.MessageView {
	return dto.MessageView{
		Role:        msg.Role,
		Content:     msg.Content,
		ContentHTML: h.renderMessage(msg.Content),
		Timestamp:   msg.Timestamp,
	}
}
