package dto

import "github.com/linqiankun/researcher-console/internal/model"

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name string `json:"name" binding:"required" example:"plasma-simulation"`
}

// ProjectListResponse 项目列表响应
type ProjectListResponse struct {
	Items []model.Project `json:"items"`
	Total int             `json:"total"`
}

// MessageView 会话消息视图。Content 是原始 Markdown，
// ContentHTML 是消毒后的渲染结果，可直接插入页面。
type MessageView struct {
	Role        string `json:"role"`
	Content     string `json:"content"`
	ContentHTML string `json:"content_html"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// ConversationView 会话视图
type ConversationView struct {
	ID       int           `json:"id"`
	Title    string        `json:"title"`
	Messages []MessageView `json:"messages"`
}

// ProjectDetailResponse 项目详情响应
type ProjectDetailResponse struct {
	ID            int                `json:"id"`
	Name          string             `json:"name"`
	Documents     []model.Document   `json:"documents"`
	Conversations []ConversationView `json:"conversations"`
}

// CreateConversationRequest 创建会话请求
type CreateConversationRequest struct {
	Title string `json:"title" example:"New Conversation"`
}

// AskRequest 提问请求
type AskRequest struct {
	Question       string `json:"question" binding:"required" example:"总结主要结论"`
	ConversationID int    `json:"conversation_id" binding:"required" example:"5"`
}

// AskResponse 提问响应
type AskResponse struct {
	Answer           string      `json:"answer"`
	AnswerHTML       string      `json:"answer_html"`
	UserMessage      MessageView `json:"user_message"`
	AssistantMessage MessageView `json:"assistant_message"`
}
