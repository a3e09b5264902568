package client

import (
	"context"
	"fmt"

	"github.com/linqiankun/researcher-console/internal/model"
)

// CreateConversationRequest 创建会话请求
type CreateConversationRequest struct {
	Title string `json:"title,omitempty"`
}

// CreateConversation 在项目下创建空会话
func (c *Client) CreateConversation(ctx context.Context, projectID int, title string) (*model.Conversation, error) {
	var out model.Conversation
	err := c.postJSON(ctx, fmt.Sprintf("%s/api/projects/%d/conversations", c.BaseURL, projectID),
		CreateConversationRequest{Title: title}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteConversation 删除会话及其全部消息
func (c *Client) DeleteConversation(ctx context.Context, conversationID int) error {
	return c.delete(ctx, fmt.Sprintf("%s/api/conversations/%d", c.BaseURL, conversationID))
}

// AskRequest 提问请求
type AskRequest struct {
	Question       string `json:"question"`
	ConversationID int    `json:"conversation_id"`
}

// AskResponse 提问响应：回答正文 + 落库后的两条消息
type AskResponse struct {
	Answer           string        `json:"answer"`
	UserMessage      model.Message `json:"user_message"`
	AssistantMessage model.Message `json:"assistant_message"`
}

// Ask 向项目提问，后端做 RAG 检索并把问答写入会话
func (c *Client) Ask(ctx context.Context, projectID int, req AskRequest) (*AskResponse, error) {
	var out AskResponse
	err := c.postJSON(ctx, fmt.Sprintf("%s/api/projects/%d/ask", c.BaseURL, projectID), req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
