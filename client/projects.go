package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/linqiankun/researcher-console/internal/model"
)

// Projects 获取全部项目列表
func (c *Client) Projects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/projects", c.BaseURL), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name string `json:"name"`
}

// CreateProject 创建项目
func (c *Client) CreateProject(ctx context.Context, name string) (*model.Project, error) {
	var out model.Project
	err := c.postJSON(ctx, fmt.Sprintf("%s/api/projects", c.BaseURL), CreateProjectRequest{Name: name}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ProjectDetail 获取单个项目的详情（含文献与会话）
func (c *Client) ProjectDetail(ctx context.Context, projectID int) (*model.ProjectDetail, error) {
	var out model.ProjectDetail
	err := c.getJSON(ctx, fmt.Sprintf("%s/api/projects/%d", c.BaseURL, projectID), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadDocument 上传文献（multipart，字段名 file / type 与后端对齐）
func (c *Client) UploadDocument(ctx context.Context, projectID int, filename, docType string, content io.Reader) (*model.Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if err := mw.WriteField("type", docType); err != nil {
		return nil, fmt.Errorf("write type field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	url := fmt.Sprintf("%s/api/projects/%d/documents", c.BaseURL, projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(b))
	}

	var out model.Document
	if err := decodeJSONBody(resp.Body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDocument 删除文献（后端会级联删除图表并重建索引）
func (c *Client) DeleteDocument(ctx context.Context, documentID int) error {
	return c.delete(ctx, fmt.Sprintf("%s/api/documents/%d", c.BaseURL, documentID))
}

// DocumentFigures 获取文献的全部图表分析结果
func (c *Client) DocumentFigures(ctx context.Context, documentID int) ([]model.Figure, error) {
	var out []model.Figure
	err := c.getJSON(ctx, fmt.Sprintf("%s/api/documents/%d/figures", c.BaseURL, documentID), &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FigureImage 图表图片下载流
type FigureImage struct {
	ContentType string
	Body        io.ReadCloser
}

// FigureImage 下载图表图片。filename 是 Figure.ImagePath 里的相对路径，
// 可能含目录分隔符，原样拼进 URL（后端按项目数据目录解析）。
func (c *Client) FigureImage(ctx context.Context, projectID int, filename string) (*FigureImage, error) {
	url := fmt.Sprintf("%s/api/projects/%d/figures/%s", c.BaseURL, projectID, filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(b))
	}

	return &FigureImage{
		ContentType: resp.Header.Get("Content-Type"),
		Body:        resp.Body,
	}, nil
}

// Bibtex 下载项目的 .bib 文件内容
func (c *Client) Bibtex(ctx context.Context, projectID int) (io.ReadCloser, error) {
	url := fmt.Sprintf("%s/api/projects/%d/bibtex", c.BaseURL, projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(b))
	}
	return resp.Body, nil
}
