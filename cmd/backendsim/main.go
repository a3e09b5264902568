// backendsim 是研究助手后端的本地模拟器。
// 实现控制台依赖的全部 REST 接口，任务执行用 goroutine 按固定节奏推进状态，
// 方便在没有真实后端（Python + LLM）的环境里联调控制台与轮询器。
package main

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/linqiankun/researcher-console/internal/model"
)

func main() {
	if err := loadEnvFile(); err != nil {
		log.Printf("警告: 无法加载 .env 文件: %v（将使用环境变量或默认值）", err)
	}

	addr := os.Getenv("BACKENDSIM_ADDR")
	if addr == "" {
		addr = ":5000"
	}

	sim := newSimulator()
	sim.seed()

	r := gin.Default()

	r.GET("/api/projects", sim.listProjects)
	r.POST("/api/projects", sim.createProject)
	r.GET("/api/projects/:project_id", sim.getProject)
	r.POST("/api/projects/:project_id/documents", sim.uploadDocument)
	r.DELETE("/api/documents/:document_id", sim.deleteDocument)
	r.GET("/api/documents/:document_id/figures", sim.documentFigures)
	r.GET("/api/projects/:project_id/figures/*filename", sim.figureImage)
	r.GET("/api/projects/:project_id/bibtex", sim.bibtex)

	r.POST("/api/projects/:project_id/conversations", sim.createConversation)
	r.DELETE("/api/conversations/:conversation_id", sim.deleteConversation)
	r.POST("/api/projects/:project_id/ask", sim.ask)

	r.GET("/api/projects/:project_id/tasks", sim.listTasks)
	r.POST("/api/projects/:project_id/tasks", sim.createTask)
	r.GET("/api/tasks/:task_id", sim.getTask)
	r.DELETE("/api/tasks/:task_id", sim.deleteTask)
	r.POST("/api/tasks/:task_id/run", sim.runTask)
	r.GET("/api/tasks/:task_id/outline", sim.downloadOutline)
	r.GET("/api/tasks/:task_id/markdown", sim.downloadMarkdown)
	r.GET("/api/tasks/:task_id/report", sim.downloadReport)

	log.Printf("后端模拟器监听 %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("后端模拟器退出: %v", err)
	}
}

// simulator 内存态的后端。所有数据进程内持有，重启即清空。
type simulator struct {
	mu sync.Mutex

	nextID        int
	projects      map[int]*model.Project
	documents     map[int]*simDocument
	conversations map[int]*simConversation
	figures       map[int]*simFigure
	tasks         map[int]*model.Task

	// stageDelay 每个阶段的推进间隔。比轮询节拍略长，
	// 保证控制台至少能观察到每个阶段一次。
	stageDelay time.Duration

	// failureRate 任务失败概率（0~1），默认不失败
	failureRate float64
}

type simDocument struct {
	model.Document
	ProjectID int
	DocType   string
}

type simConversation struct {
	model.Conversation
	ProjectID int
}

type simFigure struct {
	model.Figure
	DocumentID int
}

func newSimulator() *simulator {
	s := &simulator{
		nextID:        1,
		projects:      make(map[int]*model.Project),
		documents:     make(map[int]*simDocument),
		conversations: make(map[int]*simConversation),
		figures:       make(map[int]*simFigure),
		tasks:         make(map[int]*model.Task),
		stageDelay:    4 * time.Second,
	}
	if d := os.Getenv("BACKENDSIM_STAGE_DELAY"); d != "" {
		if parsed, err := time.ParseDuration(d); err == nil {
			s.stageDelay = parsed
		}
	}
	if os.Getenv("BACKENDSIM_FAILURES") == "true" {
		s.failureRate = 0.2
	}
	return s
}

func (s *simulator) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

// seed 预置一个带文献的项目，省去每次联调都要从零建数据
func (s *simulator) seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &model.Project{ID: s.allocID(), Name: "Plasma Optimization Review"}
	s.projects[p.ID] = p

	doc := &simDocument{
		Document: model.Document{
			ID:       s.allocID(),
			Filename: "Aehle2024.pdf",
			Title:    "Progress in plasma accelerator optimization",
			Bibtex:   model.BibtexData{Key: "Aehle2024", Author: "Aehle et al.", Year: "2024"},
		},
		ProjectID: p.ID,
		DocType:   "article",
	}
	s.documents[doc.ID] = doc

	fig := &simFigure{
		Figure: model.Figure{
			ID:          s.allocID(),
			PageNumber:  2,
			ImagePath:   "figures/doc_1_p2_fig0.png",
			Name:        "Line Plot",
			Description: "Beam energy versus iteration count",
			Analysis:    "Optimization converges after roughly 40 iterations",
		},
		DocumentID: doc.ID,
	}
	s.figures[fig.ID] = fig
}

// ---- 项目 ----

func (s *simulator) listProjects(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *simulator) createProject(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	s.mu.Lock()
	p := &model.Project{ID: s.allocID(), Name: req.Name}
	s.projects[p.ID] = p
	s.mu.Unlock()

	c.JSON(http.StatusCreated, p)
}

func (s *simulator) getProject(c *gin.Context) {
	id, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.projects[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	detail := model.ProjectDetail{ID: p.ID, Name: p.Name}
	for _, doc := range s.documents {
		if doc.ProjectID == id {
			detail.Documents = append(detail.Documents, doc.Document)
		}
	}
	for _, conv := range s.conversations {
		if conv.ProjectID == id {
			detail.Conversations = append(detail.Conversations, conv.Conversation)
		}
	}
	sort.Slice(detail.Documents, func(i, j int) bool { return detail.Documents[i].ID < detail.Documents[j].ID })
	sort.Slice(detail.Conversations, func(i, j int) bool { return detail.Conversations[i].ID < detail.Conversations[j].ID })

	c.JSON(http.StatusOK, detail)
}

func (s *simulator) uploadDocument(c *gin.Context) {
	id, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	docType := c.DefaultPostForm("type", "misc")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	doc := &simDocument{
		Document: model.Document{
			ID:       s.allocID(),
			Filename: fileHeader.Filename,
			Title:    fileHeader.Filename,
		},
		ProjectID: id,
		DocType:   docType,
	}
	s.documents[doc.ID] = doc
	c.JSON(http.StatusCreated, doc.Document)
}

func (s *simulator) deleteDocument(c *gin.Context) {
	id, ok := pathID(c, "document_id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.documents[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	delete(s.documents, id)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *simulator) documentFigures(c *gin.Context) {
	id, ok := pathID(c, "document_id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.documents[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}

	out := make([]model.Figure, 0)
	for _, fig := range s.figures {
		if fig.DocumentID == id {
			out = append(out, fig.Figure)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

// figureImage 按 image_path 查图并返回一个占位 PNG（模拟器不落磁盘文件）
func (s *simulator) figureImage(c *gin.Context) {
	if _, ok := pathID(c, "project_id"); !ok {
		return
	}
	filename := strings.TrimPrefix(c.Param("filename"), "/")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fig := range s.figures {
		if fig.ImagePath == filename {
			c.Data(http.StatusOK, "image/png", placeholderPNG)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "figure not found"})
}

// placeholderPNG 1x1 透明 PNG
var placeholderPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func (s *simulator) bibtex(c *gin.Context) {
	id, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	var bib string
	for _, doc := range s.documents {
		if doc.ProjectID == id {
			key := doc.Filename
			if ext := filepath.Ext(key); ext != "" {
				key = key[:len(key)-len(ext)]
			}
			bib += fmt.Sprintf("@%s{%s,\n  title = {%s},\n}\n\n", doc.DocType, key, doc.Filename)
		}
	}

	c.Header("Content-Disposition", "attachment; filename=references.bib")
	c.Data(http.StatusOK, "application/x-bibtex", []byte(bib))
}

// ---- 会话与问答 ----

func (s *simulator) createConversation(c *gin.Context) {
	id, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.Title == "" {
		req.Title = "New Conversation"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	conv := &simConversation{
		Conversation: model.Conversation{ID: s.allocID(), Title: req.Title},
		ProjectID:    id,
	}
	s.conversations[conv.ID] = conv
	c.JSON(http.StatusCreated, conv.Conversation)
}

func (s *simulator) deleteConversation(c *gin.Context) {
	id, ok := pathID(c, "conversation_id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return
	}
	delete(s.conversations, id)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *simulator) ask(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req struct {
		Question       string `json:"question"`
		ConversationID int    `json:"conversation_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[projectID]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	now := time.Now().Format(time.RFC3339)
	answer := fmt.Sprintf("根据项目文献，关于 **%s** 的回答如下 [@Aehle2024]：\n\n- 这是模拟器生成的占位回答。", req.Question)
	userMsg := model.Message{Role: "user", Content: req.Question, Timestamp: now}
	assistantMsg := model.Message{Role: "assistant", Content: answer, Timestamp: now}

	if conv, exists := s.conversations[req.ConversationID]; exists && conv.ProjectID == projectID {
		conv.Messages = append(conv.Messages, userMsg, assistantMsg)
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":            answer,
		"user_message":      userMsg,
		"assistant_message": assistantMsg,
	})
}

// ---- 任务 ----

func (s *simulator) listTasks(c *gin.Context) {
	id, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	out := make([]model.Task, 0)
	for _, t := range s.tasks {
		if t.ProjectID == id {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *simulator) createTask(c *gin.Context) {
	id, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req struct {
		UserPrompt string `json:"user_prompt"`
		TaskType   string `json:"task_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserPrompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_prompt is required"})
		return
	}
	if req.TaskType == "" {
		req.TaskType = "report_writing"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	t := &model.Task{
		ID:         s.allocID(),
		ProjectID:  id,
		TaskType:   req.TaskType,
		UserPrompt: req.UserPrompt,
		Status:     model.StatusQueued,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	s.tasks[t.ID] = t
	c.JSON(http.StatusCreated, t)
}

func (s *simulator) getTask(c *gin.Context) {
	id, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, exists := s.tasks[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *simulator) deleteTask(c *gin.Context) {
	id, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	delete(s.tasks, id)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *simulator) runTask(c *gin.Context) {
	id, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	s.mu.Lock()
	t, exists := s.tasks[id]
	if !exists {
		s.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	if t.Status != model.StatusQueued {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "task already started"})
		return
	}
	t.Status = string(model.StageGatheringContext)
	s.mu.Unlock()

	go s.advance(id)
	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

// advance 后台推进任务状态，模拟真实后端的 agent 执行流程。
// 写作阶段带 _i_of_n 后缀，用来验证控制台的前缀匹配。
func (s *simulator) advance(taskID int) {
	const sections = 3
	fail := rand.Float64() < s.failureRate
	failAt := rand.Intn(3) // 失败发生在前三个阶段之一

	steps := []string{
		string(model.StageGatheringContext),
		string(model.StageGeneratingOutline),
	}
	for i := 1; i <= sections; i++ {
		steps = append(steps, fmt.Sprintf("%s_%d_of_%d", model.StageWritingSection, i, sections))
	}
	steps = append(steps, string(model.StageAssemblingReport))

	for i, step := range steps {
		time.Sleep(s.stageDelay)

		s.mu.Lock()
		t, exists := s.tasks[taskID]
		if !exists {
			s.mu.Unlock()
			return
		}

		if fail && i == failAt {
			t.Status = model.StatusFailed
			t.StatusMessage = fmt.Sprintf("simulated failure at %s", step)
			s.mu.Unlock()
			log.Printf("任务 %d 失败于 %s", taskID, step)
			return
		}

		t.Status = step
		switch {
		case step == string(model.StageGeneratingOutline):
			t.HasOutline = true
		case step == string(model.StageAssemblingReport):
			t.FinalMarkdownContent = simulatedReport(t.UserPrompt, sections)
		}
		s.mu.Unlock()
		log.Printf("任务 %d 进入 %s", taskID, step)
	}

	time.Sleep(s.stageDelay)

	s.mu.Lock()
	if t, exists := s.tasks[taskID]; exists {
		t.Status = model.StatusComplete
		t.HasFinalReport = true
	}
	s.mu.Unlock()
	log.Printf("任务 %d 完成", taskID)
}

func simulatedReport(prompt string, sections int) string {
	report := fmt.Sprintf("# %s\n\n", prompt)
	for i := 1; i <= sections; i++ {
		report += fmt.Sprintf("## Section %d\n\n这是模拟器生成的第 %d 节内容 [@Aehle2024]。\n\n", i, i)
	}
	return report
}

// ---- 产物下载 ----

func (s *simulator) downloadOutline(c *gin.Context) {
	s.downloadArtifact(c, model.ArtifactOutline)
}

func (s *simulator) downloadMarkdown(c *gin.Context) {
	s.downloadArtifact(c, model.ArtifactMarkdown)
}

func (s *simulator) downloadReport(c *gin.Context) {
	s.downloadArtifact(c, model.ArtifactReport)
}

func (s *simulator) downloadArtifact(c *gin.Context, kind model.Artifact) {
	id, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, exists := s.tasks[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	var (
		body        []byte
		filename    string
		contentType string
	)
	switch kind {
	case model.ArtifactOutline:
		if !t.HasOutline {
			c.JSON(http.StatusNotFound, gin.H{"error": "outline not available"})
			return
		}
		body = []byte(`{"sections": ["Introduction", "Methods", "Conclusion"]}`)
		filename = fmt.Sprintf("task_%d_outline.json", id)
		contentType = "application/json"
	case model.ArtifactMarkdown:
		if t.FinalMarkdownContent == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "markdown not available"})
			return
		}
		body = []byte(t.FinalMarkdownContent)
		filename = fmt.Sprintf("task_%d_report.md", id)
		contentType = "text/markdown; charset=utf-8"
	default:
		if !t.HasFinalReport {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not available"})
			return
		}
		body = []byte("\\documentclass{article}\n\\begin{document}\nSimulated report.\n\\end{document}\n")
		filename = fmt.Sprintf("task_%d_report.tex", id)
		contentType = "application/x-tex"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, body)
}

// pathID 解析路径里的整数 id，非法时直接返回 404
func pathID(c *gin.Context, name string) (int, bool) {
	var id int
	if _, err := fmt.Sscanf(c.Param(name), "%d", &id); err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}

// loadEnvFile 尝试从项目根目录加载 .env 文件
func loadEnvFile() error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, path := range possiblePaths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		if _, err := os.Stat(absPath); err == nil {
			return godotenv.Load(absPath)
		}
	}
	return nil
}
