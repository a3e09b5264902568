package model

// Task 后端报告任务的只读快照。
// 约定：快照整体替换，客户端不做任何增量修改（每次轮询拿到的都是全新对象）。
type Task struct {
	ID                   int    `json:"id"`
	ProjectID            int    `json:"project_id"`
	TaskType             string `json:"task_type"`
	UserPrompt           string `json:"user_prompt"`
	Status               string `json:"status"`
	StatusMessage        string `json:"status_message,omitempty"`
	HasOutline           bool   `json:"has_outline"`
	FinalMarkdownContent string `json:"final_markdown_content,omitempty"`
	HasFinalReport       bool   `json:"has_final_report"`
	CreatedAt            string `json:"created_at,omitempty"`
}

// Project 项目列表项
type Project struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProjectDetail 项目详情（含文献与会话）
type ProjectDetail struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Documents     []Document     `json:"documents"`
	Conversations []Conversation `json:"conversations"`
}

// Document 项目内的一篇文献
type Document struct {
	ID          int        `json:"id"`
	Filename    string     `json:"filename"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Bibtex      BibtexData `json:"bibtex_data"`
	UploadedAt  string     `json:"uploaded_at,omitempty"`
}

// Figure 从文献里抽取并经多模态分析的图表。
// ImagePath 是项目数据目录下的相对路径（如 figures/doc_1_p2_fig0.png），
// 取图片时原样拼进图片接口的路径。
type Figure struct {
	ID            int    `json:"id"`
	PageNumber    int    `json:"page_number"`
	ImagePath     string `json:"image_path"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Analysis      string `json:"analysis,omitempty"`
	ExtractedText string `json:"extracted_text,omitempty"`
}

// BibtexData 文献的 BibTeX 信息
type BibtexData struct {
	Key       string `json:"key,omitempty"`
	Author    string `json:"author,omitempty"`
	Year      string `json:"year,omitempty"`
	FullEntry string `json:"full_entry,omitempty"`
}

// Conversation 会话线程
type Conversation struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}

// Message 会话里的一条消息（role: user / assistant）
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Artifact 任务产物类型，对应 GET /api/tasks/{id}/{artifact}
type Artifact string

const (
	ArtifactOutline  Artifact = "outline"
	ArtifactMarkdown Artifact = "markdown"
	ArtifactReport   Artifact = "report"
)

func (a Artifact) Valid() bool {
	switch a {
	case ArtifactOutline, ArtifactMarkdown, ArtifactReport:
		return true
	default:
		return false
	}
}
