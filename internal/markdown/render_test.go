package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Basic(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("# Hi")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "Hi")
}

func TestRender_Empty(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRender_StripsScript(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("hello <script>alert(1)</script> world")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "alert(1)")
}

func TestRender_StripsEventHandlers(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render(`click <a href="#" onclick="steal()">me</a>`)
	require.NoError(t, err)
	assert.NotContains(t, out, "onclick")

	out, err = r.Render(`<img src=x onerror="steal()">`)
	require.NoError(t, err)
	assert.NotContains(t, out, "onerror")
}

func TestRender_GFMTable(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, out, "<table")
}

func TestRender_KeepsCitationText(t *testing.T) {
	// 报告正文里的 Pandoc 引用标记按普通文本保留
	r := NewRenderer()

	out, err := r.Render("as shown by the data [@Aehle2024].")
	require.NoError(t, err)
	assert.Contains(t, out, "[@Aehle2024]")
}
