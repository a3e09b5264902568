package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// MaxPayloadSize 普通 JSON 请求体上限（2MB）
	MaxPayloadSize = 2 * 1024 * 1024

	// MaxUploadSize 文献上传上限（100MB）。论文 PDF 动辄几十 MB，
	// 不能按普通请求体的标准拦
	MaxUploadSize = 100 * 1024 * 1024
)

// PayloadSizeLimit Payload 大小限制中间件。
// 只限制普通请求体；multipart 上传由上传路由用 UploadSizeLimit 单独限制。
func PayloadSizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "请求体过大，最大允许 2MB",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UploadSizeLimit multipart 上传大小限制中间件
func UploadSizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "上传文件过大，最大允许 100MB",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ParseIDParam 解析路径里的数字 id（后端的资源 id 都是自增整数）
func ParseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ValidateIDParam Gin 中间件：验证路径参数是正整数 id
func ValidateIDParam(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := ParseIDParam(c, name); !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": name + " 参数无效，必须是正整数",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// SanitizeString 清理字符串（去除危险字符）
func SanitizeString(s string) string {
	// 去除前后空格
	s = strings.TrimSpace(s)

	// 去除控制字符
	var builder strings.Builder
	for _, r := range s {
		if r >= 32 && r != 127 {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// CORSMiddleware 允许跨域（控制台前端与本服务可能不同源）
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
