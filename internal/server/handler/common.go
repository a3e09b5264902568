package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linqiankun/researcher-console/client"
	"github.com/linqiankun/researcher-console/internal/server/dto"
)

// backendError 把后端调用错误映射为控制台响应。
// 404 原样透传；其余按网关错误处理（控制台自身没出错，是上游不可用）。
func backendError(c *gin.Context, err error) {
	if errors.Is(err, client.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "资源不存在"})
		return
	}
	c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
}
