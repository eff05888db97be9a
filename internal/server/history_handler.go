package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eryajf/servicebot/internal/logx"
)

// handleHistory 获取问答记录
func (s *HTTPGinServer) handleHistory(c *gin.Context) {
	// 分页参数
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	source := c.Query("source")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	if source == "all" {
		source = ""
	}

	offset := (page - 1) * pageSize
	logs, total, err := s.chatLogs.ListChatLogs(c.Request.Context(), source, pageSize, offset)
	if err != nil {
		logx.Error("Failed to list chat logs: %v", err)
		s.error(c, http.StatusInternalServerError, "failed to list chat logs")
		return
	}

	s.success(c, gin.H{
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
		"items":    logs,
	})
}
