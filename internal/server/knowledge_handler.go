package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eryajf/servicebot/internal/logx"
)

// handleKnowledgeStats 获取知识库统计
func (s *HTTPGinServer) handleKnowledgeStats(c *gin.Context) {
	stats, err := s.knowledge.Stats(c.Request.Context())
	if err != nil {
		logx.Error("Failed to get knowledge stats: %v", err)
		s.error(c, http.StatusInternalServerError, "failed to get knowledge stats")
		return
	}
	s.success(c, stats)
}

// handleKnowledgeVariants 列出某条记录的答案变体
func (s *HTTPGinServer) handleKnowledgeVariants(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		s.error(c, http.StatusBadRequest, "invalid id")
		return
	}

	variants, err := s.knowledge.Variants(c.Request.Context(), uint(id))
	if err != nil {
		logx.Error("Failed to list knowledge variants: %v", err)
		s.error(c, http.StatusInternalServerError, "failed to list knowledge variants")
		return
	}
	s.success(c, gin.H{
		"id":    id,
		"items": variants,
	})
}
