package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eryajf/servicebot/internal/logx"
	"github.com/eryajf/servicebot/internal/pipeline"
)

// AskRequest 提问请求
type AskRequest struct {
	Question   string `json:"question"`
	ForceShort bool   `json:"ask_forceshort"`
}

// blockedMessage 审核拦截时返回给用户的提示
const blockedMessage = "Blocked by moderation filter."

func (s *HTTPGinServer) handleAsk(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := s.asker.Ask(c.Request.Context(), pipeline.Request{
		Question:   req.Question,
		ForceShort: req.ForceShort,
	})
	if err != nil {
		s.askError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// askError 把流程错误映射为 HTTP 状态码
func (s *HTTPGinServer) askError(c *gin.Context, err error) {
	var blocked *pipeline.BlockedError
	var upstream *pipeline.UpstreamError

	switch {
	case errors.As(err, &blocked):
		s.error(c, http.StatusBadRequest, blockedMessage)
	case errors.Is(err, pipeline.ErrEmptyQuestion):
		s.error(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &upstream):
		logx.Error("Language model call failed, stage %s: %v", upstream.Stage, upstream.Err)
		s.error(c, http.StatusBadGateway, "language model unavailable")
	default:
		logx.Error("Failed to answer question: %v", err)
		s.error(c, http.StatusInternalServerError, "internal error")
	}
}
