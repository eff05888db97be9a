package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eryajf/servicebot/internal/config"
	"github.com/eryajf/servicebot/internal/logx"
	"github.com/eryajf/servicebot/internal/memory"
	"github.com/eryajf/servicebot/internal/model"
	"github.com/eryajf/servicebot/internal/pipeline"
	"github.com/eryajf/servicebot/web"
)

const requestIDHeader = "X-Request-ID"

// Asker 问答入口
type Asker interface {
	Ask(ctx context.Context, req pipeline.Request) (*pipeline.Response, error)
}

// ChatLogLister 问答日志查询
type ChatLogLister interface {
	ListChatLogs(ctx context.Context, source string, limit, offset int) ([]model.ChatLog, int64, error)
}

// KnowledgeStore 知识库统计与健康检查
type KnowledgeStore interface {
	Stats(ctx context.Context) (*memory.Stats, error)
	Variants(ctx context.Context, id uint) ([]model.QuestionRecord, error)
	Ping(ctx context.Context) error
}

// Deps HTTP 服务依赖
type Deps struct {
	Asker     Asker
	ChatLogs  ChatLogLister
	Knowledge KnowledgeStore
}

// HTTPGinServer 基于 Gin 的 HTTP 服务器
type HTTPGinServer struct {
	config    *config.Config
	engine    *gin.Engine
	server    *http.Server
	templates *template.Template

	asker     Asker
	chatLogs  ChatLogLister
	knowledge KnowledgeStore
}

// NewHTTPGinServer 创建基于 Gin 的 HTTP 服务器
func NewHTTPGinServer(cfg *config.Config, deps Deps) (*HTTPGinServer, error) {
	// 设置 Gin 模式
	if cfg.Server.HTTP.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	s := &HTTPGinServer{
		config:    cfg,
		engine:    gin.New(),
		templates: templates,
		asker:     deps.Asker,
		chatLogs:  deps.ChatLogs,
		knowledge: deps.Knowledge,
	}

	// 注册中间件
	s.registerMiddlewares()

	// 注册路由
	if err := s.registerRoutes(); err != nil {
		return nil, err
	}

	return s, nil
}

// Handler 返回底层 http.Handler
func (s *HTTPGinServer) Handler() http.Handler {
	return s.engine
}

// registerMiddlewares 注册中间件
func (s *HTTPGinServer) registerMiddlewares() {
	// 恢复中间件 - 从 panic 恢复
	s.engine.Use(gin.Recovery())

	s.engine.Use(s.requestIDMiddleware())

	// 自定义日志中间件
	s.engine.Use(s.loggingMiddleware())

	s.engine.Use(s.corsMiddleware())
}

// requestIDMiddleware 为每个请求分配请求 ID
func (s *HTTPGinServer) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// loggingMiddleware 自定义日志中间件
func (s *HTTPGinServer) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		requestID := c.GetString("request_id")

		logx.Debug("HTTP request, id %s, method %s, path %s, remote_addr %s", requestID, method, path, c.ClientIP())

		c.Next()

		logx.Info("HTTP response, id %s, method %s, path %s, status %d, duration %s",
			requestID, method, path, c.Writer.Status(), time.Since(start))
	}
}

// corsMiddleware CORS 中间件
func (s *HTTPGinServer) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// registerRoutes 注册路由
func (s *HTTPGinServer) registerRoutes() error {
	staticFS, err := web.GetFileSystem()
	if err != nil {
		return fmt.Errorf("failed to load static files: %w", err)
	}

	s.engine.GET("/", s.handleIndex)
	s.engine.StaticFS("/static", staticFS)
	s.engine.POST("/ask", s.handleAsk)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 路由组
	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/health", s.handleHealth)
		v1.GET("/version", GetVersionInfo)
		v1.GET("/history", s.handleHistory)
		v1.GET("/knowledge/stats", s.handleKnowledgeStats)
		v1.GET("/knowledge/:id/variants", s.handleKnowledgeVariants)
	}

	return nil
}

// Start 启动 HTTP 服务器
func (s *HTTPGinServer) Start() error {
	addr := fmt.Sprintf("0.0.0.0:%d", s.config.Server.HTTP.Port)

	// 写超时覆盖分类、生成、摘要三次模型调用
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * s.config.LLM.Timeout,
	}

	logx.Info("🛜 Starting HTTP Server (Gin), Addr %s", addr)
	return s.server.ListenAndServe()
}

// Stop 停止 HTTP 服务器
func (s *HTTPGinServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Response 统一响应结构
type Response = model.Response

// success 返回成功响应
func (s *HTTPGinServer) success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "Success",
		Data:    data,
	})
}

// error 返回错误响应
func (s *HTTPGinServer) error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// ==================== 页面 ====================

func (s *HTTPGinServer) handleIndex(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, "index.html", gin.H{"Title": "servicebot"}); err != nil {
		logx.Error("Failed to render index page: %v", err)
		c.Status(http.StatusInternalServerError)
	}
}

// ==================== 健康检查 ====================

func (s *HTTPGinServer) handleHealth(c *gin.Context) {
	if err := s.knowledge.Ping(c.Request.Context()); err != nil {
		s.error(c, http.StatusServiceUnavailable, fmt.Sprintf("store unavailable: %v", err))
		return
	}
	s.success(c, gin.H{
		"status": "healthy",
	})
}
