// Package server exposes the pipeline over HTTP.
package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kayz/sonar/internal/logger"
	"github.com/kayz/sonar/internal/pipeline"
)

// QueryRequest is the body of POST /process.
type QueryRequest struct {
	Query string `json:"query"`
}

// AnswerResponse is the body returned by POST /process.
type AnswerResponse struct {
	Answer string `json:"answer"`
}

// Server serves the query pipeline API.
type Server struct {
	engine   *gin.Engine
	pipeline *pipeline.Pipeline
}

// New builds the server and registers its routes.
func New(p *pipeline.Pipeline) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		engine:   gin.New(),
		pipeline: p,
	}
	s.engine.Use(gin.Recovery())

	s.engine.POST("/process", s.handleProcess)
	s.engine.GET("/health", s.handleHealth)
	return s
}

func (s *Server) handleProcess(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		logger.Warn("[Server] empty query rejected")
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Query cannot be empty."})
		return
	}

	if !s.pipeline.Ready() {
		logger.Error("[Server] pipeline not ready")
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "서버 이용불가: 파이프라인 초기화 실패"})
		return
	}

	logger.Info("[Server] processing query: %q", req.Query)
	answer := s.pipeline.Run(c.Request.Context(), req.Query)
	c.JSON(http.StatusOK, AnswerResponse{Answer: answer})
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.pipeline.Ready() {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "API is running and core components seem initialized.",
		})
		return
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "서버 이용불가: 핵심 컴포넌트 초기화 실패"})
}

// Handler exposes the router for the HTTP server and for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
