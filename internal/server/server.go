// Package server exposes the search pipeline over HTTP: a single embedded
// search page and a small JSON API behind it.
package server

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gujnews/internal/service"
)

//go:embed index.html
var pageFS embed.FS

type Server struct {
	svc    *service.SearchService
	logger *zap.Logger
	engine *gin.Engine
}

func New(svc *service.SearchService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLog(logger))
	engine.SetHTMLTemplate(template.Must(template.ParseFS(pageFS, "index.html")))

	s := &Server{svc: svc, logger: logger, engine: engine}
	engine.GET("/", s.page)
	engine.GET("/healthz", s.health)
	api := engine.Group("/api")
	api.POST("/search", s.search)
	api.GET("/files", s.files)
	return s
}

// Handler returns the underlying http.Handler for serving and tests.
func (s *Server) Handler() http.Handler { return s.engine }

func requestLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

func (s *Server) page(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Modes":     s.svc.Modes(),
		"Mode":      s.svc.DefaultMode(),
		"Threshold": s.svc.DefaultThreshold(),
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "articles": len(s.svc.Articles())})
}

type searchRequest struct {
	Query     string   `json:"query" binding:"required"`
	Mode      string   `json:"mode"`
	Threshold *float64 `json:"threshold"`
	Translate bool     `json:"translate"`
	Summarize bool     `json:"summarize"`
	Limit     int      `json:"limit"`
}

func (s *Server) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := s.svc.Search(service.Params{
		Query:     req.Query,
		Mode:      req.Mode,
		Threshold: req.Threshold,
		Translate: req.Translate,
		Summarize: req.Summarize,
		Limit:     req.Limit,
	})
	if err != nil {
		// Provider or mode failure: the query produced no results.
		s.logger.Warn("search failed", zap.String("query", req.Query), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) files(c *gin.Context) {
	counts := map[string]int{}
	order := []string{}
	for _, a := range s.svc.Articles() {
		if _, ok := counts[a.SourceFile]; !ok {
			order = append(order, a.SourceFile)
		}
		counts[a.SourceFile]++
	}
	type fileInfo struct {
		Name     string `json:"name"`
		Articles int    `json:"articles"`
	}
	infos := make([]fileInfo, 0, len(order))
	for _, name := range order {
		infos = append(infos, fileInfo{Name: name, Articles: counts[name]})
	}
	loadErrs := []string{}
	for _, err := range s.svc.LoadErrors() {
		loadErrs = append(loadErrs, err.Error())
	}
	c.JSON(http.StatusOK, gin.H{"files": infos, "load_errors": loadErrs})
}
