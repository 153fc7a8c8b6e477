package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/seoreport/analyzer"
	"github.com/seo-optimizer/seoreport/middleware"
	"github.com/seo-optimizer/seoreport/render"
	"github.com/seo-optimizer/seoreport/stats"
	"github.com/seo-optimizer/seoreport/storage"
)

// server holds the dependencies of the HTTP handlers.
type server struct {
	analyzer *analyzer.Analyzer
	store    *storage.Store
	stats    *stats.Storage
	logger   *log.Logger
	devMode  bool
	now      func() time.Time
}

func newRouter(s *server, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()

	r.Use(middleware.ErrorHandler(s.logger))
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(limiter.RateLimit())
	r.Use(middleware.CORS())
	r.Use(middleware.Stats(s.stats))

	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/analyze", s.analyzeURL)
		api.POST("/save", s.saveAnalysis)
		api.GET("/load/:filename", s.loadAnalysis)
		api.GET("/analyses", s.listAnalyses)
		api.POST("/export", s.exportReport)
		api.GET("/statistics", s.statistics)
	}

	return r
}

// errorJSON writes the {status, message} failure body.
func errorJSON(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status":  analyzer.StatusError,
		"message": message,
	})
}

// httpStatus maps an error code to the response status.
func httpStatus(code string) int {
	switch code {
	case analyzer.EINVALID:
		return http.StatusBadRequest
	case analyzer.ENOTFOUND:
		return http.StatusNotFound
	case analyzer.EFETCH:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"extractors": s.analyzer.Extractors(),
	})
}

type analyzeRequest struct {
	URL string `json:"url" binding:"required,url"`
}

func (s *server) analyzeURL(c *gin.Context) {
	var request analyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid URL provided")
		return
	}

	result := s.analyzer.Analyze(c.Request.Context(), request.URL)
	if !result.OK() {
		errorJSON(c, httpStatus(result.Failure.Code), result.Failure.Message)
		return
	}

	body, err := json.Marshal(result.Report)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "An unexpected error occurred: "+err.Error())
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

type saveRequest struct {
	URL      string           `json:"url"`
	Analysis *analyzer.Report `json:"analysis"`
	Notes    string           `json:"notes"`
}

func (s *server) saveAnalysis(c *gin.Context) {
	var request saveRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		errorJSON(c, http.StatusBadRequest, "URL and analysis data are required")
		return
	}

	result, err := s.store.Save(request.URL, request.Analysis, request.Notes)
	if err != nil {
		s.logger.Warn("save failed", "url", request.URL, "error", err)
		errorJSON(c, httpStatus(analyzer.ErrorCode(err)), analyzer.ErrorMessage(err))
		return
	}

	s.logger.Info("analysis saved", "url", request.URL, "filename", result.Filename)
	c.JSON(http.StatusOK, result)
}

func (s *server) loadAnalysis(c *gin.Context) {
	saved, err := s.store.Load(c.Param("filename"))
	if err != nil {
		errorJSON(c, httpStatus(analyzer.ErrorCode(err)), analyzer.ErrorMessage(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": analyzer.StatusSuccess,
		"data":   saved,
	})
}

func (s *server) listAnalyses(c *gin.Context) {
	summaries, err := s.store.List()
	if err != nil {
		errorJSON(c, httpStatus(analyzer.ErrorCode(err)), analyzer.ErrorMessage(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   analyzer.StatusSuccess,
		"analyses": summaries,
	})
}

type exportRequest struct {
	URL    string `json:"url" binding:"required,url"`
	Format string `json:"format"`
}

func (s *server) exportReport(c *gin.Context) {
	var request exportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid URL provided")
		return
	}

	renderer, err := render.Lookup(request.Format, render.WithClock(s.now))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, analyzer.ErrorMessage(err))
		return
	}

	result := s.analyzer.Analyze(c.Request.Context(), request.URL)
	if !result.OK() {
		errorJSON(c, httpStatus(result.Failure.Code), result.Failure.Message)
		return
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, result.Report); err != nil {
		s.logger.Error("report rendering failed", "format", renderer.Format(), "url", request.URL, "error", err)
		errorJSON(c, http.StatusInternalServerError, "Failed to generate report: "+err.Error())
		return
	}

	filename := render.Filename(renderer, s.now())
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, renderer.ContentType(), buf.Bytes())
}

type monthSummary struct {
	Analyses          int     `json:"analyses"`
	Failures          int     `json:"failures"`
	Exports           int     `json:"exports"`
	Saves             int     `json:"saves"`
	AverageDurationMS float64 `json:"average_duration_ms"`
	ErrorRate         float64 `json:"error_rate"`
}

func summarize(m stats.MonthlyStats) monthSummary {
	return monthSummary{
		Analyses:          m.Analyses,
		Failures:          m.Failures,
		Exports:           m.Exports,
		Saves:             m.Saves,
		AverageDurationMS: m.AverageDuration(),
		ErrorRate:         m.ErrorRate(),
	}
}

// statistics returns the current month; DEV_MODE adds every stored month.
func (s *server) statistics(c *gin.Context) {
	response := gin.H{
		"month":   s.now().Format("2006-01"),
		"current": summarize(s.stats.GetCurrentStats()),
	}

	if s.devMode {
		months := make(map[string]monthSummary)
		for _, month := range s.stats.GetAllMonths() {
			if m, ok := s.stats.GetMonthlyStats(month); ok {
				months[month] = summarize(m)
			}
		}
		response["months"] = months
	}

	c.JSON(http.StatusOK, response)
}
