// Package server exposes the analysis engine over HTTP.
package server

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"StockAgent/internal/collector"
	"StockAgent/internal/narrative"
	"StockAgent/internal/news"
	"StockAgent/internal/recorder"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server wires the HTTP API to its collaborators. Generator and Recorder
// may be nil; the routes that need them degrade or report accordingly.
type Server struct {
	Fetcher     collector.Fetcher
	News        news.Provider
	Generator   narrative.Generator
	Recorder    recorder.Recorder
	HistoryDays int
	NewsLimit   int
	CORSOrigins []string
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(s.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = s.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/health", s.health)
	router.POST("/analyze", s.analyze)
	router.POST("/analyze/raw", s.analyzeRaw)
	router.POST("/sentiment", s.quickSentiment)
	router.POST("/test-llm", s.testLLM)
	router.GET("/history/:ticker", s.history)
	return router
}

// Start blocks serving the API on the given port.
func (s *Server) Start(port int) error {
	log.Printf("[INFO] HTTP API listening on :%d", port)
	return s.Router().Run(fmt.Sprintf(":%d", port))
}

func (s *Server) rec() recorder.Recorder {
	if s.Recorder == nil {
		return recorder.NewNoopRecorder()
	}
	return s.Recorder
}

func returnErrorJSON(err error, c *gin.Context, code int) {
	log.Printf("[WARN] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

var tickerRe = regexp.MustCompile(`^[A-Z^][A-Z0-9.\-^]{0,9}$`)

// cleanTicker normalizes user-supplied symbols. Uppercase letters, digits,
// and the . - ^ symbol characters are accepted, ten characters at most.
func cleanTicker(raw string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if t == "" {
		return "", errors.New("ticker is required")
	}
	if !tickerRe.MatchString(t) {
		return "", fmt.Errorf("invalid ticker %q", raw)
	}
	return t, nil
}
