package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status     string `json:"status"`
	DataSource string `json:"data_source"`
	LLM        string `json:"llm"`
	LLMStatus  string `json:"llm_status"`
}

func (s *Server) health(c *gin.Context) {
	resp := healthResponse{
		Status:     "ok",
		DataSource: s.Fetcher.Name(),
		LLM:        "none",
		LLMStatus:  "disabled",
	}
	if s.Generator != nil {
		resp.LLM = s.Generator.Name()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if err := s.Generator.HealthCheck(ctx); err != nil {
			resp.LLMStatus = "unreachable"
		} else {
			resp.LLMStatus = "ok"
		}
	}
	c.JSON(200, resp)
}

type testLLMRequest struct {
	Prompt string `json:"prompt"`
}

type testLLMResponse struct {
	Model      string `json:"model"`
	Reply      string `json:"reply"`
	DurationMs int64  `json:"duration_ms"`
}

func (s *Server) testLLM(c *gin.Context) {
	if s.Generator == nil {
		returnErrorJSON(errors.New("no LLM generator configured"), c, 503)
		return
	}

	var req testLLMRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			returnErrorJSON(fmt.Errorf("failed to read request body: %w", err), c, 400)
			return
		}
	}
	if req.Prompt == "" {
		req.Prompt = "Reply with the single word: ok"
	}

	start := time.Now()
	reply, err := s.Generator.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		returnErrorJSON(fmt.Errorf("generation failed: %w", err), c, 502)
		return
	}
	c.JSON(200, testLLMResponse{
		Model:      s.Generator.Name(),
		Reply:      reply,
		DurationMs: time.Since(start).Milliseconds(),
	})
}
