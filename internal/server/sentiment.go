package server

import (
	"fmt"

	"StockAgent/internal/narrative"
	"StockAgent/internal/news"

	"github.com/gin-gonic/gin"
)

type sentimentRequest struct {
	Ticker string `json:"ticker"`
	Limit  int    `json:"limit"`
}

type sentimentResponse struct {
	Result    narrative.QuickResult `json:"result"`
	Headlines []string              `json:"headlines"`
}

// quickSentiment classifies recent headlines without running the full
// pipeline. With no generator configured the lexicon does the scoring.
func (s *Server) quickSentiment(c *gin.Context) {
	var req sentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnErrorJSON(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	ticker, err := cleanTicker(req.Ticker)
	if err != nil {
		returnErrorJSON(err, c, 400)
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.NewsLimit
	}

	ctx := c.Request.Context()
	var headlines []news.Headline
	if s.News != nil {
		headlines, err = s.News.Headlines(ctx, ticker, limit)
		if err != nil {
			returnErrorJSON(fmt.Errorf("fetch headlines for %s: %w", ticker, err), c, 502)
			return
		}
	}

	res := narrative.QuickSentiment(ctx, s.Generator, ticker, headlines)
	c.JSON(200, sentimentResponse{
		Result:    res,
		Headlines: news.Titles(headlines),
	})
}
