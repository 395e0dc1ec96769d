package server

import (
	"fmt"
	"strconv"

	"StockAgent/internal/recorder"

	"github.com/gin-gonic/gin"
)

type historyResponse struct {
	Ticker string                      `json:"ticker"`
	Count  int                         `json:"count"`
	Items  []recorder.AnalysisSnapshot `json:"items"`
}

func (s *Server) history(c *gin.Context) {
	ticker, err := cleanTicker(c.Param("ticker"))
	if err != nil {
		returnErrorJSON(err, c, 400)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			returnErrorJSON(fmt.Errorf("invalid limit %q", raw), c, 400)
			return
		}
	}

	items, err := s.rec().History(ticker, limit)
	if err != nil {
		returnErrorJSON(fmt.Errorf("load history for %s: %w", ticker, err), c, 500)
		return
	}
	if items == nil {
		items = []recorder.AnalysisSnapshot{}
	}

	c.JSON(200, historyResponse{
		Ticker: ticker,
		Count:  len(items),
		Items:  items,
	})
}
