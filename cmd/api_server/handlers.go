package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"astock/pkg/market"
	"astock/pkg/news"
	"astock/pkg/provider/core"
	"astock/pkg/schema"
	"astock/pkg/timing"
)

type handlers struct {
	market *market.Service
	news   *news.Service
	clock  timing.TimeService
}

func newHandlers(marketSvc *market.Service, newsSvc *news.Service, clock timing.TimeService) *handlers {
	return &handlers{market: marketSvc, news: newsSvc, clock: clock}
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": serverVersion,
		"date":    timing.FormatISO(h.clock.Today()),
	})
}

// respond 输出查询结果或按错误类别映射状态码：
// 入参错误 400，熔断 503，其余上游问题 502
func respond(c *gin.Context, records []schema.Record, err error) {
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, core.ErrInvalidDateFormat),
			errors.Is(err, core.ErrInvalidPattern),
			errors.Is(err, core.ErrInvalidArgument):
			status = http.StatusBadRequest
		case errors.Is(err, core.ErrProviderUnavailable):
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(records),
		"records": records,
	})
}

func (h *handlers) stockCodes(c *gin.Context) {
	records, err := h.market.GetStockCode(c.Request.Context(), c.Query("name"))
	respond(c, records, err)
}

func (h *handlers) stockHistory(c *gin.Context) {
	period := c.DefaultQuery("period", "daily")
	records, err := h.market.GetHistoricalStockPrice(
		c.Request.Context(),
		c.Param("code"),
		c.Query("start_date"),
		c.Query("end_date"),
		period,
		c.Query("adjust"),
	)
	respond(c, records, err)
}

func (h *handlers) financialAbstract(c *gin.Context) {
	indicator := c.DefaultQuery("indicator", "按报告期")
	records, err := h.market.GetStockFinancialAbstract(c.Request.Context(), c.Param("code"), indicator)
	respond(c, records, err)
}

func (h *handlers) marginDetail(c *gin.Context) {
	freq, err := timing.ParseFrequency(c.DefaultQuery("freq", "D"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	records, err := h.market.GetStockMarginDetail(
		c.Request.Context(),
		c.Param("code"),
		c.Query("start_date"),
		c.Query("end_date"),
		freq,
	)
	respond(c, records, err)
}

func (h *handlers) dividendDetail(c *gin.Context) {
	records, err := h.market.GetStockFhpsDetail(c.Request.Context(), c.Param("code"))
	respond(c, records, err)
}

func (h *handlers) stockNews(c *gin.Context) {
	records, err := h.news.StockNews(
		c.Request.Context(),
		c.Param("code"),
		c.Query("start_date"),
		c.Query("end_date"),
	)
	respond(c, records, err)
}

func (h *handlers) financialNews(c *gin.Context) {
	records, err := h.news.FinancialNews(
		c.Request.Context(),
		c.Query("start_date"),
		c.Query("end_date"),
	)
	respond(c, records, err)
}
