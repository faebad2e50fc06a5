package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"astock/pkg/config"
	"astock/pkg/logger"
	"astock/pkg/market"
	"astock/pkg/news"
	"astock/pkg/provider/caixin"
	"astock/pkg/provider/decorators"
	"astock/pkg/provider/eastmoney"
	"astock/pkg/provider/sse"
	"astock/pkg/timing"
)

const serverVersion = "1.0.0"

func main() {
	configPath := flag.String("config", "", "配置文件路径（留空使用默认配置）")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{Level: cfg.Logger.Level, Format: cfg.Logger.Format})
	log := logger.WithComponent("api_server")

	breakerCfg := decorators.DefaultCircuitBreakerConfig()
	em := decorators.NewMarketBreaker(eastmoney.New(cfg.Source), breakerCfg)
	marginSource := decorators.NewMarginBreaker(sse.New(cfg.Source), breakerCfg)
	marketNews := decorators.NewMarketNewsBreaker(caixin.New(cfg.Source), breakerCfg)

	clock := timing.NewSystemTimeService()
	marketSvc := market.NewService(em, marginSource)
	newsSvc := news.NewService(em, marketNews, clock, cfg.News.DefaultWindowDays)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), corsMiddleware())

	h := newHandlers(marketSvc, newsSvc, clock)
	router.GET("/health", h.health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/stocks/codes", h.stockCodes)
		v1.GET("/stocks/:code/history", h.stockHistory)
		v1.GET("/stocks/:code/financial-abstract", h.financialAbstract)
		v1.GET("/stocks/:code/margin", h.marginDetail)
		v1.GET("/stocks/:code/dividends", h.dividendDetail)
		v1.GET("/stocks/:code/news", h.stockNews)
		v1.GET("/news", h.financialNews)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("API服务器启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("API服务器启动失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("收到退出信号，开始优雅关闭")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("服务器关闭异常")
	}
	log.Info("API服务器已退出")
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
