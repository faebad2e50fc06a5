package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"astock/pkg/config"
	"astock/pkg/logger"
	"astock/pkg/market"
	"astock/pkg/news"
	"astock/pkg/provider/caixin"
	"astock/pkg/provider/decorators"
	"astock/pkg/provider/eastmoney"
	"astock/pkg/provider/sse"
	"astock/pkg/timing"
	"astock/pkg/tools"
)

const (
	serverName    = "astock"
	serverVersion = "1.0.0"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（留空使用默认配置）")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{Level: cfg.Logger.Level, Format: cfg.Logger.Format})
	// stdout 是 MCP 协议通道，日志只能走 stderr
	logger.SetOutput(os.Stderr)
	log := logger.WithComponent("mcp_server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	breakerCfg := decorators.DefaultCircuitBreakerConfig()
	em := decorators.NewMarketBreaker(eastmoney.New(cfg.Source), breakerCfg)
	marginSource := decorators.NewMarginBreaker(sse.New(cfg.Source), breakerCfg)
	marketNews := decorators.NewMarketNewsBreaker(caixin.New(cfg.Source), breakerCfg)

	clock := timing.NewSystemTimeService()
	marketSvc := market.NewService(em, marginSource)
	newsSvc := news.NewService(em, marketNews, clock, cfg.News.DefaultWindowDays)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)
	tools.NewRegistry(marketSvc, newsSvc, clock).Register(server)

	log.WithField("version", serverVersion).Info("MCP服务器启动，监听标准输入输出")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		log.WithError(err).Error("MCP服务器异常退出")
		os.Exit(1)
	}
	log.Info("MCP服务器已退出")
}
