package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snakearena/server"
	"snakearena/sim"
	"snakearena/store"
)

// SnakeArena 入口：启动 HTTP + WebSocket 服务，每个连接一局独立的世界
func main() {
	var (
		addr       string
		webDir     string
		logPath    string
		dataDir    string
		flushEvery int
	)
	cfg := sim.DefaultConfig()
	flag.StringVar(&addr, "addr", ":8080", "server listen address, e.g. :8080")
	flag.StringVar(&webDir, "web", "web", "static web client directory, empty to disable")
	flag.StringVar(&logPath, "log", "app.log", "log file path")
	flag.StringVar(&dataDir, "data", "data/results", "parquet results directory")
	flag.IntVar(&flushEvery, "flush-every", 20, "results buffered per parquet flush")
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	// 使用第三方 zap 日志库写入日志文件（带滚动）
	if err := server.InitLogger(logPath); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	archive, err := store.OpenArchive(dataDir, flushEvery)
	if err != nil {
		server.Log.Fatalf("open archive: %v", err)
	}
	defer func() {
		if err := archive.Close(); err != nil {
			server.Log.Errorf("close archive: %v", err)
		}
	}()

	sm := server.GetSessionManager()
	if err := sm.Configure(cfg, archive); err != nil {
		server.Log.Fatalf("config: %v", err)
	}

	srv := &http.Server{Addr: addr, Handler: server.Routes(webDir)}

	go func() {
		server.Log.Infof("SnakeArena listening on %s; open http://localhost%v/", addr, addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		server.Log.Warnf("shutdown: %v", err)
	}
	sm.CloseAll()
	server.Log.Infof("closed; %d results pending flush", archive.Pending())
}
