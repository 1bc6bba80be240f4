package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"snakearena/arena"
	"snakearena/server"
	"snakearena/sim"
	"snakearena/store"
)

// 无玩家竞技场：机器人互相厮杀，死亡结果写入 parquet，终端看板显示统计
func main() {
	var (
		logPath    string
		dataDir    string
		flushEvery int
		speed      float64
		headless   bool
		duration   time.Duration
	)
	cfg := sim.DefaultConfig()
	cfg.BotTarget = 20
	flag.StringVar(&logPath, "log", "snakeio-sim.log", "log file path")
	flag.StringVar(&dataDir, "out-dir", "data/arena", "output directory for bot result parquet batches")
	flag.IntVar(&flushEvery, "flush-every", 100, "results buffered per parquet flush")
	flag.Float64Var(&speed, "speed", 1, "simulation speed multiplier, <= 0 runs unthrottled")
	flag.BoolVar(&headless, "headless", false, "log stats instead of showing the dashboard")
	flag.DurationVar(&duration, "duration", 0, "stop after this long, 0 runs until interrupted")
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	if err := server.InitLogger(logPath); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer server.SyncLogger()

	archive, err := store.OpenArchive(dataDir, flushEvery)
	if err != nil {
		log.Fatalf("open archive: %v", err)
	}
	defer func() {
		if err := archive.Close(); err != nil {
			server.Log.Errorf("final flush failed: %v", err)
		}
	}()

	session := "arena-" + uuid.NewString()
	runner, err := arena.NewRunner(cfg, archive, session, server.Logger().Named("arena"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()
	if duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	done := make(chan struct{})
	go func() {
		runner.Run(ctx, speed)
		close(done)
	}()
	server.Log.Infof("arena %s started with %d bots", session, cfg.BotTarget)

	if headless {
		logStats(ctx, runner)
	} else {
		p := tea.NewProgram(arena.NewDashboard(runner), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && ctx.Err() == nil {
			server.Log.Errorf("dashboard: %v", err)
		}
		cancel()
	}
	<-done

	st := runner.Stats()
	server.Log.Infof("arena stopped: ticks=%d deaths=%d food=%d", st.Ticks, st.Deaths, st.FoodEaten)
	fmt.Printf("ticks=%d deaths=%d archived=%d\n", st.Ticks, st.Deaths, st.Recorded)
}

func logStats(ctx context.Context, r *arena.Runner) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-r.Updates():
			server.Log.Infof("%s died at tick %d, score %d", u.Name, u.Tick, int(u.Score))
		case <-ticker.C:
			st := r.Stats()
			server.Log.Infof("stats: ticks=%d bots=%d deaths=%d food=%d", st.Ticks, st.Bots, st.Deaths, st.FoodEaten)
		}
	}
}
