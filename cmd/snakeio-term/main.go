package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"snakearena/server"
	"snakearena/sim"
	"snakearena/store"
	"snakearena/term"
)

// 终端版：tcell 绘制，beep 音效，结果可选写入 parquet
func main() {
	var (
		name    string
		logPath string
		dataDir string
		mute    bool
	)
	cfg := sim.DefaultConfig()
	flag.StringVar(&name, "name", "You", "player name")
	flag.StringVar(&logPath, "log", "snakeio-term.log", "log file path")
	flag.StringVar(&dataDir, "data", "", "parquet results directory, empty disables persistence")
	flag.BoolVar(&mute, "mute", false, "disable sound")
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	// 日志只写文件，避免打乱终端画面
	if err := server.InitLogger(logPath); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer server.SyncLogger()

	var scores sim.ScoreStore
	if dataDir != "" {
		archive, err := store.OpenArchive(dataDir, 1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open archive: %v\n", err)
			os.Exit(1)
		}
		defer archive.Close()
		scores = archive.ForSession("term-" + uuid.NewString())
	}

	sound := term.Silent()
	if !mute {
		var err error
		sound, err = term.NewSound()
		if err != nil {
			// 没有声卡也能玩
			server.Log.Warnf("audio initialization failed: %v", err)
		}
	}
	defer sound.Close()

	scr, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := scr.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	app, err := term.NewApp(scr, cfg, scores, sound, name, server.Logger().Named("term"))
	if err != nil {
		scr.Fini()
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runErr := app.Run(ctx)
	scr.Fini()
	if runErr != nil {
		server.Log.Errorf("run: %v", runErr)
	}
}
