package main

import (
	"flag"
	"log"

	"github.com/google/uuid"

	"snakearena/desktop"
	"snakearena/server"
	"snakearena/sim"
	"snakearena/store"
)

func main() {
	var (
		name    string
		logPath string
		dataDir string
	)
	cfg := sim.DefaultConfig()
	flag.StringVar(&name, "name", "You", "player name")
	flag.StringVar(&logPath, "log", "snakeio-desktop.log", "log file path")
	flag.StringVar(&dataDir, "data", "", "parquet results directory, empty disables persistence")
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	if err := server.InitLogger(logPath); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer server.SyncLogger()

	var scores sim.ScoreStore
	if dataDir != "" {
		archive, err := store.OpenArchive(dataDir, 1)
		if err != nil {
			log.Fatalf("open archive: %v", err)
		}
		defer archive.Close()
		scores = archive.ForSession("desktop-" + uuid.NewString())
	}

	g, err := desktop.NewGame(cfg, scores, name, server.Logger().Named("desktop"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := g.Run(); err != nil {
		server.Log.Errorf("run: %v", err)
	}
}
