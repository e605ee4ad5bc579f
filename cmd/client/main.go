package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/vladcenuse/roster/client/game"
	"github.com/vladcenuse/roster/client/network"
	"github.com/vladcenuse/roster/pkg/api"
	"github.com/vladcenuse/roster/pkg/characters"
	"github.com/vladcenuse/roster/pkg/config"
	"github.com/vladcenuse/roster/pkg/log"
	"github.com/vladcenuse/roster/pkg/queue"
	"github.com/vladcenuse/roster/pkg/roster"
	"github.com/vladcenuse/roster/pkg/stats"
	"github.com/vladcenuse/roster/pkg/version"
)

func main() {
	logLevel := flag.String("log-level", "", "Log level (overrides ROSTER_LOG_LEVEL)")
	debug := flag.Bool("debug", false, "Debug mode")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	level := cfg.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	parsedLogLevel, err := log.ParseLogLevel(level)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting roster client version %s", version.Get())
	log.Info("Using server %s", cfg.ServerURL)

	store := roster.NewStore()
	apiClient := api.NewClient(cfg.ServerURL)
	generator := characters.NewGenerator(rand.NewSource(time.Now().UnixNano()))
	actions := roster.NewActions(store, apiClient, generator)

	messageQueue := queue.NewInMemoryQueue(1024)
	networkManager := network.NewNetworkManager(network.NewNetworkManagerOptions{
		ServerAddr:   cfg.WebSocketURL,
		MessageQueue: messageQueue,
		Store:        store,
	})

	summarizer := stats.NewSummarizer(rand.NewSource(time.Now().UnixNano()))

	g, err := game.NewGame(game.NewGameOptions{
		Debug:          *debug,
		Store:          store,
		Actions:        actions,
		NetworkManager: networkManager,
		MessageQueue:   messageQueue,
		Summarizer:     summarizer,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}
	g.Start()

	ebiten.SetWindowSize(game.DefaultScreenWidth, game.DefaultScreenHeight)
	ebiten.SetWindowTitle("Roster")

	if err := ebiten.RunGame(g); err != nil {
		panic(fmt.Sprintf("Failed to run game: %v", err))
	}

	if err := networkManager.Stop(); err != nil {
		log.Error("Failed to stop network manager: %v", err)
	}
}
