package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/schoolquest/tui/internal/app"
	"github.com/schoolquest/tui/internal/model"
	"github.com/schoolquest/tui/internal/store"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schoolquest: %v\n", err)
		os.Exit(1)
	}

	dataDir := filepath.Dir(*configPath)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "schoolquest: creating %s: %v\n", dataDir, err)
		os.Exit(1)
	}

	// The terminal belongs to the TUI, so logs go to a file.
	logFile, err := os.OpenFile(
		filepath.Join(dataDir, "schoolquest.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schoolquest: opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := log.New(logFile, "", log.LstdFlags)
	log.SetOutput(logFile)

	cache, err := store.NewCacheStore(filepath.Join(dataDir, "cache.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "schoolquest: opening cache: %v\n", err)
		os.Exit(1)
	}
	defer cache.Close()

	program := tea.NewProgram(
		app.New(cfg, *configPath, cache, logger),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "schoolquest: %v\n", err)
		os.Exit(1)
	}
}
