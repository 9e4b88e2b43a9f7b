package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orbitnav/orbitnav/internal/analytics"
	"github.com/orbitnav/orbitnav/internal/config"
	"github.com/orbitnav/orbitnav/internal/database"
	"github.com/orbitnav/orbitnav/internal/tui"
	"github.com/orbitnav/orbitnav/nav/sched"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// The alternate screen owns stdout; keep coordinator logs out of it.
	logger := log.New(io.Discard, "", 0)
	if path := os.Getenv("ORBITNAV_LOG"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			defer f.Close()
			logger = log.New(f, "orbitnav ", log.LstdFlags)
		}
	}

	loop := sched.NewLoop()
	defer loop.Close()

	app := tui.New(cfg, loop, logger)
	defer app.Coordinator().Destroy()

	recorder := analytics.NewRecorder(db, logger)
	detach := recorder.Attach(app.Coordinator())
	defer detach()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
