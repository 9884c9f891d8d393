package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"gujnews/internal/app"
	"gujnews/internal/config"
	"gujnews/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/gujnews/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if args := flag.Args(); len(args) > 0 {
		cfg.Corpus.Dir = args[0]
	}

	// The TUI owns the terminal, so internal components stay quiet.
	svc, overview, err := app.Assemble(cfg, zap.NewNop())
	if err != nil {
		log.Fatalf("%v", err)
	}

	m := tui.New(svc, overview)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
