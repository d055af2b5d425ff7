package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/glossaryweb/glossary/internal/ai"
	"github.com/glossaryweb/glossary/internal/client"
	"github.com/glossaryweb/glossary/internal/config"
	"github.com/glossaryweb/glossary/internal/logging"
	"github.com/glossaryweb/glossary/internal/tui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file or nowhere
	log, closer, err := logging.NewFile(cfg.Log.File, cfg.Log.Environment, cfg.Log.Level)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	var suggester ai.Suggester
	if cfg.Client.AnthropicAPIKey != "" {
		claude, err := ai.NewClaudeClient(cfg.Client.AnthropicAPIKey)
		if err != nil {
			fmt.Printf("Error initializing AI client: %v\n", err)
			os.Exit(1)
		}
		suggester = claude
	}

	api := client.New(cfg.Client.APIURL, cfg.Client.Timeout)
	log.WithField("api", cfg.Client.APIURL).Info("starting glossary terminal client")

	p := tea.NewProgram(tui.New(api, suggester, log))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
