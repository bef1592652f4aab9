package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yuchengtw/duty-roster-bot/internal/console"
)

func main() {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving home directory: %v\n", err)
		os.Exit(1)
	}

	settingsPath := filepath.Join(home, ".config", "duty-console", "settings.yaml")
	if p := os.Getenv("DUTY_CONSOLE_SETTINGS"); p != "" {
		settingsPath = p
	}

	m, err := console.New(settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting console: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running console: %v\n", err)
		os.Exit(1)
	}
}
