package app

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"loupe/internal/browse"
	"loupe/internal/doc"
	"loupe/internal/logging"
	"loupe/internal/render"
	"loupe/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Start      string
	Width      int
	Height     int
	ShowFooter bool
	PageMode   doc.PageMode
	Bookmarks  []browse.Bookmark
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	start, err := startBackend(cfg.Start)
	if err != nil {
		return err
	}

	sender, replies := render.Start()
	defer sender.Close()

	watcher, err := browse.NewWatcher()
	if err != nil {
		logging.Error(err)
		watcher = nil
	} else {
		defer watcher.Stop()
	}

	model := ui.NewModel(start, sender, replies, watcher, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		PageMode:   cfg.PageMode,
		Bookmarks:  cfg.Bookmarks,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// startBackend opens the requested path, or the working directory when none
// was given.
func startBackend(path string) (browse.Backend, error) {
	if path == "" {
		return browse.CurrentDir(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return browse.New(path), nil
}
