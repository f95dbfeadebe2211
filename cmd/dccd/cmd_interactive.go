package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dccd/cmd/dccd/app"
	"dccd/cmd/dccd/ui"
	"dccd/internal/api"
	"dccd/internal/logging"
	"dccd/internal/route"
	"dccd/internal/session"
)

// runInteractive starts the full-screen survey client.
func runInteractive(cmd *cobra.Command, args []string) error {
	ws, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Initialize(ws, cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Close()
	logging.Boot("starting dccd %s against %s", cfg.Version, cfg.API.BaseURL)

	store, err := session.Open(cfg, ws)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	defer store.Close()
	logging.Session("session %s (%s backend)", store.ID(), cfg.Session.Backend)

	client := api.NewClient(cfg.API.BaseURL, cfg.GetAPITimeout(),
		api.WithLogger(logging.Get(logging.CategoryAPI)))

	model := app.New(app.Config{
		Backend:    client,
		Store:      store,
		Scheduler:  route.NewScheduler(cfg.GetHighlightInterval(), nil),
		SliderStep: cfg.GetSliderStep(),
		NodeWidth:  cfg.Diagram.NodeWidth,
		SaveDelay:  ui.DefaultSaveDelay,
	})
	defer model.Shutdown()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
