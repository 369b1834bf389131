package cmd

import (
	"fmt"

	"pawtally/internal/config"
	"pawtally/internal/tui"
	"pawtally/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes.
	// Without this, lipgloss may default to Ascii profile (no colors).
	lipgloss.SetColorProfile(termenv.TrueColor)

	tr, closeStore, _, err := openTracker()
	if err != nil {
		return err
	}
	petID, err := resolvePet(tr, cfg, flagPet)
	closeStore()
	if err != nil {
		return err
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = config.DataDir(cfg)
	}

	app := tui.NewApp(config.DBPath(dataDir), petID, currencyFor(cfg))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
