package cmd

import (
	"fmt"

	"pawtally/internal/config"
	"pawtally/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(configCmd, setupCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.DefaultPet != "" {
		fmt.Printf("    Default pet:    %s\n", cfg.General.DefaultPet)
	} else {
		fmt.Println("    Default pet:    all pets")
	}
	fmt.Printf("    Data directory: %s\n", config.DataDir(cfg))
	fmt.Println()

	fmt.Println("  [Currency]")
	cur := currencyFor(cfg)
	fmt.Printf("    Code:   %s\n", cur.Code)
	fmt.Printf("    Symbol: %s\n", cur.Symbol)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `pawtally setup` to reconfigure.")
	return nil
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	tr, closeStore, _, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	currencyOpts := make([]huh.Option[string], 0, len(config.Currencies))
	for _, c := range config.Currencies {
		currencyOpts = append(currencyOpts,
			huh.NewOption(fmt.Sprintf("%s (%s) %s", c.Code, c.Symbol, c.Name), c.Code))
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.Names()))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	petOpts := []huh.Option[string]{huh.NewOption("All pets", "")}
	for _, p := range tr.Pets() {
		petOpts = append(petOpts, huh.NewOption(p.Name, p.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Display currency").
				Options(currencyOpts...).
				Value(&cfg.Currency.Code),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&cfg.Appearance.Theme),
			huh.NewSelect[string]().
				Title("Default pet").
				Description("Used when --pet is not given.").
				Options(petOpts...).
				Value(&cfg.General.DefaultPet),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `pawtally setup` anytime to reconfigure.")
	return nil
}
