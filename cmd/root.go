// Package cmd implements the pawtally CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"pawtally/internal/config"
	"pawtally/internal/model"
	"pawtally/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagPet     string
	flagDataDir string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "pawtally",
	Short: "Pet expense tracker",
	Long:  "Track pet expenses, budgets, and your pet-parent level from the terminal.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPet, "pet", "p", "", "Filter to one pet (name or id)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default: ~/.local/share/pawtally)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// openTracker is the shared data loading path used by all commands.
// The returned closer shuts the underlying database.
func openTracker() (*store.Tracker, func(), config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, cfg, err
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = config.DataDir(cfg)
	}

	s, err := store.Open(config.DBPath(dataDir))
	if err != nil {
		return nil, nil, cfg, err
	}

	tr, err := store.NewTracker(s)
	if err != nil {
		_ = s.Close()
		return nil, nil, cfg, err
	}

	return tr, func() { _ = s.Close() }, cfg, nil
}

// resolvePet maps a --pet value (name or id) to a pet id. Empty input
// falls back to the configured default pet, then to "" meaning all pets.
func resolvePet(tr *store.Tracker, cfg config.Config, nameOrID string) (string, error) {
	if nameOrID == "" {
		nameOrID = cfg.General.DefaultPet
	}
	if nameOrID == "" || nameOrID == "all" {
		return "", nil
	}

	if _, ok := tr.PetByID(nameOrID); ok {
		return nameOrID, nil
	}

	var matches []model.Pet
	for _, p := range tr.Pets() {
		if strings.EqualFold(p.Name, nameOrID) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no pet named %q", nameOrID)
	case 1:
		return matches[0].ID, nil
	default:
		return "", fmt.Errorf("%d pets named %q, use the id instead", len(matches), nameOrID)
	}
}

// mustPet is resolvePet but requires a concrete pet, not "all".
func mustPet(tr *store.Tracker, cfg config.Config, nameOrID string) (string, error) {
	id, err := resolvePet(tr, cfg, nameOrID)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("a pet is required: pass --pet or set a default with `pawtally config`")
	}
	return id, nil
}

// currencyFor returns the configured display currency.
func currencyFor(cfg config.Config) config.Currency {
	return config.CurrencyByCode(cfg.Currency.Code)
}

func progressf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
