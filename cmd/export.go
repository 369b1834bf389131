package cmd

import (
	"fmt"
	"os"
	"time"

	"pawtally/internal/export"

	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as JSON or the expense log as CSV",
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <backup.json>",
	Short: "Restore collections from a JSON backup",
	Long:  "Restore collections from a JSON backup. Replaces the current pets, expenses, budgets, and recurring expenses.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "json", "Output format: json or csv")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file (default: pawtally-<date>.<format>)")

	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	tr, closeStore, _, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	if flagExportFormat != "json" && flagExportFormat != "csv" {
		return fmt.Errorf("unknown format %q (want json or csv)", flagExportFormat)
	}

	out := flagExportOut
	if out == "" {
		out = fmt.Sprintf("pawtally-%s.%s", time.Now().Format("2006-01-02"), flagExportFormat)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()

	switch flagExportFormat {
	case "csv":
		err = export.WriteCSV(f, tr.Pets(), tr.Expenses())
	default:
		err = export.WriteJSON(f, export.Backup{
			Pets:       tr.Pets(),
			Expenses:   tr.Expenses(),
			Budgets:    tr.Budgets(),
			Recurring:  tr.Recurring(),
			ExportedAt: time.Now(),
		})
	}
	if err != nil {
		return err
	}

	progressf("  Wrote %s\n", out)
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	tr, closeStore, _, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening backup: %w", err)
	}
	defer f.Close()

	b, err := export.ReadBackup(f)
	if err != nil {
		return err
	}

	if err := tr.ReplaceAll(b.Pets, b.Expenses, b.Budgets, b.Recurring); err != nil {
		return err
	}

	fmt.Printf("\n  Imported %d pets, %d expenses, %d budgets, %d recurring.\n",
		len(b.Pets), len(b.Expenses), len(b.Budgets), len(b.Recurring))
	return nil
}
