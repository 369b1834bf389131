package cmd

import (
	"errors"
	"fmt"

	"pawtally/internal/cli"
	"pawtally/internal/model"
	"pawtally/internal/pipeline"
	"pawtally/internal/store"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagPetType  string
	flagPetPhoto string
	flagPetName  string
)

var petsCmd = &cobra.Command{
	Use:   "pets",
	Short: "List and manage pets",
	RunE:  runPetsList,
}

var petsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a pet",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPetsAdd,
}

var petsEditCmd = &cobra.Command{
	Use:   "edit <name|id>",
	Short: "Rename or retype a pet",
	Args:  cobra.ExactArgs(1),
	RunE:  runPetsEdit,
}

var petsRmCmd = &cobra.Command{
	Use:   "rm <name|id>",
	Short: "Remove a pet (expense history is kept)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPetsRm,
}

func init() {
	petsAddCmd.Flags().StringVarP(&flagPetType, "type", "t", "", "Pet type (dog, cat, bird, fish, rabbit, other)")
	petsAddCmd.Flags().StringVar(&flagPetPhoto, "photo", "", "Photo path or URL")
	petsEditCmd.Flags().StringVar(&flagPetName, "name", "", "New name")
	petsEditCmd.Flags().StringVarP(&flagPetType, "type", "t", "", "New type")

	petsCmd.AddCommand(petsAddCmd, petsEditCmd, petsRmCmd)
	rootCmd.AddCommand(petsCmd)
}

func petTypeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(model.PetTypes))
	for _, pt := range model.PetTypes {
		opts = append(opts, huh.NewOption(pt.Label(), string(pt)))
	}
	return opts
}

func runPetsList(_ *cobra.Command, _ []string) error {
	tr, closeStore, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	pets := tr.Pets()
	if len(pets) == 0 {
		fmt.Println("\n  No pets yet. Add one with `pawtally pets add`.")
		return nil
	}

	cur := currencyFor(cfg)
	totals := pipeline.AggregatePets(tr.Expenses(), pets)
	spent := make(map[string]model.PetTotal, len(totals))
	for _, pt := range totals {
		spent[pt.PetID] = pt
	}

	rows := make([][]string, 0, len(pets))
	for _, p := range pets {
		pt := spent[p.ID]
		rows = append(rows, []string{
			cli.Truncate(p.Name, 18),
			p.Type.Label(),
			cli.FormatDay(p.DateAdded),
			cli.FormatNumber(int64(pt.Expenses)),
			cur.Format(pt.Total),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "Type", "Added", "Expenses", "Total Spent"},
		Rows:    rows,
	}))
	return nil
}

func runPetsAdd(_ *cobra.Command, args []string) error {
	tr, closeStore, _, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	typ := flagPetType

	if name == "" || typ == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&name).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Type").
				Options(petTypeOptions()...).
				Value(&typ),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	p, err := tr.AddPet(name, model.ParsePetType(typ), flagPetPhoto)
	if err != nil {
		return err
	}

	fmt.Printf("\n  Added %s (%s). +50 XP!\n", p.Name, p.Type.Label())
	return nil
}

func runPetsEdit(_ *cobra.Command, args []string) error {
	tr, closeStore, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	id, err := mustPet(tr, cfg, args[0])
	if err != nil {
		return err
	}

	var upd store.PetUpdate
	if flagPetName != "" {
		upd.Name = &flagPetName
	}
	if flagPetType != "" {
		t := model.ParsePetType(flagPetType)
		upd.Type = &t
	}
	if upd.Name == nil && upd.Type == nil {
		return errors.New("nothing to change: pass --name or --type")
	}

	if err := tr.UpdatePet(id, upd); err != nil {
		return err
	}

	fmt.Printf("\n  Updated %s.\n", tr.PetName(id))
	return nil
}

func runPetsRm(_ *cobra.Command, args []string) error {
	tr, closeStore, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	id, err := mustPet(tr, cfg, args[0])
	if err != nil {
		return err
	}
	name := tr.PetName(id)

	if err := tr.DeletePet(id); err != nil {
		return err
	}

	fmt.Printf("\n  Removed %s. Logged expenses are kept.\n", name)
	return nil
}
