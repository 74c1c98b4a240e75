package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dailydose/internal/media"
	"dailydose/internal/types"
)

var (
	petName       string
	petSpecies    string
	petBreed      string
	petWeight     float64
	petAge        float64
	petSex        string
	petActivity   string
	petConditions []string
	petFoodType   string
	petBrands     []string
	petImage      string
	skipConfirm   bool
)

var petCmd = &cobra.Command{
	Use:   "pet",
	Short: "Manage pet profiles and their feeding plans",
}

var petListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the pet slots",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()
		return app.renderDashboard(cmd.OutOrStdout())
	},
}

var petShowCmd = &cobra.Command{
	Use:   "show [pet-id-or-name]",
	Short: "Show a pet's profile and feeding plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		pet, err := app.findPet(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderPetCard(pet))
		return nil
	},
}

var petAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a pet and compute its plan",
	Long: `Registers a pet profile and requests a feeding plan.

The dashboard holds at most four pets. Multi-select fields take repeated
flags or comma-separated values; left empty they default to "None"
(conditions) and "Generic / No Preference" (brands).

Example:
  dailydose pet add --name Biscuit --species Dog --breed Beagle \
    --weight 24 --age 3 --sex Male --activity Moderate \
    --food Both --conditions "Sensitive Stomach" --brands "Purina Pro Plan"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		profile, err := profileFromFlags()
		if err != nil {
			return err
		}

		pet, err := app.pets.Create(cmd.Context(), profile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s). Computing plan...\n", pet.Name, pet.ID)

		app.pets.Wait()
		if done, ok := app.pets.Get(pet.ID); ok {
			fmt.Fprintln(cmd.OutOrStdout(), renderPetCard(done))
		}
		return nil
	},
}

var petEditCmd = &cobra.Command{
	Use:   "edit [pet-id-or-name]",
	Short: "Edit a pet profile",
	Long: `Applies a new profile to an existing pet.

All profile flags must be supplied; the submitted profile replaces the
stored one. A submission identical to the stored profile (set-valued fields
compared regardless of order) changes nothing and does not recompute.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		pet, err := app.findPet(args[0])
		if err != nil {
			return err
		}
		profile, err := profileFromFlags()
		if err != nil {
			return err
		}

		updated, changed, err := app.pets.Edit(cmd.Context(), pet.ID, profile)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintln(cmd.OutOrStdout(), "No changes; plan kept as is.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s. Recomputing plan...\n", updated.Name)

		app.pets.Wait()
		if done, ok := app.pets.Get(pet.ID); ok {
			fmt.Fprintln(cmd.OutOrStdout(), renderPetCard(done))
		}
		return nil
	},
}

var petRefreshCmd = &cobra.Command{
	Use:   "refresh [pet-id-or-name]",
	Short: "Recompute a pet's plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		pet, err := app.findPet(args[0])
		if err != nil {
			return err
		}
		if _, err := app.pets.Refresh(cmd.Context(), pet.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recomputing plan for %s...\n", pet.Name)

		app.pets.Wait()
		if done, ok := app.pets.Get(pet.ID); ok {
			fmt.Fprintln(cmd.OutOrStdout(), renderPetCard(done))
		}
		return nil
	},
}

var petRemoveCmd = &cobra.Command{
	Use:   "remove [pet-id-or-name]",
	Short: "Remove a pet from the dashboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		pet, err := app.findPet(args[0])
		if err != nil {
			return err
		}

		if !skipConfirm {
			fmt.Fprintf(cmd.OutOrStdout(), "Are you sure you want to remove %s? [y/N] ", pet.Name)
			reader := bufio.NewReader(cmd.InOrStdin())
			line, _ := reader.ReadString('\n')
			answer := strings.ToLower(strings.TrimSpace(line))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
				return nil
			}
		}

		if err := app.pets.Remove(pet.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", pet.Name)
		return nil
	},
}

// findPet resolves an argument as a pet id first, then as a unique name.
func (a *app) findPet(key string) (types.Pet, error) {
	if pet, ok := a.pets.Get(key); ok {
		return pet, nil
	}
	var match *types.Pet
	for _, p := range a.pets.List() {
		if strings.EqualFold(p.Name, key) {
			if match != nil {
				return types.Pet{}, fmt.Errorf("multiple pets named %q; use the id", key)
			}
			pp := p
			match = &pp
		}
	}
	if match == nil {
		return types.Pet{}, fmt.Errorf("no pet matching %q", key)
	}
	return *match, nil
}

// profileFromFlags assembles a profile from the pet flags, ingesting the
// image file if one was given. Validation proper happens in the controller.
func profileFromFlags() (types.PetProfile, error) {
	profile := types.PetProfile{
		Name:              petName,
		Species:           types.Species(petSpecies),
		Breed:             petBreed,
		Weight:            petWeight,
		Age:               petAge,
		Sex:               types.Sex(petSex),
		ActivityLevel:     types.ActivityLevel(petActivity),
		MedicalConditions: splitMulti(petConditions),
		FoodType:          types.FoodType(petFoodType),
		FoodBrands:        splitMulti(petBrands),
	}
	if petImage != "" {
		uri, err := media.EncodeFile(petImage)
		if err != nil {
			return types.PetProfile{}, err
		}
		profile.ImageURL = uri
	}
	return profile, nil
}

// splitMulti flattens repeated flags and comma-separated values into one
// list, dropping empties.
func splitMulti(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&petName, "name", "", "pet name")
	cmd.Flags().StringVar(&petSpecies, "species", "Dog", "Dog or Cat")
	cmd.Flags().StringVar(&petBreed, "breed", "", "breed (defaults to Unknown Mix)")
	cmd.Flags().Float64Var(&petWeight, "weight", 0, "weight in pounds")
	cmd.Flags().Float64Var(&petAge, "age", 0, "age in years")
	cmd.Flags().StringVar(&petSex, "sex", "Male", "Male or Female")
	cmd.Flags().StringVar(&petActivity, "activity", "Moderate", "Low, Moderate, High, or Working/Athlete")
	cmd.Flags().StringSliceVar(&petConditions, "conditions", nil, "medical conditions")
	cmd.Flags().StringVar(&petFoodType, "food", "Dry", "Wet, Dry, or Both")
	cmd.Flags().StringSliceVar(&petBrands, "brands", nil, "preferred food brands")
	cmd.Flags().StringVar(&petImage, "image", "", "path to a photo to store with the profile")
}

func init() {
	addProfileFlags(petAddCmd)
	addProfileFlags(petEditCmd)
	petRemoveCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "skip the confirmation prompt")

	petCmd.AddCommand(petListCmd)
	petCmd.AddCommand(petShowCmd)
	petCmd.AddCommand(petAddCmd)
	petCmd.AddCommand(petEditCmd)
	petCmd.AddCommand(petRefreshCmd)
	petCmd.AddCommand(petRemoveCmd)
}
