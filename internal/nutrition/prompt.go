package nutrition

import (
	"fmt"
	"strings"

	"dailydose/internal/types"
)

// buildPrompt serializes the full pet profile into the veterinary-nutritionist
// prompt. Units pass through as entered: pounds for weight, kcal for the
// calorie target; no conversion happens on this side of the call.
func buildPrompt(p types.PetProfile) string {
	name := p.Name
	if name == "" {
		name = "Unnamed"
	}
	conditions := strings.Join(p.MedicalConditions, ", ")
	if conditions == "" {
		conditions = types.NoConditions
	}
	brands := strings.Join(p.FoodBrands, ", ")
	if brands == "" {
		brands = "Generic/None"
	}

	var b strings.Builder
	b.WriteString("Act as a veterinary nutritionist. Analyze the following pet details and provide daily nutritional recommendations.\n\n")
	b.WriteString("Pet Details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", name)
	fmt.Fprintf(&b, "- Species: %s\n", p.Species)
	fmt.Fprintf(&b, "- Breed: %s\n", p.Breed)
	fmt.Fprintf(&b, "- Age: %g years old\n", p.Age)
	fmt.Fprintf(&b, "- Sex: %s\n", p.Sex)
	fmt.Fprintf(&b, "- Weight: %g lbs\n", p.Weight)
	fmt.Fprintf(&b, "- Activity Level: %s\n", p.ActivityLevel)
	fmt.Fprintf(&b, "- Medical Conditions: %s\n", conditions)
	fmt.Fprintf(&b, "- Food Preference: %s\n", p.FoodType)
	fmt.Fprintf(&b, "- Preferred Brands: %s\n", brands)
	b.WriteString(`
Task:
1. Calculate the daily caloric needs (Resting Energy Requirement * Factor based on activity level and life stage).
2. Recommend the amount of wet and/or dry food based on the 'Food Preference' and 'Preferred Brands'.
   If specific brands are listed, estimate based on their typical caloric density.
   If 'Both' is selected, split calories approx 50/50 or appropriately for the species.
3. Provide a brief summary of why this is the recommendation.
4. Provide specific advice considering the medical conditions (e.g., "Avoid high sodium for heart issues").
5. List top 3 specific Wet Food products and top 3 specific Dry Food products (Brand + specific formula).
   - If the user selected 'Wet' only, prioritize that, but IF 'Dry' would be beneficial (e.g. for dental health), include recommendations for it with a note why.
   - If the user selected 'Dry' only, prioritize that, but IF 'Wet' would be beneficial (e.g. for hydration in cats), include recommendations for it with a note why.
   - If 'Both', provide 3 of each.

Return the data in a strict JSON format matching the schema.
`)
	return b.String()
}
