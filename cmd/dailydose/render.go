package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dailydose/internal/nutrition"
	"dailydose/internal/types"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	nudgeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("170")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	slotStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	feedTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true)
)

func renderBanner(msg string) string {
	return bannerStyle.Render(msg)
}

func renderNudge() string {
	return nudgeStyle.Render(
		"Save your pet's nutrition profile - create a free account:\n" +
			"  dailydose account register --fullname \"...\" --email you@example.com --password \"...\"")
}

// renderDashboard prints every pet slot, filled or not, then the feed column.
func (a *app) renderDashboard(w io.Writer) error {
	list := a.pets.List()
	for i := 0; i < a.cfg.Limits.MaxPets; i++ {
		if i < len(list) {
			fmt.Fprintln(w, renderPetCard(list[i]))
			continue
		}
		fmt.Fprintln(w, slotStyle.Render(fmt.Sprintf("Pet %d - empty slot (dailydose pet add)", i+1)))
	}

	items, err := a.feed.Items()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, renderFeed(items))
	return nil
}

func renderPetCard(pet types.Pet) string {
	var b strings.Builder

	b.WriteString(cardTitleStyle.Render(fmt.Sprintf("%s  (%s, %s)", pet.Name, pet.Breed, pet.Species)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%g lbs, %g yrs, %s, %s activity", pet.Weight, pet.Age, pet.Sex, pet.ActivityLevel)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Conditions: " + strings.Join(pet.MedicalConditions, ", ")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Food: %s  Brands: %s", pet.FoodType, strings.Join(pet.FoodBrands, ", "))))
	b.WriteString("\n")

	switch {
	case pet.Loading:
		b.WriteString("Plan: computing...")
	case pet.Err != "":
		b.WriteString(errStyle.Render("Plan failed: " + pet.Err))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("Retry with: dailydose pet refresh %s", pet.ID)))
	case pet.Result != nil:
		b.WriteString(renderResult(pet.Result, pet.Species))
	default:
		b.WriteString(dimStyle.Render("No plan yet."))
	}

	return cardStyle.Render(b.String())
}

func renderResult(r *types.NutritionResult, species types.Species) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily target: %.0f kcal\n", r.DailyCalories)
	fmt.Fprintf(&b, "Wet food: %s\n", r.WetFoodAmount)
	fmt.Fprintf(&b, "Dry food: %s\n", r.DryFoodAmount)
	b.WriteString("\n" + r.Summary + "\n")
	if r.Advice != "" {
		b.WriteString("\nAdvice: " + r.Advice + "\n")
	}

	writeRecs := func(label string, recs []types.ProductRecommendation) {
		if len(recs) == 0 {
			return
		}
		b.WriteString("\n" + label + ":\n")
		for _, rec := range recs {
			fmt.Fprintf(&b, "  - %s\n      %s\n", rec.Name, dimStyle.Render(rec.Reason))
			fmt.Fprintf(&b, "      %s\n", dimStyle.Render(nutrition.ShopSearchURL(rec, species)))
		}
	}
	writeRecs("Wet food picks", r.Recommendations.Wet)
	writeRecs("Dry food picks", r.Recommendations.Dry)

	return strings.TrimRight(b.String(), "\n")
}

func renderFeed(items []types.AdminItem) string {
	var b strings.Builder
	b.WriteString(cardTitleStyle.Render("Admin / News"))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("The feed is empty."))
		return cardStyle.Render(b.String())
	}

	for i, item := range items {
		fmt.Fprintf(&b, "%2d. %s %s", i, feedTagStyle.Render("["+string(item.Type)+"]"), item.Title)
		if item.Date != "" {
			b.WriteString(dimStyle.Render("  " + item.Date))
		}
		b.WriteString("\n")
		if item.Content != "" {
			b.WriteString("    " + item.Content + "\n")
		}
		if item.LinkURL != "" && item.LinkURL != types.PlaceholderLink {
			b.WriteString(dimStyle.Render("    "+item.LinkURL) + "\n")
		}
		b.WriteString(dimStyle.Render("    id: "+item.ID) + "\n")
	}

	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderPaymentConfig(cfg types.PaymentConfig) string {
	rows := []struct{ label, url string }{
		{"Text ad, monthly", cfg.TextMonthly},
		{"Text ad, yearly", cfg.TextYearly},
		{"Image ad, monthly", cfg.ImageMonthly},
		{"Image ad, yearly", cfg.ImageYearly},
		{"Both, monthly", cfg.BothMonthly},
		{"Both, yearly", cfg.BothYearly},
	}
	var b strings.Builder
	b.WriteString(cardTitleStyle.Render("Advertising payment links"))
	b.WriteString("\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-18s %s\n", r.label, r.url)
	}
	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}
