// Package types provides shared domain type definitions used across dailydose packages.
// Types in this package are foundational data structures with no complex dependencies;
// controllers and the store all speak in these shapes.
package types

import (
	"fmt"
	"sort"
)

// =============================================================================
// PET PROFILE ENUMS
// =============================================================================

// Species of a registered pet.
type Species string

const (
	SpeciesDog Species = "Dog"
	SpeciesCat Species = "Cat"
)

// Sex of a registered pet.
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// FoodType is the owner's feeding preference.
type FoodType string

const (
	FoodWet  FoodType = "Wet"
	FoodDry  FoodType = "Dry"
	FoodBoth FoodType = "Both"
)

// ActivityLevel describes how active the pet is day to day.
type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "Low"
	ActivityModerate ActivityLevel = "Moderate"
	ActivityHigh     ActivityLevel = "High"
	ActivityWorking  ActivityLevel = "Working/Athlete"
)

// Fallback values applied when the owner leaves a multi-select empty.
// The condition and brand sets are non-empty by construction.
const (
	NoConditions = "None"
	GenericBrand = "Generic / No Preference"
	UnknownBreed = "Unknown Mix"
)

// ValidationError reports a rejected profile field. It blocks submission and
// is never persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// =============================================================================
// PET PROFILE
// =============================================================================

// PetProfile holds the owner-editable attributes of a pet, excluding the
// derived nutrition result. Weight is in pounds, age in years.
type PetProfile struct {
	Name              string        `json:"name"`
	Species           Species       `json:"species"`
	Breed             string        `json:"breed"`
	Weight            float64       `json:"weight"`
	Age               float64       `json:"age"`
	Sex               Sex           `json:"sex"`
	ActivityLevel     ActivityLevel `json:"activityLevel"`
	MedicalConditions []string      `json:"medicalConditions"`
	FoodType          FoodType      `json:"foodType"`
	FoodBrands        []string      `json:"foodBrands"`
	ImageURL          string        `json:"imageUrl,omitempty"`
}

// Validate checks the profile before it is accepted for persistence or
// submitted for a plan computation.
func (p *PetProfile) Validate() error {
	if p.Weight <= 0 {
		return &ValidationError{Field: "weight", Reason: "must be greater than zero"}
	}
	if p.Age < 0 {
		return &ValidationError{Field: "age", Reason: "must not be negative"}
	}
	switch p.Species {
	case SpeciesDog, SpeciesCat:
	default:
		return &ValidationError{Field: "species", Reason: fmt.Sprintf("unknown species %q", p.Species)}
	}
	switch p.Sex {
	case SexMale, SexFemale:
	default:
		return &ValidationError{Field: "sex", Reason: fmt.Sprintf("unknown sex %q", p.Sex)}
	}
	switch p.FoodType {
	case FoodWet, FoodDry, FoodBoth:
	default:
		return &ValidationError{Field: "foodType", Reason: fmt.Sprintf("unknown food type %q", p.FoodType)}
	}
	switch p.ActivityLevel {
	case ActivityLow, ActivityModerate, ActivityHigh, ActivityWorking:
	default:
		return &ValidationError{Field: "activityLevel", Reason: fmt.Sprintf("unknown activity level %q", p.ActivityLevel)}
	}
	return nil
}

// Normalize fills the sentinel defaults for fields the owner left blank.
// Empty sets collapse to their single fallback entry so downstream prompts
// never see an empty list.
func (p *PetProfile) Normalize() {
	if p.Breed == "" {
		p.Breed = UnknownBreed
	}
	if len(p.MedicalConditions) == 0 {
		p.MedicalConditions = []string{NoConditions}
	}
	if len(p.FoodBrands) == 0 {
		p.FoodBrands = []string{GenericBrand}
	}
}

// Equal reports whether two profiles describe the same pet configuration.
// MedicalConditions and FoodBrands are compared as sets: a reordering of the
// same entries is not a change. Used by the edit flow to decide whether a
// resubmission warrants recomputing the plan.
func (p *PetProfile) Equal(other *PetProfile) bool {
	if p.Name != other.Name ||
		p.Species != other.Species ||
		p.Breed != other.Breed ||
		p.Weight != other.Weight ||
		p.Age != other.Age ||
		p.Sex != other.Sex ||
		p.ActivityLevel != other.ActivityLevel ||
		p.FoodType != other.FoodType ||
		p.ImageURL != other.ImageURL {
		return false
	}
	return sameSet(p.MedicalConditions, other.MedicalConditions) &&
		sameSet(p.FoodBrands, other.FoodBrands)
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// =============================================================================
// PET RECORD
// =============================================================================

// Pet is a registered pet: an immutable id, the owner-editable profile, and
// the asynchronous computation slot. At any moment exactly one of
// {Loading, Err, Result, none} describes the slot.
type Pet struct {
	ID string `json:"id"`
	PetProfile

	Result  *NutritionResult `json:"result,omitempty"`
	Loading bool             `json:"isLoading,omitempty"`
	Err     string           `json:"error,omitempty"`
}

// ProductRecommendation is one suggested product with the model's reasoning.
type ProductRecommendation struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Recommendations groups suggested products by food form.
type Recommendations struct {
	Wet []ProductRecommendation `json:"wet"`
	Dry []ProductRecommendation `json:"dry"`
}

// NutritionResult is the derived feeding plan for one pet profile. It is
// owned by the pet that requested it and replaced wholesale on every
// recomputation, never merged.
type NutritionResult struct {
	DailyCalories   float64         `json:"dailyCalories"`
	WetFoodAmount   string          `json:"wetFoodAmount"`
	DryFoodAmount   string          `json:"dryFoodAmount"`
	Summary         string          `json:"summary"`
	Advice          string          `json:"advice"`
	Recommendations Recommendations `json:"recommendations"`
}
