package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func validProfile() PetProfile {
	return PetProfile{
		Name:              "Biscuit",
		Species:           SpeciesDog,
		Breed:             "Beagle",
		Weight:            24,
		Age:               3,
		Sex:               SexMale,
		ActivityLevel:     ActivityModerate,
		MedicalConditions: []string{"Sensitive Stomach"},
		FoodType:          FoodBoth,
		FoodBrands:        []string{"Purina Pro Plan"},
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PetProfile)
		wantErr bool
	}{
		{"valid", func(p *PetProfile) {}, false},
		{"zero weight", func(p *PetProfile) { p.Weight = 0 }, true},
		{"negative weight", func(p *PetProfile) { p.Weight = -3 }, true},
		{"negative age", func(p *PetProfile) { p.Age = -1 }, true},
		{"zero age ok", func(p *PetProfile) { p.Age = 0 }, false},
		{"bad species", func(p *PetProfile) { p.Species = "Hamster" }, true},
		{"bad sex", func(p *PetProfile) { p.Sex = "?" }, true},
		{"bad food type", func(p *PetProfile) { p.FoodType = "Raw" }, true},
		{"bad activity", func(p *PetProfile) { p.ActivityLevel = "Extreme" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if _, ok := err.(*ValidationError); !ok {
					t.Errorf("Validate() returned %T, want *ValidationError", err)
				}
			}
		})
	}
}

func TestProfileNormalize(t *testing.T) {
	p := PetProfile{Species: SpeciesCat, Sex: SexFemale, FoodType: FoodWet, ActivityLevel: ActivityLow, Weight: 9, Age: 2}
	p.Normalize()

	if p.Breed != UnknownBreed {
		t.Errorf("Breed = %q, want %q", p.Breed, UnknownBreed)
	}
	if diff := cmp.Diff([]string{NoConditions}, p.MedicalConditions); diff != "" {
		t.Errorf("MedicalConditions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{GenericBrand}, p.FoodBrands); diff != "" {
		t.Errorf("FoodBrands mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileNormalizeKeepsEntries(t *testing.T) {
	p := validProfile()
	p.Normalize()
	if diff := cmp.Diff(validProfile().MedicalConditions, p.MedicalConditions); diff != "" {
		t.Errorf("Normalize clobbered conditions (-want +got):\n%s", diff)
	}
}

func TestProfileEqual(t *testing.T) {
	t.Run("identical", func(t *testing.T) {
		a, b := validProfile(), validProfile()
		if !a.Equal(&b) {
			t.Error("identical profiles reported unequal")
		}
	})

	t.Run("reordered sets are equal", func(t *testing.T) {
		a, b := validProfile(), validProfile()
		a.MedicalConditions = []string{"A", "B"}
		b.MedicalConditions = []string{"B", "A"}
		a.FoodBrands = []string{"X", "Y"}
		b.FoodBrands = []string{"Y", "X"}
		if !a.Equal(&b) {
			t.Error("reordered sets reported unequal")
		}
	})

	t.Run("differing set contents", func(t *testing.T) {
		a, b := validProfile(), validProfile()
		b.MedicalConditions = []string{"Sensitive Stomach", "Arthritis"}
		if a.Equal(&b) {
			t.Error("different condition sets reported equal")
		}
	})

	t.Run("scalar fields", func(t *testing.T) {
		fields := []func(*PetProfile){
			func(p *PetProfile) { p.Name = "Waffles" },
			func(p *PetProfile) { p.Species = SpeciesCat },
			func(p *PetProfile) { p.Breed = "Mutt" },
			func(p *PetProfile) { p.Weight = 25 },
			func(p *PetProfile) { p.Age = 4 },
			func(p *PetProfile) { p.Sex = SexFemale },
			func(p *PetProfile) { p.ActivityLevel = ActivityHigh },
			func(p *PetProfile) { p.FoodType = FoodWet },
			func(p *PetProfile) { p.ImageURL = "data:image/png;base64,AAAA" },
		}
		for i, mutate := range fields {
			a, b := validProfile(), validProfile()
			mutate(&b)
			if a.Equal(&b) {
				t.Errorf("mutation %d not detected", i)
			}
		}
	})
}
