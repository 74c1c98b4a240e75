package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailydose/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "dose.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())
}

func TestEmptySlots(t *testing.T) {
	s := newTestStore(t)

	pets, err := s.Pets()
	require.NoError(t, err)
	assert.Empty(t, pets)

	items, err := s.AdminItems()
	require.NoError(t, err)
	assert.Nil(t, items)

	user, err := s.CurrentUser()
	require.NoError(t, err)
	assert.Nil(t, user)

	accounts, err := s.Accounts()
	require.NoError(t, err)
	assert.Empty(t, accounts)

	legacy, err := s.LegacyCredential()
	require.NoError(t, err)
	assert.Nil(t, legacy)
}

func TestPaymentConfigDefaults(t *testing.T) {
	s := newTestStore(t)

	cfg, err := s.PaymentConfig()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultPaymentConfig(), cfg)

	cfg.TextMonthly = "https://pay.example/text-m"
	require.NoError(t, s.SavePaymentConfig(cfg))

	got, err := s.PaymentConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/text-m", got.TextMonthly)
	assert.Equal(t, types.PlaceholderLink, got.TextYearly)
}

func TestPetsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	pets := []types.Pet{
		{
			ID: "p1",
			PetProfile: types.PetProfile{
				Name: "Biscuit", Species: types.SpeciesDog, Breed: "Beagle",
				Weight: 24, Age: 3, Sex: types.SexMale,
				ActivityLevel:     types.ActivityModerate,
				MedicalConditions: []string{"None"},
				FoodType:          types.FoodDry,
				FoodBrands:        []string{"Generic / No Preference"},
			},
			Result: &types.NutritionResult{
				DailyCalories: 620,
				WetFoodAmount: "0",
				DryFoodAmount: "1.5 cups",
				Summary:       "Maintenance diet.",
				Advice:        "Keep treats under 10%.",
			},
		},
		{ID: "p2", PetProfile: types.PetProfile{Name: "Waffles", Species: types.SpeciesCat, Weight: 9, Age: 2, Sex: types.SexFemale, ActivityLevel: types.ActivityLow, FoodType: types.FoodWet}, Err: "boom"},
	}
	require.NoError(t, s.SavePets(pets))

	got, err := s.Pets()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, pets[0], got[0])
	assert.Equal(t, "boom", got[1].Err)
	assert.Nil(t, got[1].Result)
}

func TestCurrentUserLifecycle(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetCurrentUser(types.User{Name: "Ann", Email: "a@x.com"}))
	user, err := s.CurrentUser()
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "a@x.com", user.Email)

	require.NoError(t, s.ClearCurrentUser())
	user, err = s.CurrentUser()
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAdminItemsPreserveOrder(t *testing.T) {
	s := newTestStore(t)

	items := []types.AdminItem{
		{ID: "a", Type: types.ItemMenu, Title: "Home"},
		{ID: "b", Type: types.ItemNews, Title: "News", Content: "Body"},
		{ID: "c", Type: types.ItemAdText, Title: "Ad", BackgroundColor: "#FEF3C7"},
	}
	require.NoError(t, s.SaveAdminItems(items))

	got, err := s.AdminItems()
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestLegacyCredentialReadOnly(t *testing.T) {
	s := newTestStore(t)

	// Plant a legacy record the way the old single-user build wrote it.
	require.NoError(t, s.Put(SlotLegacyCredential, types.Account{Name: "Old", Email: "old@x.com", Password: "Secret1!"}))

	legacy, err := s.LegacyCredential()
	require.NoError(t, err)
	require.NotNil(t, legacy)
	assert.Equal(t, "old@x.com", legacy.Email)
	assert.Equal(t, "Secret1!", legacy.Password)
}

func TestCorruptSlotSurfacesError(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.putRaw(SlotPets, "{not json"))

	_, err := s.Pets()
	assert.Error(t, err)
}
