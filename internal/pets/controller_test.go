package pets

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"dailydose/internal/store"
	"dailydose/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakePlanner counts calls and lets tests gate completion order.
type fakePlanner struct {
	mu      sync.Mutex
	calls   int64
	result  *types.NutritionResult
	err     error
	release chan struct{} // when set, ComputePlan blocks until closed
}

func (f *fakePlanner) ComputePlan(ctx context.Context, profile types.PetProfile) (*types.NutritionResult, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		r := *f.result
		return &r, nil
	}
	return &types.NutritionResult{
		DailyCalories: 600,
		WetFoodAmount: "0",
		DryFoodAmount: "1 cup",
		Summary:       "plan for " + profile.Name,
	}, nil
}

func (f *fakePlanner) callCount() int64 {
	return atomic.LoadInt64(&f.calls)
}

func testProfile(name string) types.PetProfile {
	return types.PetProfile{
		Name:              name,
		Species:           types.SpeciesDog,
		Breed:             "Beagle",
		Weight:            24,
		Age:               3,
		Sex:               types.SexMale,
		ActivityLevel:     types.ActivityModerate,
		MedicalConditions: []string{"None"},
		FoodType:          types.FoodDry,
		FoodBrands:        []string{"Generic / No Preference"},
	}
}

func newTestController(t *testing.T, planner Planner) (*Controller, *store.Store) {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	c, err := NewController(st, planner, nil, Options{MaxPets: 4})
	require.NoError(t, err)
	return c, st
}

func TestCreateComputesPlan(t *testing.T) {
	planner := &fakePlanner{}
	c, st := newTestController(t, planner)

	pet, err := c.Create(context.Background(), testProfile("Biscuit"))
	require.NoError(t, err)
	assert.NotEmpty(t, pet.ID)
	assert.True(t, pet.Loading)

	c.Wait()

	done, ok := c.Get(pet.ID)
	require.True(t, ok)
	assert.False(t, done.Loading)
	assert.Empty(t, done.Err)
	require.NotNil(t, done.Result)
	assert.Equal(t, "plan for Biscuit", done.Result.Summary)

	// Persisted too.
	saved, err := st.Pets()
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.NotNil(t, saved[0].Result)
}

func TestCreateRejectsFifthPet(t *testing.T) {
	planner := &fakePlanner{}
	c, _ := newTestController(t, planner)

	for i := 0; i < 4; i++ {
		_, err := c.Create(context.Background(), testProfile("Pet"+string(rune('A'+i))))
		require.NoError(t, err)
	}
	c.Wait()

	_, err := c.Create(context.Background(), testProfile("One Too Many"))
	require.ErrorIs(t, err, ErrDashboardFull)
	assert.Len(t, c.List(), 4, "list unchanged after rejected create")
	assert.EqualValues(t, 4, planner.callCount())
}

func TestCreateValidatesProfile(t *testing.T) {
	planner := &fakePlanner{}
	c, _ := newTestController(t, planner)

	bad := testProfile("Ghost")
	bad.Weight = 0
	_, err := c.Create(context.Background(), bad)
	require.Error(t, err)

	var vErr *types.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Empty(t, c.List())
	assert.EqualValues(t, 0, planner.callCount())
}

func TestEditIdenticalResubmissionIsNoop(t *testing.T) {
	planner := &fakePlanner{}
	c, _ := newTestController(t, planner)

	pet, err := c.Create(context.Background(), testProfile("Biscuit"))
	require.NoError(t, err)
	c.Wait()
	require.EqualValues(t, 1, planner.callCount())

	before, _ := c.Get(pet.ID)

	_, changed, err := c.Edit(context.Background(), pet.ID, testProfile("Biscuit"))
	require.NoError(t, err)
	assert.False(t, changed)

	after, _ := c.Get(pet.ID)
	assert.Equal(t, before, after, "no-op edit must not touch state")
	assert.EqualValues(t, 1, planner.callCount(), "no-op edit must not recompute")
}

func TestEditReorderedSetsAreNoop(t *testing.T) {
	planner := &fakePlanner{}
	c, _ := newTestController(t, planner)

	profile := testProfile("Biscuit")
	profile.MedicalConditions = []string{"A", "B"}
	pet, err := c.Create(context.Background(), profile)
	require.NoError(t, err)
	c.Wait()

	reordered := testProfile("Biscuit")
	reordered.MedicalConditions = []string{"B", "A"}
	_, changed, err := c.Edit(context.Background(), pet.ID, reordered)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.EqualValues(t, 1, planner.callCount())
}

func TestEditRealChangeRecomputes(t *testing.T) {
	planner := &fakePlanner{}
	c, _ := newTestController(t, planner)

	pet, err := c.Create(context.Background(), testProfile("Biscuit"))
	require.NoError(t, err)
	c.Wait()

	heavier := testProfile("Biscuit")
	heavier.Weight = 30
	updated, changed, err := c.Edit(context.Background(), pet.ID, heavier)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, pet.ID, updated.ID, "edit reuses the id")
	assert.True(t, updated.Loading)
	assert.Nil(t, updated.Result, "stale result cleared immediately")

	c.Wait()
	done, _ := c.Get(pet.ID)
	assert.EqualValues(t, 2, planner.callCount())
	assert.Equal(t, 30.0, done.Weight)
	require.NotNil(t, done.Result)
}

func TestRefreshAfterFailure(t *testing.T) {
	planner := &fakePlanner{err: errors.New("model unavailable")}
	c, _ := newTestController(t, planner)

	pet, err := c.Create(context.Background(), testProfile("Biscuit"))
	require.NoError(t, err)
	c.Wait()

	failed, _ := c.Get(pet.ID)
	assert.False(t, failed.Loading)
	assert.Contains(t, failed.Err, "model unavailable")
	assert.Nil(t, failed.Result)

	planner.mu.Lock()
	planner.err = nil
	planner.mu.Unlock()

	_, err = c.Refresh(context.Background(), pet.ID)
	require.NoError(t, err)
	c.Wait()

	recovered, _ := c.Get(pet.ID)
	assert.Empty(t, recovered.Err)
	require.NotNil(t, recovered.Result)
}

func TestRemoveDiscardsLateCompletion(t *testing.T) {
	planner := &fakePlanner{release: make(chan struct{})}
	c, st := newTestController(t, planner)

	pet, err := c.Create(context.Background(), testProfile("Biscuit"))
	require.NoError(t, err)

	// Delete while the computation is still in flight.
	require.NoError(t, c.Remove(pet.ID))
	assert.Empty(t, c.List())

	close(planner.release)
	c.Wait()

	assert.Empty(t, c.List(), "stale completion must not resurrect the pet")
	saved, err := st.Pets()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestConcurrentCompletionsLandOnOwnSlots(t *testing.T) {
	planner := &fakePlanner{release: make(chan struct{})}
	c, _ := newTestController(t, planner)

	a, err := c.Create(context.Background(), testProfile("Alpha"))
	require.NoError(t, err)
	b, err := c.Create(context.Background(), testProfile("Bravo"))
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 2)
	assert.True(t, list[0].Loading)
	assert.True(t, list[1].Loading)

	close(planner.release)
	c.Wait()

	gotA, _ := c.Get(a.ID)
	gotB, _ := c.Get(b.ID)
	require.NotNil(t, gotA.Result)
	require.NotNil(t, gotB.Result)
	assert.Equal(t, "plan for Alpha", gotA.Result.Summary)
	assert.Equal(t, "plan for Bravo", gotB.Result.Summary)
}

func TestRemoveUnknownPet(t *testing.T) {
	c, _ := newTestController(t, &fakePlanner{})
	assert.ErrorIs(t, c.Remove("nope"), ErrNotFound)
}

func TestReviewModeBlocksComputation(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	defer st.Close()

	// Seed a saved pet so reads have something to show.
	require.NoError(t, st.SavePets([]types.Pet{{ID: "p1", PetProfile: testProfile("Saved")}}))

	c, err := NewController(st, nil, nil, Options{})
	require.NoError(t, err)

	assert.Len(t, c.List(), 1, "browsing works without a planner")

	_, err = c.Create(context.Background(), testProfile("New"))
	assert.ErrorIs(t, err, ErrReviewMode)
	_, err = c.Refresh(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrReviewMode)
}

func TestInterruptedLoadingSettledOnStartup(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.SavePets([]types.Pet{{ID: "p1", PetProfile: testProfile("Stuck"), Loading: true}}))

	c, err := NewController(st, &fakePlanner{}, nil, Options{})
	require.NoError(t, err)

	pet, ok := c.Get("p1")
	require.True(t, ok)
	assert.False(t, pet.Loading)
	assert.Contains(t, pet.Err, "interrupted")
}

func TestSignupNudge(t *testing.T) {
	t.Run("fires once after delay when anonymous", func(t *testing.T) {
		var fired int64
		n := NewSignupNudge(time.Millisecond,
			func() bool { return false },
			func() { atomic.AddInt64(&fired, 1) })

		n.PlanReady()
		n.PlanReady() // second completion while pending: no second prompt
		n.Wait()

		assert.EqualValues(t, 1, atomic.LoadInt64(&fired))
		assert.True(t, n.Pending())

		n.PlanReady() // still latched after firing
		n.Wait()
		assert.EqualValues(t, 1, atomic.LoadInt64(&fired))
	})

	t.Run("suppressed when a session exists", func(t *testing.T) {
		var fired int64
		n := NewSignupNudge(time.Millisecond,
			func() bool { return true },
			func() { atomic.AddInt64(&fired, 1) })

		n.PlanReady()
		n.Wait()
		assert.EqualValues(t, 0, atomic.LoadInt64(&fired))
		assert.False(t, n.Pending())
	})

	t.Run("triggered by a successful completion", func(t *testing.T) {
		planner := &fakePlanner{}
		c, _ := newTestController(t, planner)

		var fired int64
		c.SetNudge(NewSignupNudge(time.Millisecond,
			func() bool { return false },
			func() { atomic.AddInt64(&fired, 1) }))

		_, err := c.Create(context.Background(), testProfile("Biscuit"))
		require.NoError(t, err)
		c.Wait()

		assert.EqualValues(t, 1, atomic.LoadInt64(&fired))
	})

	t.Run("not triggered by a failure", func(t *testing.T) {
		planner := &fakePlanner{err: errors.New("boom")}
		c, _ := newTestController(t, planner)

		var fired int64
		c.SetNudge(NewSignupNudge(time.Millisecond,
			func() bool { return false },
			func() { atomic.AddInt64(&fired, 1) }))

		_, err := c.Create(context.Background(), testProfile("Biscuit"))
		require.NoError(t, err)
		c.Wait()

		assert.EqualValues(t, 0, atomic.LoadInt64(&fired))
	})
}
