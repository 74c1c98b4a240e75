// Package pets implements the pet lifecycle controller: up to a configured
// number of pet slots, each carrying a profile and an asynchronous plan slot
// that moves Idle -> Loading -> Ready | Failed. The controller owns the pets
// slot in the store; every mutation persists before returning.
package pets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dailydose/internal/store"
	"dailydose/internal/types"
)

// Planner computes a feeding plan for one profile. Satisfied by
// *nutrition.Service; tests substitute fakes.
type Planner interface {
	ComputePlan(ctx context.Context, profile types.PetProfile) (*types.NutritionResult, error)
}

var (
	// ErrDashboardFull rejects a create when every pet slot is occupied.
	ErrDashboardFull = errors.New("dashboard limit reached")

	// ErrNotFound means no pet has the given id.
	ErrNotFound = errors.New("pet not found")

	// ErrReviewMode means no planner is available (missing credential);
	// browsing works but nothing can be computed.
	ErrReviewMode = errors.New("review mode: plan computation unavailable")
)

// Options configures the controller.
type Options struct {
	// MaxPets caps the number of concurrent pets. Zero means the default of 4.
	MaxPets int
}

const defaultMaxPets = 4

// Controller orchestrates create/edit/refresh/delete over the pet slots and
// merges asynchronous plan completions back into state. All state is guarded
// by one mutex; completions for pets that no longer exist are discarded.
type Controller struct {
	mu      sync.Mutex
	pets    []types.Pet
	store   *store.Store
	planner Planner
	log     *zap.Logger
	maxPets int
	nudge   *SignupNudge
	wg      sync.WaitGroup
}

// NewController loads the persisted pets and prepares the controller.
// A nil planner puts the controller in review mode: reads succeed, plan
// computations fail with ErrReviewMode. A pet left marked loading by an
// interrupted run is settled as failed so the slot invariant holds.
func NewController(st *store.Store, planner Planner, log *zap.Logger, opts Options) (*Controller, error) {
	if log == nil {
		log = zap.NewNop()
	}
	maxPets := opts.MaxPets
	if maxPets <= 0 {
		maxPets = defaultMaxPets
	}

	pets, err := st.Pets()
	if err != nil {
		return nil, fmt.Errorf("failed to load pets: %w", err)
	}

	settled := false
	for i := range pets {
		if pets[i].Loading {
			pets[i].Loading = false
			pets[i].Result = nil
			pets[i].Err = "computation interrupted; refresh to retry"
			settled = true
		}
	}
	if settled {
		if err := st.SavePets(pets); err != nil {
			return nil, fmt.Errorf("failed to settle interrupted pets: %w", err)
		}
	}

	return &Controller{
		pets:    pets,
		store:   st,
		planner: planner,
		log:     log,
		maxPets: maxPets,
	}, nil
}

// SetNudge attaches the signup nudge fired after successful completions.
func (c *Controller) SetNudge(n *SignupNudge) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nudge = n
}

// List returns a snapshot of all pets in slot order.
func (c *Controller) List() []types.Pet {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.Pet, len(c.pets))
	copy(out, c.pets)
	return out
}

// Get returns a snapshot of one pet.
func (c *Controller) Get(id string) (types.Pet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(id); i >= 0 {
		return c.pets[i], true
	}
	return types.Pet{}, false
}

// Create registers a new pet and starts its plan computation. The profile is
// validated and normalized first; the capacity cap applies to creates only,
// never to edits of existing pets.
func (c *Controller) Create(ctx context.Context, profile types.PetProfile) (types.Pet, error) {
	if err := profile.Validate(); err != nil {
		return types.Pet{}, err
	}
	profile.Normalize()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.planner == nil {
		return types.Pet{}, ErrReviewMode
	}
	if len(c.pets) >= c.maxPets {
		return types.Pet{}, fmt.Errorf("%w: %d pets already registered", ErrDashboardFull, len(c.pets))
	}

	pet := types.Pet{
		ID:         uuid.NewString(),
		PetProfile: profile,
		Loading:    true,
	}
	c.pets = append(c.pets, pet)
	if err := c.persistLocked(); err != nil {
		c.pets = c.pets[:len(c.pets)-1]
		return types.Pet{}, err
	}

	c.log.Info("pet created", zap.String("id", pet.ID), zap.String("name", pet.Name))
	c.startCompute(ctx, pet.ID, profile)
	return pet, nil
}

// Edit applies a new profile to an existing pet. An edit that changes nothing
// (set-valued fields compared as sets) is a no-op: no state change and no
// recomputation. A real change replaces the profile under the same id, clears
// any stale result or error, and recomputes.
func (c *Controller) Edit(ctx context.Context, id string, profile types.PetProfile) (types.Pet, bool, error) {
	if err := profile.Validate(); err != nil {
		return types.Pet{}, false, err
	}
	profile.Normalize()

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return types.Pet{}, false, ErrNotFound
	}

	if c.pets[i].PetProfile.Equal(&profile) {
		c.log.Debug("edit is a no-op", zap.String("id", id))
		return c.pets[i], false, nil
	}

	if c.planner == nil {
		return types.Pet{}, false, ErrReviewMode
	}

	prev := c.pets[i]
	c.pets[i].PetProfile = profile
	c.pets[i].Result = nil
	c.pets[i].Err = ""
	c.pets[i].Loading = true
	if err := c.persistLocked(); err != nil {
		c.pets[i] = prev
		return types.Pet{}, false, err
	}

	c.log.Info("pet updated", zap.String("id", id), zap.String("name", profile.Name))
	c.startCompute(ctx, id, profile)
	return c.pets[i], true, nil
}

// Refresh recomputes the plan for an existing profile unconditionally,
// clearing a failed state if there was one.
func (c *Controller) Refresh(ctx context.Context, id string) (types.Pet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return types.Pet{}, ErrNotFound
	}
	if c.planner == nil {
		return types.Pet{}, ErrReviewMode
	}

	c.pets[i].Result = nil
	c.pets[i].Err = ""
	c.pets[i].Loading = true
	if err := c.persistLocked(); err != nil {
		return types.Pet{}, err
	}

	c.log.Info("pet refresh", zap.String("id", id))
	c.startCompute(ctx, id, c.pets[i].PetProfile)
	return c.pets[i], nil
}

// Remove deletes a pet unconditionally. Confirmation is the caller's concern.
// An outstanding computation for the pet is not cancelled; its completion is
// discarded when it arrives.
func (c *Controller) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return ErrNotFound
	}
	removed := c.pets[i]
	c.pets = append(c.pets[:i], c.pets[i+1:]...)
	if err := c.persistLocked(); err != nil {
		return err
	}
	c.log.Info("pet removed", zap.String("id", id), zap.String("name", removed.Name))
	return nil
}

// Wait blocks until all outstanding computations (and any pending nudge
// timer) have settled.
func (c *Controller) Wait() {
	c.wg.Wait()
	c.mu.Lock()
	n := c.nudge
	c.mu.Unlock()
	if n != nil {
		n.Wait()
	}
}

// index returns the slot of the pet with the given id, or -1. Callers hold mu.
func (c *Controller) index(id string) int {
	for i := range c.pets {
		if c.pets[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the pet list through the store. Callers hold mu.
func (c *Controller) persistLocked() error {
	if err := c.store.SavePets(c.pets); err != nil {
		return fmt.Errorf("failed to persist pets: %w", err)
	}
	return nil
}

// startCompute launches the asynchronous plan computation for one pet.
// Callers hold mu. Two pets may be loading at once; completions arrive in any
// order and each touches only its own slot.
func (c *Controller) startCompute(ctx context.Context, id string, profile types.PetProfile) {
	planner := c.planner
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		result, err := planner.ComputePlan(ctx, profile)
		c.complete(id, result, err)
	}()
}

// complete merges one computation outcome back into state. If the pet was
// deleted while the call was in flight the outcome is discarded; a stale
// completion must not resurrect the record.
func (c *Controller) complete(id string, result *types.NutritionResult, err error) {
	c.mu.Lock()

	i := c.index(id)
	if i < 0 {
		c.mu.Unlock()
		c.log.Debug("discarding completion for deleted pet", zap.String("id", id))
		return
	}

	c.pets[i].Loading = false
	if err != nil {
		c.pets[i].Result = nil
		c.pets[i].Err = err.Error()
		c.log.Warn("plan computation failed", zap.String("id", id), zap.Error(err))
	} else {
		c.pets[i].Result = result
		c.pets[i].Err = ""
		c.log.Info("plan ready", zap.String("id", id),
			zap.Float64("dailyCalories", result.DailyCalories))
	}

	if perr := c.persistLocked(); perr != nil {
		c.log.Error("failed to persist completion", zap.String("id", id), zap.Error(perr))
	}

	nudge := c.nudge
	c.mu.Unlock()

	if err == nil && nudge != nil {
		nudge.PlanReady()
	}
}
