// Package feed implements the admin-curated feed column: an ordered list of
// menu links, news posts, and two ad kinds, plus the payment-link settings.
// Mutations are gated by the admin passphrase; the item list itself carries
// the display order.
package feed

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dailydose/internal/store"
	"dailydose/internal/types"
)

var (
	// ErrBadPassphrase rejects a mutation attempted with the wrong passphrase.
	ErrBadPassphrase = errors.New("incorrect passphrase")

	// ErrItemNotFound means no feed item has the given id.
	ErrItemNotFound = errors.New("feed item not found")

	// ErrBadPosition rejects a move with an out-of-range index.
	ErrBadPosition = errors.New("position out of range")
)

// Controller manages the feed list and payment settings. It is stateless
// between calls; every operation reads and writes through the store so the
// list and its order are always the persisted ones.
type Controller struct {
	store      *store.Store
	log        *zap.Logger
	passphrase string
}

// NewController builds the feed controller with the configured admin
// passphrase.
func NewController(st *store.Store, log *zap.Logger, passphrase string) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{store: st, log: log, passphrase: passphrase}
}

// Authenticate checks the admin passphrase. Plain comparison against the
// configured constant; this panel is deliberately outside any real security
// model.
func (c *Controller) Authenticate(pass string) error {
	if pass != c.passphrase {
		return ErrBadPassphrase
	}
	return nil
}

// Items returns the feed in display order. A store that has never been
// written yields the seed items the dashboard ships with.
func (c *Controller) Items() ([]types.AdminItem, error) {
	items, err := c.store.AdminItems()
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = SeedItems()
		if err := c.store.SaveAdminItems(items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// SeedItems is the starter feed for a fresh install.
func SeedItems() []types.AdminItem {
	return []types.AdminItem{
		{ID: "1", Type: types.ItemMenu, Title: "Home", LinkURL: "#"},
		{ID: "2", Type: types.ItemMenu, Title: "About Us", LinkURL: "#"},
		{
			ID:      "3",
			Type:    types.ItemNews,
			Title:   "New Organic Brand Alert",
			Content: "We are now reviewing the top organic brands for 2025. Stay tuned for updates.",
			Date:    time.Now().Format("1/2/2006"),
			LinkURL: "#",
		},
	}
}

// Add assigns an id and the current date and prepends the item to the feed.
func (c *Controller) Add(pass string, item types.AdminItem) (types.AdminItem, error) {
	if err := c.Authenticate(pass); err != nil {
		return types.AdminItem{}, err
	}
	switch item.Type {
	case types.ItemMenu, types.ItemNews, types.ItemAdImage, types.ItemAdText:
	default:
		return types.AdminItem{}, fmt.Errorf("unknown item type %q", item.Type)
	}

	item.ID = uuid.NewString()
	item.Date = time.Now().Format("1/2/2006")

	items, err := c.Items()
	if err != nil {
		return types.AdminItem{}, err
	}
	items = append([]types.AdminItem{item}, items...)
	if err := c.store.SaveAdminItems(items); err != nil {
		return types.AdminItem{}, err
	}

	c.log.Info("feed item added", zap.String("id", item.ID), zap.String("type", string(item.Type)))
	return item, nil
}

// AddPage prepends a menu entry with a placeholder link.
func (c *Controller) AddPage(pass, title string) (types.AdminItem, error) {
	return c.Add(pass, types.AdminItem{
		Type:    types.ItemMenu,
		Title:   title,
		LinkURL: types.PlaceholderLink,
	})
}

// Delete removes the item with the given id.
func (c *Controller) Delete(pass, id string) error {
	if err := c.Authenticate(pass); err != nil {
		return err
	}

	items, err := c.Items()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items = append(items[:i], items[i+1:]...)
			if err := c.store.SaveAdminItems(items); err != nil {
				return err
			}
			c.log.Info("feed item deleted", zap.String("id", id))
			return nil
		}
	}
	return ErrItemNotFound
}

// Move reorders one item from a source index to a target index with splice
// semantics: the item is removed and reinserted, shifting everything between
// the two positions by one. Moving 0 to 2 on [A B C D] yields [B C A D].
func (c *Controller) Move(pass string, from, to int) error {
	if err := c.Authenticate(pass); err != nil {
		return err
	}

	items, err := c.Items()
	if err != nil {
		return err
	}
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return fmt.Errorf("%w: from=%d to=%d len=%d", ErrBadPosition, from, to, len(items))
	}
	if from == to {
		return nil
	}

	moved := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items[:to], append([]types.AdminItem{moved}, items[to:]...)...)

	if err := c.store.SaveAdminItems(items); err != nil {
		return err
	}
	c.log.Info("feed reordered", zap.String("id", moved.ID), zap.Int("from", from), zap.Int("to", to))
	return nil
}

// PaymentConfig returns the advertising checkout links.
func (c *Controller) PaymentConfig() (types.PaymentConfig, error) {
	return c.store.PaymentConfig()
}

// SetPaymentConfig replaces the advertising checkout links.
func (c *Controller) SetPaymentConfig(pass string, cfg types.PaymentConfig) error {
	if err := c.Authenticate(pass); err != nil {
		return err
	}
	if err := c.store.SavePaymentConfig(cfg); err != nil {
		return err
	}
	c.log.Info("payment links updated")
	return nil
}
