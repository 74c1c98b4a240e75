// Package store implements the persisted slot store: named slots holding
// JSON-serialized domain records in a local SQLite database. It is the Go
// counterpart of the browser key-value storage the dashboard state lives in.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"dailydose/internal/types"
)

// Slot keys. Every domain record collection lives under one named slot.
const (
	SlotPets          = "pets"
	SlotAdminItems    = "admin_items"
	SlotPaymentConfig = "payment_config"
	SlotCurrentUser   = "current_user"
	SlotUsers         = "users"

	// SlotLegacyCredential is the pre-directory single-account record. It is
	// only consulted during the one-time login migration and never written.
	SlotLegacyCredential = "user_creds"
)

// Store is a synchronous slot store over SQLite. All access goes through a
// single connection guarded by a mutex; callers never see partial writes.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Open initializes the slot database at the given path, creating parent
// directories as needed. Use ":memory:" in tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal_mode: %w", err)
	}

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS slots (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string {
	return s.dbPath
}

// getRaw returns the raw JSON for a slot. A missing slot is not an error;
// it returns ok=false.
func (s *Store) getRaw(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) putRaw(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO slots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

func (s *Store) deleteRaw(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to clear slot %s: %w", key, err)
	}
	return nil
}

// Get decodes a slot into dst. It reports ok=false for a slot that was never
// written, which is not an error.
func (s *Store) Get(key string, dst interface{}) (bool, error) {
	raw, ok, err := s.getRaw(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("failed to decode slot %s: %w", key, err)
	}
	return true, nil
}

// Put JSON-serializes src into a slot, replacing any previous value.
func (s *Store) Put(key string, src interface{}) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("failed to encode slot %s: %w", key, err)
	}
	return s.putRaw(key, string(raw))
}

// =============================================================================
// TYPED SLOT ACCESSORS
// =============================================================================

// Pets loads the pet list. An unset slot yields an empty list.
func (s *Store) Pets() ([]types.Pet, error) {
	var pets []types.Pet
	if _, err := s.Get(SlotPets, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

// SavePets persists the full pet list.
func (s *Store) SavePets(pets []types.Pet) error {
	if pets == nil {
		pets = []types.Pet{}
	}
	return s.Put(SlotPets, pets)
}

// AdminItems loads the ordered feed list. An unset slot yields an empty list.
func (s *Store) AdminItems() ([]types.AdminItem, error) {
	var items []types.AdminItem
	if _, err := s.Get(SlotAdminItems, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveAdminItems persists the feed list in display order.
func (s *Store) SaveAdminItems(items []types.AdminItem) error {
	if items == nil {
		items = []types.AdminItem{}
	}
	return s.Put(SlotAdminItems, items)
}

// PaymentConfig loads the payment links, falling back to the placeholder
// defaults when the slot has never been written.
func (s *Store) PaymentConfig() (types.PaymentConfig, error) {
	cfg := types.DefaultPaymentConfig()
	if _, err := s.Get(SlotPaymentConfig, &cfg); err != nil {
		return types.PaymentConfig{}, err
	}
	return cfg, nil
}

// SavePaymentConfig persists the payment links.
func (s *Store) SavePaymentConfig(cfg types.PaymentConfig) error {
	return s.Put(SlotPaymentConfig, cfg)
}

// CurrentUser returns the active session profile, or nil when logged out.
func (s *Store) CurrentUser() (*types.User, error) {
	var u types.User
	ok, err := s.Get(SlotCurrentUser, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

// SetCurrentUser persists the active session profile.
func (s *Store) SetCurrentUser(u types.User) error {
	return s.Put(SlotCurrentUser, u)
}

// ClearCurrentUser removes the active session. The account directory is
// untouched.
func (s *Store) ClearCurrentUser() error {
	return s.deleteRaw(SlotCurrentUser)
}

// Accounts loads the account directory. An unset slot yields an empty list.
func (s *Store) Accounts() ([]types.Account, error) {
	var accounts []types.Account
	if _, err := s.Get(SlotUsers, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// SaveAccounts persists the account directory.
func (s *Store) SaveAccounts(accounts []types.Account) error {
	if accounts == nil {
		accounts = []types.Account{}
	}
	return s.Put(SlotUsers, accounts)
}

// LegacyCredential returns the pre-directory single-account record if one
// exists. Consulted only by the login migration path.
func (s *Store) LegacyCredential() (*types.Account, error) {
	var a types.Account
	ok, err := s.Get(SlotLegacyCredential, &a)
	if err != nil || !ok {
		return nil, err
	}
	return &a, nil
}
