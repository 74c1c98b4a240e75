// Package auth implements local accounts: a directory of {name, email,
// password} records in the store, an optional active session holding only the
// public profile, and a one-time migration from the legacy single-account
// record. Passwords are stored as entered; the store seam is the single place
// a hashing scheme would slot into.
package auth

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dailydose/internal/store"
	"dailydose/internal/types"
)

// AuthError is a surfaced account failure: duplicate registration email or
// bad login credentials. The message never reveals which login field was
// wrong.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Manager handles register/login/logout against the account directory.
type Manager struct {
	store *store.Store
	log   *zap.Logger
}

// NewManager builds the auth manager.
func NewManager(st *store.Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: st, log: log}
}

// Register creates an account and signs it in. The email must be new to the
// directory and the password must pass the policy; both failures surface as
// errors, nothing is persisted.
func (m *Manager) Register(name, email, password string) (types.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return types.User{}, &AuthError{Message: "all fields are required"}
	}
	if err := ValidatePassword(password); err != nil {
		return types.User{}, err
	}

	accounts, err := m.store.Accounts()
	if err != nil {
		return types.User{}, err
	}
	for _, a := range accounts {
		if a.Email == email {
			return types.User{}, &AuthError{Message: "an account with this email already exists; please log in"}
		}
	}

	account := types.Account{Name: name, Email: email, Password: password}
	accounts = append(accounts, account)
	if err := m.store.SaveAccounts(accounts); err != nil {
		return types.User{}, err
	}

	user := account.Profile()
	if err := m.store.SetCurrentUser(user); err != nil {
		return types.User{}, err
	}

	m.log.Info("account registered", zap.String("email", email))
	return user, nil
}

// Login signs in by exact (email, password) match against the directory. On
// an empty directory it first attempts the one-time legacy migration. Success
// sets the session to the public profile only; the password never leaves the
// directory.
func (m *Manager) Login(email, password string) (types.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return types.User{}, &AuthError{Message: "email and password are required"}
	}

	accounts, err := m.store.Accounts()
	if err != nil {
		return types.User{}, err
	}

	if len(accounts) == 0 {
		accounts, err = m.migrateLegacy()
		if err != nil {
			return types.User{}, err
		}
	}

	for _, a := range accounts {
		if a.Email == email && a.Password == password {
			user := a.Profile()
			if err := m.store.SetCurrentUser(user); err != nil {
				return types.User{}, err
			}
			m.log.Info("login", zap.String("email", email))
			return user, nil
		}
	}

	return types.User{}, &AuthError{Message: "invalid email or password"}
}

// migrateLegacy imports the pre-directory single-account record into the
// directory, once. An absent legacy record yields an empty directory.
func (m *Manager) migrateLegacy() ([]types.Account, error) {
	legacy, err := m.store.LegacyCredential()
	if err != nil {
		return nil, err
	}
	if legacy == nil {
		return nil, nil
	}

	accounts := []types.Account{*legacy}
	if err := m.store.SaveAccounts(accounts); err != nil {
		return nil, fmt.Errorf("failed to migrate legacy account: %w", err)
	}
	m.log.Info("migrated legacy account", zap.String("email", legacy.Email))
	return accounts, nil
}

// Logout clears the active session. The account directory is untouched.
func (m *Manager) Logout() error {
	return m.store.ClearCurrentUser()
}

// Current returns the active session profile, or nil when logged out.
func (m *Manager) Current() (*types.User, error) {
	return m.store.CurrentUser()
}

// HasSession reports whether anyone is signed in. Used by the signup nudge.
func (m *Manager) HasSession() bool {
	u, err := m.store.CurrentUser()
	return err == nil && u != nil
}
