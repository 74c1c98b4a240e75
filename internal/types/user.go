package types

// User is the public profile of an account holder. This is the shape held in
// the active session; it never carries a password.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Account is a directory entry: the public profile plus the stored password.
// Accounts live only in the account directory slot and are looked up by
// unique email. Password handling is isolated behind the auth package so a
// hashing scheme can replace the plaintext storage without touching callers.
type Account struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile strips the password for session use.
func (a Account) Profile() User {
	return User{Name: a.Name, Email: a.Email}
}
