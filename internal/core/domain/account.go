package domain

import "errors"

var (
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMalformedStoreData = errors.New("malformed store data")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrKeyNotFound        = errors.New("key not found")
)

// Account is a registered user record. The password is stored as submitted.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session identifies the currently authenticated user.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session returns the account with its password stripped.
func (a Account) Session() Session {
	return Session{ID: a.ID, Name: a.Name, Email: a.Email}
}
