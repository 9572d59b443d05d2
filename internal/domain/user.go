package domain

import "time"

// User represents a user in the system. A row is created once, at first
// successful login for a given email, and never updated afterwards.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture"`
	Gender    string    `json:"gender"`
	Locale    string    `json:"locale"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile represents the identity assertion returned by the OAuth provider
// after a successful login handshake.
type Profile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Gender        string `json:"gender"`
	Locale        string `json:"locale"`
}

// Identity is what an access token resolves back to. It is stored alongside
// the token and attached to the request context by the auth middleware.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
