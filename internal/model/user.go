package model

import "time"

// User is a registered account. Items carry the creating user's ID and a
// copy of the display name taken at creation time; the copy is not kept in
// sync with later renames.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
