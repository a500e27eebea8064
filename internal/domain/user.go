package domain

import "time"

// User is the identity reference consumed by the access engine. The
// engine never owns identity; it stores just enough display attributes
// to render member lists and address notification emails.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
