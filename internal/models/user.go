package models

import "time"

// User is an owner credential entry, unique by Username.
type User struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
