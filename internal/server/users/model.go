package users

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}
