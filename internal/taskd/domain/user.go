package domain

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2id encoded, never exposed outside the auth boundary
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
