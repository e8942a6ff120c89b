// FILE: internal/entity/user_entity.go
package entity

import "time"

type User struct {
	Id              uint
	Name            string
	Email           string
	PasswordHash    string
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AccessToken is an opaque bearer credential. Only the SHA-256 of the
// secret part is persisted; the plain value is handed out once at issuance.
type AccessToken struct {
	Id         uint
	UserId     uint
	Name       string
	TokenHash  string
	LastUsedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
