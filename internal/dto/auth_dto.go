// FILE: internal/dto/auth_dto.go
package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// UserDTO is the public profile; it never carries the password hash.
type UserDTO struct {
	Id    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// AuthSession is what a resolved bearer token grants for one request.
type AuthSession struct {
	TokenId   uint
	TokenHash string
	User      UserDTO
}
