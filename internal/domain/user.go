package domain

import "time"

// User описывает зарегистрированного пользователя.
// PasswordHash никогда не покидает слой хранения и use case.
type User struct {
	ID           int64
	Username     string
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

func NewUser(username, email, name string, role Role, passwordHash string) *User {
	return &User{
		Username:     username,
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: passwordHash,
	}
}
