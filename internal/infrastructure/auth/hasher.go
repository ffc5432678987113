package auth

import (
	"errors"

	"github.com/DRSN-tech/marketplace/pkg/e"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher хэширует пароли bcrypt с настраиваемой стоимостью.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	const op = "BcryptHasher.Hash"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", e.Wrap(op, e.ErrPasswordTooLong)
		}
		return "", e.Wrap(op, err)
	}

	return string(hash), nil
}

// Compare возвращает e.ErrInvalidCredentials, если пароль не подходит.
func (h *BcryptHasher) Compare(hash, password string) error {
	const op = "BcryptHasher.Compare"

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return e.ErrInvalidCredentials
	}

	return e.Wrap(op, err)
}
