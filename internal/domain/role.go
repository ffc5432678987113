package domain

import (
	"strings"

	"github.com/DRSN-tech/marketplace/pkg/e"
)

// Role — роль пользователя маркетплейса. Набор значений закрыт.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// ParseRole приводит строку к Role; неизвестные значения отклоняются.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", e.ErrInvalidRole
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// CanSell сообщает, может ли роль выставлять товары.
func (r Role) CanSell() bool {
	switch r {
	case RoleSeller:
		return true
	case RoleBuyer:
		return false
	default:
		return false
	}
}

// CanBuy сообщает, может ли роль оформлять заказы.
func (r Role) CanBuy() bool {
	switch r {
	case RoleBuyer:
		return true
	case RoleSeller:
		return false
	default:
		return false
	}
}
