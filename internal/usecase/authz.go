package usecase

import (
	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/pkg/e"
)

// RequireRole проверяет, что роль пользователя допускает действие, закреплённое за role.
// Для известных ролей возвращается сообщение, объясняющее, какое действие запрещено.
func RequireRole(identity *Identity, role domain.Role) error {
	if identity == nil {
		return e.ErrMissingToken
	}

	switch role {
	case domain.RoleSeller:
		if identity.Role.CanSell() {
			return nil
		}
		return e.ErrOnlySellers
	case domain.RoleBuyer:
		if identity.Role.CanBuy() {
			return nil
		}
		return e.ErrOnlyBuyers
	default:
		return e.ErrRoleRequired
	}
}

// RequireOwnership разрешает действие только владельцу ресурса.
func RequireOwnership(identity *Identity, ownerID int64) error {
	if identity == nil {
		return e.ErrMissingToken
	}

	if identity.ID != ownerID {
		return e.ErrNotOwner
	}

	return nil
}
