package usecase

import (
	"context"

	"github.com/DRSN-tech/marketplace/internal/domain"
)

// TxManager выполняет fn в одной транзакции хранилища.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare возвращает e.ErrInvalidCredentials при несовпадении.
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(user *domain.User, typ TokenType) (*IssuedToken, error)
	// Parse проверяет подпись и срок действия; любые ошибки сводятся к e.ErrInvalidToken.
	Parse(token string) (*TokenClaims, error)
}

type AssetsInfra interface {
	UploadAsset(ctx context.Context, req *UploadAssetReq) (string, error)
	CleanupAssets(keys []string)
	AssetURL(ctx context.Context, key string) (string, error)
}

type EventEncoder interface {
	EncodeOrderPlaced(event *OrderPlacedEvent) ([]byte, error)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
