package usecase

import (
	"context"
	"net/url"
	"time"

	"github.com/DRSN-tech/marketplace/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// GetByIDForShare читает товар с блокировкой строки до конца текущей транзакции.
	GetByIDForShare(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	SetAsset(ctx context.Context, id int64, assetKey *string) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// GetForBuyer возвращает заказ, только если он принадлежит покупателю.
	GetForBuyer(ctx context.Context, orderID, buyerID int64) (*OrderInfo, error)
	ListByBuyer(ctx context.Context, buyerID int64) ([]OrderInfo, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int, retryAfter time.Duration) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type AssetRepository interface {
	Upload(ctx context.Context, asset *domain.Asset) (string, error)
	Delete(ctx context.Context, key string) error
	PresignedGet(ctx context.Context, key string, fileName string, ttl time.Duration) (*url.URL, error)
}

// TokenDenylist хранит идентификаторы отозванных токенов до истечения их срока.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
