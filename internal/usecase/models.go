package usecase

import (
	"io"
	"time"

	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/shopspring/decimal"
)

// AUTH USECASE

// RegisterReq — запрос на регистрацию пользователя.
type RegisterReq struct {
	Username string
	Email    string
	Name     string
	Role     string
	Password string
}

// LoginReq — запрос на вход по логину и паролю.
type LoginReq struct {
	Username string
	Password string
}

// Identity — аутентифицированный пользователь, от имени которого выполняется запрос.
type Identity struct {
	ID       int64
	Username string
	Email    string
	Name     string
	Role     domain.Role
}

// AuthRes — выданная пара токенов и публичное представление пользователя.
type AuthRes struct {
	AccessToken      string
	ExpiresAt        time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	Identity         Identity
}

// LogoutReq — токены, которые нужно отозвать. Refresh необязателен.
type LogoutReq struct {
	AccessToken  string
	RefreshToken string
}

// CATALOG USECASE

type CreateCategoryReq struct {
	Name        string
	Description string
}

type CategoryInfo struct {
	ID          int64
	Name        string
	Description string
}

// CreateProductReq — запрос на создание товара. Price в основных единицах (19.99).
type CreateProductReq struct {
	Title       string
	Description string
	Price       decimal.Decimal
	CategoryID  int64
}

// UpdateProductReq — частичное обновление; nil-поля не меняются.
type UpdateProductReq struct {
	ProductID   int64
	Title       *string
	Description *string
	Price       *decimal.Decimal
	CategoryID  *int64
}

// UploadAssetReq — загрузка файла цифрового товара.
type UploadAssetReq struct {
	ProductID   int64
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// OwnerSummary — публичные данные владельца товара.
type OwnerSummary struct {
	ID       int64
	Username string
	Name     string
	Role     domain.Role
}

// ProductInfo — денормализованное представление товара.
type ProductInfo struct {
	ID           int64
	Title        string
	Description  string
	Price        int64
	CategoryID   *int64
	CategoryName *string
	Owner        OwnerSummary
	HasAsset     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// ORDER USECASE

type PlaceOrderReq struct {
	ProductID int64
	Quantity  int
}

// OrderInfo — представление заказа с названием товара.
type OrderInfo struct {
	ID           int64
	ProductID    int64
	ProductTitle string
	BuyerID      int64
	BuyerName    string
	Quantity     int
	TotalPrice   int64
	Status       domain.OrderStatus
	CreatedAt    time.Time
}

// INFRASTRUCTURE

// TokenType отличает короткоживущий токен доступа от токена обновления.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// IssuedToken — подписанный токен.
type IssuedToken struct {
	Token     string
	ID        string
	Type      TokenType
	ExpiresAt time.Time
}

// TokenClaims — проверенное содержимое токена.
type TokenClaims struct {
	UserID    int64
	TokenID   string
	Type      TokenType
	ExpiresAt time.Time
}

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	OrderPlaced OutboxEventType = "order.placed"
)

// OutboxEvent — событие, записанное в той же транзакции, что и изменение, и отправляемое в Kafka воркером.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	AggregateID int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// OrderPlacedEvent — содержимое события о новом заказе.
type OrderPlacedEvent struct {
	EventID    string
	OrderID    int64
	ProductID  int64
	BuyerID    int64
	SellerID   int64
	Quantity   int
	TotalPrice int64
	Status     domain.OrderStatus
	CreatedAt  time.Time
}

// WriteRawMessageReq — сообщение для брокера, собранное из события outbox.
type WriteRawMessageReq struct {
	Key       int64
	EventID   string
	EventType OutboxEventType
	Payload   []byte
}

// MAPPERS

func NewIdentity(u *domain.User) Identity {
	return Identity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
	}
}

func NewAuthRes(access, refresh *IssuedToken, identity Identity) *AuthRes {
	return &AuthRes{
		AccessToken:      access.Token,
		ExpiresAt:        access.ExpiresAt,
		RefreshToken:     refresh.Token,
		RefreshExpiresAt: refresh.ExpiresAt,
		Identity:         identity,
	}
}

func NewCategoryInfo(c *domain.Category) CategoryInfo {
	return CategoryInfo{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func NewOwnerSummary(u *domain.User) OwnerSummary {
	return OwnerSummary{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
}

// NewProductInfo собирает представление одного товара; category может быть nil.
func NewProductInfo(p *domain.Product, owner *domain.User, category *domain.Category) ProductInfo {
	info := ProductInfo{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		Owner:       NewOwnerSummary(owner),
		HasAsset:    p.AssetKey != nil,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	if category != nil {
		name := category.Name
		info.CategoryName = &name
	}

	return info
}

func NewOrderInfo(o *domain.Order, productTitle string, buyerName string) *OrderInfo {
	return &OrderInfo{
		ID:           o.ID,
		ProductID:    o.ProductID,
		ProductTitle: productTitle,
		BuyerID:      o.BuyerID,
		BuyerName:    buyerName,
		Quantity:     o.Quantity,
		TotalPrice:   o.TotalPrice,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
	}
}

func NewOrderPlacedEvent(eventID string, o *domain.Order, sellerID int64) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		EventID:    eventID,
		OrderID:    o.ID,
		ProductID:  o.ProductID,
		BuyerID:    o.BuyerID,
		SellerID:   sellerID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, aggregateID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:     eventID,
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		Status:      Pending,
	}
}

func NewWriteRawMessageReq(event *OutboxEvent) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:       event.AggregateID,
		EventID:   event.EventID,
		EventType: event.EventType,
		Payload:   event.Payload,
	}
}
