package http

import (
	"fmt"
	"time"

	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/internal/usecase"
	"github.com/shopspring/decimal"
)

// timeLayout — микросекундная точность в UTC, как у сохранённых отметок времени.
const timeLayout = "2006-01-02T15:04:05.000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// REQUESTS

type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Name     string `json:"name" example:"Alice"`
	Role     string `json:"role" example:"seller" enums:"buyer,seller"`
	Password string `json:"password" example:"s3cret-pass"`
}

type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"s3cret-pass"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

// LogoutRequest — необязательное тело выхода: refresh-токен, который нужно отозвать вместе с текущим.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type CategoryRequest struct {
	Name        string `json:"name" example:"E-books"`
	Description string `json:"description" example:"Digital books"`
}

// ProductRequest — тело создания товара. Цена принимается числом или строкой: 19.99 или "19.99".
type ProductRequest struct {
	Title       string          `json:"title" example:"Go in Practice"`
	Description string          `json:"description" example:"PDF edition"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
	CategoryID  int64           `json:"category_id" example:"1"`
}

// ProductPatchRequest — тело обновления товара; отсутствующие поля не меняются.
type ProductPatchRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty" swaggertype:"string"`
	CategoryID  *int64           `json:"category_id,omitempty"`
}

type OrderRequest struct {
	ProductID int64 `json:"product_id" example:"1"`
	Quantity  int   `json:"quantity" example:"2"`
}

// RESPONSES

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type AuthResponse struct {
	AccessToken      string       `json:"access_token"`
	RefreshToken     string       `json:"refresh_token"`
	TokenType        string       `json:"token_type"`
	ExpiresAt        string       `json:"expires_at"`
	RefreshExpiresAt string       `json:"refresh_expires_at"`
	User             UserResponse `json:"user"`
}

type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type OwnerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type ProductResponse struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Price        string        `json:"price" example:"19.99"`
	Category     *int64        `json:"category"`
	CategoryName *string       `json:"category_name"`
	User         OwnerResponse `json:"user"`
	FileURL      *string       `json:"file_url"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    *string       `json:"updated_at"`
}

type OrderResponse struct {
	ID           int64  `json:"id"`
	Product      int64  `json:"product"`
	ProductTitle string `json:"product_title"`
	Buyer        int64  `json:"buyer"`
	BuyerName    string `json:"buyer_name"`
	Quantity     int    `json:"quantity"`
	TotalPrice   string `json:"total_price" example:"39.98"`
	Status       string `json:"status" example:"pending"`
	CreatedAt    string `json:"created_at"`
}

// MAPPERS

func newUserResponse(i *usecase.Identity) UserResponse {
	return UserResponse{
		ID:       i.ID,
		Username: i.Username,
		Email:    i.Email,
		Name:     i.Name,
		Role:     i.Role.String(),
	}
}

func newAuthResponse(res *usecase.AuthRes) AuthResponse {
	return AuthResponse{
		AccessToken:      res.AccessToken,
		RefreshToken:     res.RefreshToken,
		TokenType:        "bearer",
		ExpiresAt:        formatTime(res.ExpiresAt),
		RefreshExpiresAt: formatTime(res.RefreshExpiresAt),
		User:             newUserResponse(&res.Identity),
	}
}

func newCategoryResponse(c *usecase.CategoryInfo) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func newCategoryResponses(categories []usecase.CategoryInfo) []CategoryResponse {
	result := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, newCategoryResponse(&categories[i]))
	}
	return result
}

// assetPath — адрес скачивания файла товара; сама ссылка в хранилище выдаётся только по запросу.
func assetPath(productID int64) string {
	return fmt.Sprintf("/api/v1/products/%d/asset", productID)
}

func newProductResponse(p *usecase.ProductInfo) ProductResponse {
	res := ProductResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        domain.FormatCents(p.Price),
		Category:     p.CategoryID,
		CategoryName: p.CategoryName,
		User: OwnerResponse{
			ID:       p.Owner.ID,
			Username: p.Owner.Username,
			Name:     p.Owner.Name,
			Role:     p.Owner.Role.String(),
		},
		CreatedAt: formatTime(p.CreatedAt),
	}

	if p.HasAsset {
		url := assetPath(p.ID)
		res.FileURL = &url
	}

	if p.UpdatedAt != nil {
		updated := formatTime(*p.UpdatedAt)
		res.UpdatedAt = &updated
	}

	return res
}

func newProductResponses(products []usecase.ProductInfo) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, newProductResponse(&products[i]))
	}
	return result
}

func newOrderResponse(o *usecase.OrderInfo) OrderResponse {
	return OrderResponse{
		ID:           o.ID,
		Product:      o.ProductID,
		ProductTitle: o.ProductTitle,
		Buyer:        o.BuyerID,
		BuyerName:    o.BuyerName,
		Quantity:     o.Quantity,
		TotalPrice:   domain.FormatCents(o.TotalPrice),
		Status:       string(o.Status),
		CreatedAt:    formatTime(o.CreatedAt),
	}
}

func newOrderResponses(orders []usecase.OrderInfo) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, newOrderResponse(&orders[i]))
	}
	return result
}
