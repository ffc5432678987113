package domain

import "time"

// Product описывает товар, выставленный продавцом.
type Product struct {
	ID          int64
	Title       string
	Description string
	Price       int64  // Цена хранится в центах
	CategoryID  *int64 // nil, если категория удалена
	OwnerID     int64
	AssetKey    *string // ключ файла товара в объектном хранилище
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewProduct(title, description string, price int64, categoryID int64, ownerID int64) *Product {
	return &Product{
		Title:       title,
		Description: description,
		Price:       price,
		CategoryID:  &categoryID,
		OwnerID:     ownerID,
	}
}

// IsOwnedBy сообщает, принадлежит ли товар пользователю.
func (p *Product) IsOwnedBy(userID int64) bool {
	return p.OwnerID == userID
}

// ProductPatch — частичное обновление товара; nil-поля не меняются.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *int64
	CategoryID  *int64
}

// Apply применяет изменения к копии товара.
func (p *Product) Apply(patch ProductPatch) *Product {
	updated := *p
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Price != nil {
		updated.Price = *patch.Price
	}
	if patch.CategoryID != nil {
		id := *patch.CategoryID
		updated.CategoryID = &id
	}

	return &updated
}
