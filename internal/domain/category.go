package domain

import "time"

// Category описывает категорию товара
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

func NewCategory(name, description string) *Category {
	return &Category{
		Name:        name,
		Description: description,
	}
}
