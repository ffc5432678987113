package domain

import (
	"time"

	"github.com/DRSN-tech/marketplace/pkg/e"
)

// OrderStatus — состояние заказа.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	default:
		return false
	}
}

// IsFinal сообщает, что из статуса нет переходов.
func (s OrderStatus) IsFinal() bool {
	switch s {
	case OrderCompleted, OrderCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo: pending -> completed | cancelled, остальные переходы запрещены.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next.IsFinal()
	case OrderCompleted, OrderCancelled:
		return false
	default:
		return false
	}
}

// Order — заказ покупателя на один товар.
// TotalPrice фиксируется при создании и не следует за последующими изменениями цены товара.
type Order struct {
	ID         int64
	ProductID  int64
	BuyerID    int64
	Quantity   int
	TotalPrice int64 // в центах
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// NewOrder создаёт заказ в статусе pending с итогом, посчитанным по текущей цене товара.
func NewOrder(product *Product, buyerID int64, quantity int) (*Order, error) {
	total, err := OrderTotal(product.Price, quantity)
	if err != nil {
		return nil, err
	}

	return &Order{
		ProductID:  product.ID,
		BuyerID:    buyerID,
		Quantity:   quantity,
		TotalPrice: total,
		Status:     OrderPending,
	}, nil
}

// TransitionTo переводит заказ в новый статус, если переход разрешён.
func (o *Order) TransitionTo(next OrderStatus, at time.Time) error {
	if !o.Status.CanTransitionTo(next) {
		return e.ErrInvalidTransition
	}

	o.Status = next
	o.UpdatedAt = &at
	return nil
}
