package domain

import (
	"testing"
	"time"

	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Seller ")
	require.NoError(t, err)
	assert.Equal(t, RoleSeller, r)

	_, err = ParseRole("admin")
	assert.ErrorIs(t, err, e.ErrValidation)

	assert.True(t, RoleSeller.CanSell())
	assert.False(t, RoleSeller.CanBuy())
	assert.True(t, RoleBuyer.CanBuy())
	assert.False(t, Role("admin").CanBuy())
}

func TestPriceToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{in: "19.99", want: 1999},
		{in: "10", want: 1000},
		{in: "0.01", want: 1},
		{in: "19.990", want: 1999},
		{in: "99999999.99", want: MaxAmount},
		{in: "0", wantErr: e.ErrPriceMustBePositive},
		{in: "-5", wantErr: e.ErrPriceMustBePositive},
		{in: "1.999", wantErr: e.ErrPricePrecision},
		{in: "100000000", wantErr: e.ErrPriceTooLarge},
		{in: "1e2", want: 10000},
		{in: "12.5e-1", want: 125},
		{in: "1e50000000", wantErr: e.ErrPriceTooLarge},
		{in: "1e-50000000", wantErr: e.ErrPricePrecision},
		{in: "1.0e-50000000", wantErr: e.ErrPricePrecision},
		{in: "-1e50000000", wantErr: e.ErrPriceMustBePositive},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := PriceToCents(decimal.RequireFromString(tt.in))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "39.98", FormatCents(3998))
	assert.Equal(t, "30.00", FormatCents(3000))
	assert.Equal(t, "0.05", FormatCents(5))
}

func TestOrderTotal(t *testing.T) {
	total, err := OrderTotal(1000, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), total)

	total, err = OrderTotal(1999, 2)
	require.NoError(t, err)
	assert.Equal(t, "39.98", FormatCents(total))

	_, err = OrderTotal(1000, 0)
	assert.ErrorIs(t, err, e.ErrInvalidQuantity)

	_, err = OrderTotal(MaxAmount, 2)
	assert.ErrorIs(t, err, e.ErrOrderTotalTooLarge)
}

func TestNewOrder_CapturesPriceAtCreation(t *testing.T) {
	product := &Product{ID: 7, Price: 1000, OwnerID: 1}

	order, err := NewOrder(product, 2, 3)
	require.NoError(t, err)

	product.Price = 5000
	assert.Equal(t, int64(3000), order.TotalPrice)
	assert.Equal(t, OrderPending, order.Status)
	assert.Equal(t, int64(7), order.ProductID)
	assert.Equal(t, int64(2), order.BuyerID)
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderPending, OrderCompleted, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderPending, false},
		{OrderCompleted, OrderCancelled, false},
		{OrderCancelled, OrderPending, false},
		{OrderCompleted, OrderPending, false},
		{OrderPending, OrderStatus("shipped"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))

			o := &Order{Status: tt.from}
			err := o.TransitionTo(tt.to, time.Now())
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, o.Status)
				assert.NotNil(t, o.UpdatedAt)
			} else {
				assert.ErrorIs(t, err, e.ErrInvalidTransition)
				assert.Equal(t, tt.from, o.Status)
			}
		})
	}
}

func TestProductApply(t *testing.T) {
	cat := int64(1)
	p := &Product{ID: 1, Title: "Old", Description: "d", Price: 100, CategoryID: &cat, OwnerID: 3}

	title := "New"
	price := int64(250)
	updated := p.Apply(ProductPatch{Title: &title, Price: &price})

	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, int64(250), updated.Price)
	assert.Equal(t, "d", updated.Description)
	assert.Equal(t, "Old", p.Title)
	assert.True(t, updated.IsOwnedBy(3))
	assert.False(t, updated.IsOwnedBy(4))
}
