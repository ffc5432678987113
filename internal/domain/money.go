package domain

import (
	"strconv"
	"strings"

	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/shopspring/decimal"
)

// MaxAmount — верхняя граница цены и суммы заказа в центах (99 999 999.99).
const MaxAmount int64 = 9_999_999_999

// maxPriceIntDigits — число цифр целой части MaxAmount.
const maxPriceIntDigits = 8

// PriceToCents переводит цену вида 19.99 в центы.
// Цена должна быть > 0, иметь не больше двух знаков после запятой и не превышать MaxAmount.
// Масштаб проверяется по коэффициенту и экспоненте до любой арифметики:
// значения вроде 1e50000000 отклоняются сразу, а не разворачиваются в огромное число.
func PriceToCents(d decimal.Decimal) (int64, error) {
	if !d.IsPositive() {
		return 0, e.ErrPriceMustBePositive
	}

	coef := d.Coefficient().String()
	digits := strings.TrimRight(coef, "0")
	exp := int64(d.Exponent()) + int64(len(coef)-len(digits))

	if exp < -2 {
		return 0, e.ErrPricePrecision
	}
	if int64(len(digits))+exp > maxPriceIntDigits {
		return 0, e.ErrPriceTooLarge
	}

	cents, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, e.ErrPriceTooLarge
	}
	for i := int64(0); i < exp+2; i++ {
		cents *= 10
	}

	if cents > MaxAmount {
		return 0, e.ErrPriceTooLarge
	}

	return cents, nil
}

// CentsToDecimal возвращает сумму в основных единицах.
func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatCents форматирует сумму с фиксированными двумя знаками: 3998 -> "39.98".
func FormatCents(cents int64) string {
	return CentsToDecimal(cents).StringFixed(2)
}

// OrderTotal считает итог заказа: quantity × price.
func OrderTotal(priceCents int64, quantity int) (int64, error) {
	if quantity < 1 {
		return 0, e.ErrInvalidQuantity
	}
	if priceCents <= 0 {
		return 0, e.ErrPriceMustBePositive
	}

	if int64(quantity) > MaxAmount/priceCents {
		return 0, e.ErrOrderTotalTooLarge
	}

	return priceCents * int64(quantity), nil
}
