package e

import (
	"errors"
	"fmt"
)

// Категории ошибок. Каждая публичная ошибка разворачивается в одну из них.
var (
	ErrValidation       = errors.New("validation error")
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrInternal         = errors.New("internal server error")
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 400 Bad Request
	ErrInvalidBody          = New(ErrValidation, "invalid request body")
	ErrInvalidID            = New(ErrValidation, "invalid id")
	ErrUsernameRequired     = New(ErrValidation, "username is required")
	ErrNameRequired         = New(ErrValidation, "name is required")
	ErrInvalidEmail         = New(ErrValidation, "invalid email format")
	ErrPasswordTooShort     = New(ErrValidation, "password must be at least 8 characters long")
	ErrPasswordTooLong      = New(ErrValidation, "password must be at most 72 bytes long")
	ErrInvalidRole          = New(ErrValidation, "role must be one of: buyer, seller")
	ErrCategoryNameRequired = New(ErrValidation, "category name is required")
	ErrTitleRequired        = New(ErrValidation, "title is required")
	ErrPriceMustBePositive  = New(ErrValidation, "price must be positive")
	ErrPricePrecision       = New(ErrValidation, "price must have at most 2 decimal places")
	ErrPriceTooLarge        = New(ErrValidation, "price exceeds maximum allowed value")
	ErrCategoryNotExists    = New(ErrValidation, "category does not exist")
	ErrOwnProductOrder      = New(ErrValidation, "cannot order own product")
	ErrInvalidQuantity      = New(ErrValidation, "quantity must be at least 1")
	ErrOrderTotalTooLarge   = New(ErrValidation, "order total exceeds maximum allowed value")
	ErrInvalidTransition    = New(ErrValidation, "order status transition is not allowed")
	ErrNoFile               = New(ErrValidation, "no file provided")
	ErrFileTooLarge         = New(ErrValidation, "file is too large")
	ErrExpectedMultipart    = New(ErrValidation, "expected multipart/form-data")
	ErrRefreshTokenRequired = New(ErrValidation, "refresh_token is required")

	// 401 Unauthorized
	ErrInvalidCredentials = New(ErrUnauthorized, "invalid credentials")
	ErrInvalidToken       = New(ErrUnauthorized, "invalid token")
	ErrMissingToken       = New(ErrUnauthorized, "authorization header required")

	// 403 Forbidden
	ErrOnlyBuyers   = New(ErrForbidden, "only buyers may order")
	ErrOnlySellers  = New(ErrForbidden, "only sellers can create products")
	ErrRoleRequired = New(ErrForbidden, "insufficient role")
	ErrNotOwner     = New(ErrForbidden, "you can only modify your own products")

	// 404 Not Found
	ErrUserNotFound     = New(ErrNotFound, "user not found")
	ErrCategoryNotFound = New(ErrNotFound, "category not found")
	ErrProductNotFound  = New(ErrNotFound, "product not found")
	ErrOrderNotFound    = New(ErrNotFound, "order not found")
	ErrAssetNotFound    = New(ErrNotFound, "product has no asset")

	// 409 Conflict
	ErrUsernameTaken = New(ErrConflict, "username already taken")
	ErrEmailTaken    = New(ErrConflict, "email already taken")
	ErrCategoryTaken = New(ErrConflict, "category with this name already exists")
	ErrDuplicate     = New(ErrConflict, "resource already exists")

	// 405 Method Not Allowed
	ErrMethodNotSupported = New(ErrMethodNotAllowed, "method not allowed")
)

// Error публичная ошибка с безопасным для клиента сообщением.
type Error struct {
	Kind error
	Msg  string
}

func New(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func (err *Error) Error() string {
	return err.Msg
}

func (err *Error) Unwrap() error {
	return err.Kind
}

// Public возвращает ближайшую публичную ошибку из цепочки.
func Public(err error) (*Error, bool) {
	var pub *Error
	if errors.As(err, &pub) {
		return pub, true
	}

	return nil, false
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
