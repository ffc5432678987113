package pgdb

import (
	"errors"

	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// Ограничения из db/migrations, на которые опирается перевод ошибок.
const (
	constraintUsersUsername  = "users_username_key"
	constraintUsersEmail     = "users_email_key"
	constraintCategoriesName = "categories_name_key"
	constraintProductsCat    = "products_category_id_fkey"
	constraintOrdersProduct  = "orders_product_id_fkey"
)

func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// translateError переводит ошибки PostgreSQL в публичные ошибки приложения.
// notFound возвращается вместо pgx.ErrNoRows; неизвестные ошибки возвращаются как есть.
func translateError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case constraintUsersUsername:
			return e.ErrUsernameTaken
		case constraintUsersEmail:
			return e.ErrEmailTaken
		case constraintCategoriesName:
			return e.ErrCategoryTaken
		default:
			return e.ErrDuplicate
		}
	case pgForeignKeyViolation:
		switch pgErr.ConstraintName {
		case constraintProductsCat:
			return e.ErrCategoryNotExists
		case constraintOrdersProduct:
			return e.ErrProductNotFound
		default:
			return e.New(e.ErrValidation, "referenced resource does not exist")
		}
	case pgCheckViolation:
		return e.New(e.ErrValidation, "value violates a constraint")
	}

	return err
}
