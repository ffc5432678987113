package pgdb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, e.ErrProductNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), e.ErrProductNotFound},
		{"username", &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}, e.ErrUsernameTaken},
		{"email", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, e.ErrEmailTaken},
		{"category name", &pgconn.PgError{Code: "23505", ConstraintName: "categories_name_key"}, e.ErrCategoryTaken},
		{"other unique", &pgconn.PgError{Code: "23505", ConstraintName: "x"}, e.ErrDuplicate},
		{"category fk", &pgconn.PgError{Code: "23503", ConstraintName: "products_category_id_fkey"}, e.ErrCategoryNotExists},
		{"other fk", &pgconn.PgError{Code: "23503"}, e.ErrValidation},
		{"check", &pgconn.PgError{Code: "23514"}, e.ErrValidation},
		{"unknown", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err, e.ErrProductNotFound)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestPostgresDuplicate(t *testing.T) {
	assert.True(t, postgresDuplicate(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, postgresDuplicate(&pgconn.PgError{Code: "23503"}))
	assert.False(t, postgresDuplicate(errors.New("x")))
}
