package pgdb

import (
	"context"

	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const userColumns = `id, username, email, name, role, password_hash, created_at`

// UserRepo реализует репозиторий пользователей поверх PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
	conv converter.UserConverter
}

func NewUserRepo(pool *pgxpool.Pool, conv converter.UserConverter) *UserRepo {
	return &UserRepo{pool: pool, conv: conv}
}

// Create вставляет пользователя. Занятые username и email отклоняются уникальными ограничениями.
func (u *UserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	q := tr.QuerierFromCtx(ctx, u.pool)
	model := u.conv.ToModel(user)

	query := `
		INSERT INTO users (username, email, name, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	var created converter.UserModel
	if err := q.QueryRow(ctx, query,
		model.Username, model.Email, model.Name, model.Role, model.PasswordHash,
	).Scan(
		&created.ID, &created.Username, &created.Email, &created.Name,
		&created.Role, &created.PasswordHash, &created.CreatedAt,
	); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translateError(err, e.ErrUserNotFound))
	}

	return u.conv.ToEntity(&created), nil
}

func (u *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return u.getOne(ctx, query, id)
}

func (u *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return u.getOne(ctx, query, username)
}

// GetByIDs возвращает найденных пользователей по id; отсутствующие просто не попадают в результат.
func (u *UserRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error) {
	result := make(map[int64]*domain.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := tr.QuerierFromCtx(ctx, u.pool)
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var model converter.UserModel
		if err := rows.Scan(
			&model.ID, &model.Username, &model.Email, &model.Name,
			&model.Role, &model.PasswordHash, &model.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result[model.ID] = u.conv.ToEntity(&model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (u *UserRepo) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	q := tr.QuerierFromCtx(ctx, u.pool)

	var model converter.UserModel
	if err := q.QueryRow(ctx, query, arg).Scan(
		&model.ID, &model.Username, &model.Email, &model.Name,
		&model.Role, &model.PasswordHash, &model.CreatedAt,
	); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translateError(err, e.ErrUserNotFound))
	}

	return u.conv.ToEntity(&model), nil
}
