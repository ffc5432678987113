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

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

// Create создаёт категорию. Повтор имени даёт e.ErrCategoryTaken.
func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	q := tr.QuerierFromCtx(ctx, c.pool)

	query := `
		INSERT INTO categories (name, description) VALUES ($1, $2)
		RETURNING id, name, description, created_at;
	`

	var model converter.CategoryModel
	if err := q.QueryRow(ctx, query, category.Name, category.Description).
		Scan(&model.ID, &model.Name, &model.Description, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translateError(err, e.ErrCategoryNotFound))
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	q := tr.QuerierFromCtx(ctx, c.pool)

	query := `SELECT id, name, description, created_at FROM categories WHERE id = $1`

	var model converter.CategoryModel
	if err := q.QueryRow(ctx, query, id).
		Scan(&model.ID, &model.Name, &model.Description, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translateError(err, e.ErrCategoryNotFound))
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CategoryRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Category, error) {
	result := make(map[int64]*domain.Category, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	models, err := c.query(ctx, `SELECT id, name, description, created_at FROM categories WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	for i := range models {
		result[models[i].ID] = c.conv.ToEntity(&models[i])
	}

	return result, nil
}

// List возвращает категории, отсортированные по имени.
func (c *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	models, err := c.query(ctx, `SELECT id, name, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make([]domain.Category, 0, len(models))
	for i := range models {
		result = append(result, *c.conv.ToEntity(&models[i]))
	}

	return result, nil
}

func (c *CategoryRepo) query(ctx context.Context, query string, args ...any) ([]converter.CategoryModel, error) {
	q := tr.QuerierFromCtx(ctx, c.pool)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	models := make([]converter.CategoryModel, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(&model.ID, &model.Name, &model.Description, &model.CreatedAt); err != nil {
			return nil, err
		}
		models = append(models, model)
	}

	return models, rows.Err()
}
