package pgdb

import (
	"context"

	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = `id, title, description, price, category_id, owner_id, asset_key, created_at, updated_at`

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)
	model := p.conv.ToModel(product)

	query := `
		INSERT INTO products (title, description, price, category_id, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + productColumns

	created, err := scanProduct(q.QueryRow(ctx, query,
		model.Title, model.Description, model.Price, model.CategoryID, model.OwnerID,
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translateError(err, e.ErrProductNotFound))
	}

	return p.conv.ToEntity(created), nil
}

func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)

	model, err := scanProduct(q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translateError(err, e.ErrProductNotFound))
	}

	return p.conv.ToEntity(model), nil
}

// GetByIDForShare читает товар с FOR SHARE: до конца транзакции цену нельзя изменить,
// а товар нельзя удалить. Требует транзакцию в контексте.
func (p *ProductRepo) GetByIDForShare(ctx context.Context, id int64) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := scanProduct(tx.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR SHARE`, id))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translateError(err, e.ErrProductNotFound))
	}

	return p.conv.ToEntity(model), nil
}

// List возвращает все товары, новые первыми.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)

	rows, err := q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		model, err := scanProduct(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *p.conv.ToEntity(model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Update сохраняет изменяемые поля товара и проставляет updated_at.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)
	model := p.conv.ToModel(product)

	query := `
		UPDATE products
		SET title = $2, description = $3, price = $4, category_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	updated, err := scanProduct(q.QueryRow(ctx, query,
		model.ID, model.Title, model.Description, model.Price, model.CategoryID,
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translateError(err, e.ErrProductNotFound))
	}

	return p.conv.ToEntity(updated), nil
}

func (p *ProductRepo) SetAsset(ctx context.Context, id int64, assetKey *string) (*domain.Product, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)

	query := `
		UPDATE products SET asset_key = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	updated, err := scanProduct(q.QueryRow(ctx, query, id, assetKey))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translateError(err, e.ErrProductNotFound))
	}

	return p.conv.ToEntity(updated), nil
}

// Delete удаляет товар; заказы на него удаляются каскадно.
func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	q := tr.QuerierFromCtx(ctx, p.pool)

	tag, err := q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), translateError(err, e.ErrProductNotFound))
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

func scanProduct(row pgx.Row) (*converter.ProductModel, error) {
	var model converter.ProductModel
	if err := row.Scan(
		&model.ID, &model.Title, &model.Description, &model.Price, &model.CategoryID,
		&model.OwnerID, &model.AssetKey, &model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &model, nil
}
