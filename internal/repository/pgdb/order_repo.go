package pgdb

import (
	"context"

	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/marketplace/internal/usecase"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const orderViewQuery = `
	SELECT o.id, o.product_id, o.buyer_id, o.quantity, o.total_price, o.status, o.created_at, o.updated_at,
	       p.title, u.name
	FROM orders o
	JOIN products p ON p.id = o.product_id
	JOIN users u ON u.id = o.buyer_id
`

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{pool: pool, conv: conv}
}

func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	q := tr.QuerierFromCtx(ctx, o.pool)
	model := o.conv.ToModel(order)

	query := `
		INSERT INTO orders (product_id, buyer_id, quantity, total_price, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, product_id, buyer_id, quantity, total_price, status, created_at, updated_at;
	`

	var created converter.OrderModel
	if err := q.QueryRow(ctx, query,
		model.ProductID, model.BuyerID, model.Quantity, model.TotalPrice, model.Status,
	).Scan(
		&created.ID, &created.ProductID, &created.BuyerID, &created.Quantity,
		&created.TotalPrice, &created.Status, &created.CreatedAt, &created.UpdatedAt,
	); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translateError(err, e.ErrOrderNotFound))
	}

	return o.conv.ToEntity(&created), nil
}

// GetForBuyer фильтрует по покупателю в самом запросе, поэтому чужой заказ неотличим от отсутствующего.
func (o *OrderRepo) GetForBuyer(ctx context.Context, orderID, buyerID int64) (*usecase.OrderInfo, error) {
	q := tr.QuerierFromCtx(ctx, o.pool)

	model, err := scanOrderView(q.QueryRow(ctx, orderViewQuery+` WHERE o.id = $1 AND o.buyer_id = $2`, orderID, buyerID))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translateError(err, e.ErrOrderNotFound))
	}

	return o.conv.ToInfo(model), nil
}

func (o *OrderRepo) ListByBuyer(ctx context.Context, buyerID int64) ([]usecase.OrderInfo, error) {
	q := tr.QuerierFromCtx(ctx, o.pool)

	rows, err := q.Query(ctx, orderViewQuery+` WHERE o.buyer_id = $1 ORDER BY o.created_at DESC, o.id DESC`, buyerID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.OrderInfo, 0)
	for rows.Next() {
		model, err := scanOrderView(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *o.conv.ToInfo(model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func scanOrderView(row pgx.Row) (*converter.OrderViewModel, error) {
	var model converter.OrderViewModel
	if err := row.Scan(
		&model.ID, &model.ProductID, &model.BuyerID, &model.Quantity, &model.TotalPrice,
		&model.Status, &model.CreatedAt, &model.UpdatedAt, &model.ProductTitle, &model.BuyerName,
	); err != nil {
		return nil, err
	}
	return &model, nil
}
