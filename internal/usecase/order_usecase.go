package usecase

import (
	"context"

	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/logger"
	"github.com/google/uuid"
)

// OrderUseCase реализует оформление и просмотр заказов покупателя.
type OrderUseCase struct {
	orderRepo   OrderRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	encoder     EventEncoder
	txManager   TxManager
	logger      logger.Logger
}

func NewOrderUC(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	encoder EventEncoder,
	txManager TxManager,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		encoder:     encoder,
		txManager:   txManager,
		logger:      logger,
	}
}

// PlaceOrder оформляет заказ покупателя.
// Чтение цены, запись заказа и события выполняются в одной транзакции,
// строка товара блокируется FOR SHARE, поэтому цена не меняется до коммита.
func (o *OrderUseCase) PlaceOrder(ctx context.Context, identity *Identity, req *PlaceOrderReq) (*OrderInfo, error) {
	const op = "OrderUseCase.PlaceOrder"

	if err := RequireRole(identity, domain.RoleBuyer); err != nil {
		return nil, e.Wrap(op, err)
	}

	var (
		order   *domain.Order
		product *domain.Product
	)

	err := o.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error

		product, err = o.productRepo.GetByIDForShare(txCtx, req.ProductID)
		if err != nil {
			return err
		}

		if product.IsOwnedBy(identity.ID) {
			return e.ErrOwnProductOrder
		}

		newOrder, err := domain.NewOrder(product, identity.ID, req.Quantity)
		if err != nil {
			return err
		}

		order, err = o.orderRepo.Create(txCtx, newOrder)
		if err != nil {
			return err
		}

		return o.saveOrderPlacedEvent(txCtx, order, product.OwnerID)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	o.logger.Infof("order placed: id=%d product_id=%d buyer_id=%d quantity=%d total=%s",
		order.ID, order.ProductID, order.BuyerID, order.Quantity, domain.FormatCents(order.TotalPrice))

	return NewOrderInfo(order, product.Title, identity.Name), nil
}

// ListOrdersForBuyer возвращает только заказы вызывающего покупателя, новые первыми.
func (o *OrderUseCase) ListOrdersForBuyer(ctx context.Context, identity *Identity) ([]OrderInfo, error) {
	const op = "OrderUseCase.ListOrdersForBuyer"

	if identity == nil {
		return nil, e.Wrap(op, e.ErrMissingToken)
	}

	orders, err := o.orderRepo.ListByBuyer(ctx, identity.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return orders, nil
}

// GetOrder возвращает заказ вызывающего. Чужой и несуществующий заказ неразличимы.
func (o *OrderUseCase) GetOrder(ctx context.Context, identity *Identity, orderID int64) (*OrderInfo, error) {
	const op = "OrderUseCase.GetOrder"

	if identity == nil {
		return nil, e.Wrap(op, e.ErrMissingToken)
	}

	order, err := o.orderRepo.GetForBuyer(ctx, orderID, identity.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return order, nil
}

func (o *OrderUseCase) saveOrderPlacedEvent(ctx context.Context, order *domain.Order, sellerID int64) error {
	eventID := uuid.NewString()

	payload, err := o.encoder.EncodeOrderPlaced(NewOrderPlacedEvent(eventID, order, sellerID))
	if err != nil {
		return err
	}

	if _, err := o.outboxRepo.Create(ctx, NewOutboxEvent(eventID, OrderPlaced, order.ID, payload)); err != nil {
		return err
	}

	return nil
}
