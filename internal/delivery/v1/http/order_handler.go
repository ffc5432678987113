package http

import (
	"net/http"

	"github.com/DRSN-tech/marketplace/internal/usecase"
	"github.com/DRSN-tech/marketplace/pkg/logger"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

// placeOrder
//
//	@Summary		Оформление заказа
//	@Description	Покупатель заказывает чужой товар. Сумма фиксируется по цене на момент заказа
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		OrderRequest	true	"Товар и количество"
//	@Success		201		{object}	OrderResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		401		{object}	ErrorResponse	"Требуется авторизация"
//	@Failure		403		{object}	ErrorResponse	"Только покупатели"
//	@Failure		404		{object}	ErrorResponse	"Товар не найден"
//	@Router			/orders [post]
func (h *OrderHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	order, err := h.orderUsecase.PlaceOrder(r.Context(), identityFromCtx(r.Context()), &usecase.PlaceOrderReq{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newOrderResponse(order))
}

// listMyOrders
//
//	@Summary	Мои заказы
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		OrderResponse
//	@Failure	401	{object}	ErrorResponse	"Требуется авторизация"
//	@Router		/orders/user [get]
func (h *OrderHandler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUsecase.ListOrdersForBuyer(r.Context(), identityFromCtx(r.Context()))
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newOrderResponses(orders))
}

// getOrder
//
//	@Summary	Заказ по идентификатору
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"ID заказа"
//	@Success	200	{object}	OrderResponse
//	@Failure	404	{object}	ErrorResponse	"Заказ не найден"
//	@Router		/orders/{id} [get]
func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	order, err := h.orderUsecase.GetOrder(r.Context(), identityFromCtx(r.Context()), id)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newOrderResponse(order))
}
