package kafka

import (
	"time"

	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/internal/usecase"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtoEventEncoder сериализует события в protobuf google.protobuf.Struct.
// Суммы передаются строками с двумя знаками, идентификаторы числами.
type ProtoEventEncoder struct{}

func NewProtoEventEncoder() *ProtoEventEncoder {
	return &ProtoEventEncoder{}
}

func (ProtoEventEncoder) EncodeOrderPlaced(event *usecase.OrderPlacedEvent) ([]byte, error) {
	const op = "ProtoEventEncoder.EncodeOrderPlaced"

	payload, err := structpb.NewStruct(map[string]any{
		"event_id":    event.EventID,
		"event_type":  string(usecase.OrderPlaced),
		"order_id":    event.OrderID,
		"product_id":  event.ProductID,
		"buyer_id":    event.BuyerID,
		"seller_id":   event.SellerID,
		"quantity":    event.Quantity,
		"total_price": domain.FormatCents(event.TotalPrice),
		"status":      string(event.Status),
		"created_at":  event.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	data, err := proto.Marshal(payload)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return data, nil
}
