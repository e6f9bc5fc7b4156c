package kafka

import (
	"fmt"
	"time"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/jimlawless/whereami"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// EncodeProductEvent сериализует событие в protobuf google.protobuf.Struct.
// Поля товара совпадают с полями GraphQL-типа Product.
func EncodeProductEvent(event *domain.ProductEvent) ([]byte, error) {
	fields := map[string]any{
		"event_id":    event.EventID,
		"event_type":  string(event.Type),
		"product_id":  event.ProductID,
		"occurred_at": event.OccurredAt.UTC().Format(time.RFC3339Nano),
		"product":     nil,
	}

	if event.Product != nil {
		fields["product"] = map[string]any{
			"id":           event.Product.ID,
			"category":     string(event.Product.Category),
			"product_name": event.Product.Name,
			"price":        event.Product.Price,
			"image_path":   event.Product.ImagePath,
			"created":      event.Product.CreatedAt.UTC().Format(time.RFC3339Nano),
		}
	}

	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	payload, err := proto.Marshal(msg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return payload, nil
}

// DecodeProductEvent разбирает payload, записанный EncodeProductEvent.
func DecodeProductEvent(payload []byte) (*domain.ProductEvent, error) {
	var msg structpb.Struct
	if err := proto.Unmarshal(payload, &msg); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	f := msg.GetFields()
	occurredAt, err := time.Parse(time.RFC3339Nano, f["occurred_at"].GetStringValue())
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("occurred_at: %w", err))
	}

	event := &domain.ProductEvent{
		EventID:    f["event_id"].GetStringValue(),
		Type:       domain.ProductEventType(f["event_type"].GetStringValue()),
		ProductID:  int64(f["product_id"].GetNumberValue()),
		OccurredAt: occurredAt,
	}

	if p := f["product"].GetStructValue(); p != nil {
		pf := p.GetFields()
		created, err := time.Parse(time.RFC3339Nano, pf["created"].GetStringValue())
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("created: %w", err))
		}

		event.Product = &domain.Product{
			ID:        int64(pf["id"].GetNumberValue()),
			Category:  domain.Category(pf["category"].GetStringValue()),
			Name:      pf["product_name"].GetStringValue(),
			Price:     pf["price"].GetNumberValue(),
			ImagePath: pf["image_path"].GetStringValue(),
			CreatedAt: created,
		}
	}

	return event, nil
}
