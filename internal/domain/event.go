package domain

import "time"

// ProductEventType — тип изменения товара
type ProductEventType string

const (
	ProductCreated ProductEventType = "product.created"
	ProductUpdated ProductEventType = "product.updated"
	ProductRemoved ProductEventType = "product.removed"
)

// ProductEvent описывает изменение товара, публикуемое во внешние системы.
// Для ProductRemoved поле Product равно nil.
type ProductEvent struct {
	EventID    string
	Type       ProductEventType
	ProductID  int64
	Product    *Product
	OccurredAt time.Time
}

func NewProductEvent(eventID string, eventType ProductEventType, productID int64, product *Product) *ProductEvent {
	return &ProductEvent{
		EventID:    eventID,
		Type:       eventType,
		ProductID:  productID,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
}
