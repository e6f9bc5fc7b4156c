package kafka

import (
	"context"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
	"github.com/DRSN-tech/catalog-admin/internal/usecase"
	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/DRSN-tech/catalog-admin/pkg/logger"
	"github.com/jimlawless/whereami"
)

// OutboxPublisher записывает событие в outbox в транзакции изменения товара.
// В Kafka событие доставляет OutboxWorker.
type OutboxPublisher struct {
	repo usecase.OutboxRepository
}

func NewOutboxPublisher(repo usecase.OutboxRepository) *OutboxPublisher {
	return &OutboxPublisher{repo: repo}
}

func (o *OutboxPublisher) Publish(ctx context.Context, event *domain.ProductEvent) error {
	payload, err := EncodeProductEvent(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := o.repo.Create(ctx, usecase.NewOutboxEvent(event.EventID, event.Type, event.ProductID, payload)); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// BestEffortPublisher отправляет событие напрямую и не проваливает операцию при ошибке брокера.
// Используется, когда нет outbox (хранилище в памяти).
type BestEffortPublisher struct {
	next   usecase.EventPublisher
	logger logger.Logger
}

func NewBestEffortPublisher(next usecase.EventPublisher, logger logger.Logger) *BestEffortPublisher {
	return &BestEffortPublisher{next: next, logger: logger}
}

func (b *BestEffortPublisher) Publish(ctx context.Context, event *domain.ProductEvent) error {
	if err := b.next.Publish(ctx, event); err != nil {
		b.logger.Errorf(err, "event %s (%s) for product %d dropped", event.EventID, event.Type, event.ProductID)
	}

	return nil
}

// NopPublisher используется, когда Kafka не настроена.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *domain.ProductEvent) error { return nil }
