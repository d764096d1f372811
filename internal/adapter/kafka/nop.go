package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
)

// NopPublisher drops events when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishCatalogEvent(_ context.Context, evt domain.CatalogEvent) error {
	slog.Debug("broker disabled, catalog event dropped",
		"op", "NopPublisher.PublishCatalogEvent",
		"entity", evt.Entity, "id", evt.EntityID, "action", evt.Action)
	return nil
}

func (NopPublisher) PublishOrderPlaced(
	_ context.Context, evts []domain.OrderPlacedEvent,
) error {
	slog.Debug("broker disabled, order events dropped",
		"op", "NopPublisher.PublishOrderPlaced", "count", len(evts))
	return nil
}

// NopPopularity reports zero for every product detail.
type NopPopularity struct{}

func (NopPopularity) Popularity(context.Context, int64) (int64, error) {
	return 0, nil
}
