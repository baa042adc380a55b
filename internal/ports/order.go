package ports

import (
	"context"

	"github.com/larriantoniy/tg_order_bot/internal/domain"
)

// MenuMatcher ищет позицию меню по куску свободного текста.
type MenuMatcher interface {
	Match(ctx context.Context, fragment string) (domain.CatalogItem, bool)
}

// EligibilityGate решает, может ли чат вообще пользоваться ботом.
type EligibilityGate interface {
	IsEligible(ctx context.Context, chatID int64) bool
}

// FulfillmentChannel передаёт сериализованный заказ внешнему исполнителю.
// Возвращает код завершения; err только для ошибок запуска.
type FulfillmentChannel interface {
	Execute(ctx context.Context, payload []byte) (exitCode int, err error)
}
