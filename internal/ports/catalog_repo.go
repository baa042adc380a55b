package ports

import (
	"context"

	"github.com/larriantoniy/tg_order_bot/internal/domain"
)

type ProxyConfig struct {
	Enabled  bool
	Server   string
	Port     int32
	Username string
	Password string
}

type CatalogRepo interface {
	// Загружает все позиции меню, которые подготовил краулер
	ListItems(ctx context.Context) ([]domain.CatalogItem, error)
}
