package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/larriantoniy/tg_order_bot/internal/domain"
)

// JSONCatalogRepo читает меню, выгруженное краулером, из json-файла
type JSONCatalogRepo struct {
	path string // "./catalog/dieci.json"
}

func NewJSONCatalogRepo(path string) *JSONCatalogRepo {
	return &JSONCatalogRepo{path: path}
}

func (r *JSONCatalogRepo) ListItems(ctx context.Context) ([]domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	var items []domain.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", r.path, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", r.path, domain.ErrEmptyCatalog)
	}
	return items, nil
}
